// Package state holds the client's two state regions — session and
// directory — plus the guard decision derived from the session. The stores
// are the only writers of their regions; views read value snapshots and
// issue commands, never mutate.
//
// Concurrency model: every async command is dispatch → pending → terminal.
// Completions belonging to a superseded dispatch of the same operation type
// are discarded wholesale (last-dispatched-wins, enforced with sequence
// numbers), so overlapping requests can never interleave into a state no
// single request produced.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"profilehub/internal/client/api"
	"profilehub/internal/client/keystore"
	"profilehub/internal/client/models"
	"profilehub/internal/logging"
)

// Session is a point-in-time snapshot of the authentication region.
//
// Invariants: IsAuthenticated implies User != nil; Token == "" implies
// !IsAuthenticated; IsLoading is true exactly while a session command is
// pending.
type Session struct {
	Token           string
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// SessionInfo is what the client can read out of the stored token without
// verifying it. Verification is the server's job.
type SessionInfo struct {
	Email     string
	UserID    int64
	ExpiresAt time.Time
}

// SessionStore owns the authentication lifecycle: token acquisition,
// verification, logout, and the persisted-token side channel. Every
// transition that changes authentication status updates the in-memory
// token, the API client's bearer token, and the keystore in one step.
type SessionStore struct {
	api  api.Client
	keys keystore.Store
	log  logging.Logger

	mu      sync.Mutex
	token   string
	user    *models.User
	authed  bool
	pending int
	errMsg  string
	seq     uint64
}

func NewSessionStore(client api.Client, keys keystore.Store, log logging.Logger) *SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionStore{api: client, keys: keys, log: log.With("store", "session")}
}

// Snapshot returns a consistent value copy of the session region.
func (s *SessionStore) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{
		Token:           s.token,
		User:            s.user.Clone(),
		IsAuthenticated: s.authed,
		IsLoading:       s.pending > 0,
		Err:             s.errMsg,
	}
}

// SeedFromKeystore loads a previously persisted token. The session stays
// unauthenticated until the token is verified; the guard takes it from here.
func (s *SessionStore) SeedFromKeystore(ctx context.Context) error {
	token, err := s.keys.Get(ctx, keystore.TokenKey)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.api.SetToken(token)
	s.log.Debug(ctx, "session seeded from keystore")
	return nil
}

// begin marks the dispatch phase: the previous error banner is cleared
// immediately, not on completion.
func (s *SessionStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending++
	s.errMsg = ""
	return s.seq
}

// Login authenticates with the given credentials. On success the session
// becomes AUTHENTICATED and the token is persisted; on failure the error
// banner is set and no partial credential state is retained.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	id := s.begin()

	res, err := s.api.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seq {
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Login failed")
		s.log.Warn(ctx, "login failed", "error", err)
		return err
	}

	s.setAuthenticatedLocked(ctx, res.Token, &res.User)
	s.log.Info(ctx, "login succeeded", "user_id", res.User.ID)
	return nil
}

// Register creates an account. The input is assumed validated by the caller
// (forms package); the store only interprets the transport result, which
// follows the same contract as Login.
func (s *SessionStore) Register(ctx context.Context, req api.RegisterRequest) error {
	id := s.begin()

	res, err := s.api.Register(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seq {
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Registration failed")
		s.log.Warn(ctx, "registration failed", "error", err)
		return err
	}

	s.setAuthenticatedLocked(ctx, res.Token, &res.User)
	s.log.Info(ctx, "registration succeeded", "user_id", res.User.ID)
	return nil
}

// VerifyToken validates the stored token against the server and refreshes
// the user record. A failed verification is "not logged in", not an error
// banner: the session demotes to anonymous silently and the persisted token
// is removed. A token whose decoded expiry is already past is demoted
// without a network round-trip; the observable outcome is identical.
func (s *SessionStore) VerifyToken(ctx context.Context) error {
	if exp, ok := s.tokenExpiry(); ok && time.Now().After(exp) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.clearAuthLocked(ctx)
		s.log.Debug(ctx, "token already expired, skipping verification")
		return api.ErrUnauthorized
	}

	id := s.begin()

	user, err := s.api.VerifyToken(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seq {
		return err
	}
	if err != nil {
		// Silent demotion: no banner on a failed verification.
		s.clearAuthLocked(ctx)
		s.log.Debug(ctx, "token verification failed", "error", err)
		return err
	}

	s.user = user.Clone()
	s.authed = true
	s.log.Debug(ctx, "token verified", "user_id", user.ID)
	return nil
}

// Logout clears the session. Synchronous, no network call, always succeeds.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	s.clearAuthLocked(ctx)
	s.log.Info(ctx, "logged out")
}

// DeleteAccount removes the authenticated user's account on the server.
// Success behaves like logout; failure sets the error banner and leaves the
// session untouched.
func (s *SessionStore) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	if !s.authed || s.user == nil {
		s.mu.Unlock()
		return api.ErrUnauthorized
	}
	userID := s.user.ID
	s.mu.Unlock()

	id := s.begin()

	err := s.api.DeleteAccount(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if id != s.seq {
		return err
	}
	if err != nil {
		s.errMsg = api.Message(err, "Failed to delete account")
		s.log.Warn(ctx, "account deletion failed", "error", err)
		return err
	}

	s.clearAuthLocked(ctx)
	s.log.Info(ctx, "account deleted", "user_id", userID)
	return nil
}

// ClearError drops the error banner. Banners must not outlive navigation or
// survive into a new attempt.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Info decodes the stored token's claims without verifying the signature.
// Returns false when there is no token or it is not a JWT.
func (s *SessionStore) Info() (SessionInfo, bool) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return SessionInfo{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return SessionInfo{}, false
	}

	info := SessionInfo{}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if id, ok := claims["user_id"].(float64); ok {
		info.UserID = int64(id)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}

func (s *SessionStore) tokenExpiry() (time.Time, bool) {
	info, ok := s.Info()
	if !ok || info.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return info.ExpiresAt, true
}

// setAuthenticatedLocked installs a fresh token + user pair and persists the
// token, all within the caller's critical section so no observer can see the
// memory and keystore disagree.
func (s *SessionStore) setAuthenticatedLocked(ctx context.Context, token string, user *models.User) {
	s.token = token
	s.user = user.Clone()
	s.authed = true
	s.errMsg = ""
	s.api.SetToken(token)
	if err := s.keys.Set(ctx, keystore.TokenKey, token); err != nil {
		s.log.Warn(ctx, "failed to persist token", "error", err)
	}
}

// clearAuthLocked resets the session to anonymous and removes the persisted
// token in the same step.
func (s *SessionStore) clearAuthLocked(ctx context.Context) {
	s.token = ""
	s.user = nil
	s.authed = false
	s.api.SetToken("")
	if err := s.keys.Delete(ctx, keystore.TokenKey); err != nil {
		s.log.Warn(ctx, "failed to remove persisted token", "error", err)
	}
}

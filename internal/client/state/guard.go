package state

import (
	"context"
	"sync"

	"profilehub/internal/logging"
)

// GuardDecision is the three-state surface protected views render from.
type GuardDecision int

const (
	// GuardLoading: render a loading indicator, nothing else.
	GuardLoading GuardDecision = iota
	// GuardDenied: the caller must send the user to the auth screen.
	GuardDenied
	// GuardAllowed: protected content may render.
	GuardAllowed
)

func (d GuardDecision) String() string {
	switch d {
	case GuardLoading:
		return "loading"
	case GuardDenied:
		return "denied"
	case GuardAllowed:
		return "allowed"
	}
	return "unknown"
}

// Guard derives the access decision from session state and triggers token
// verification exactly once per distinct token value. A verification failure
// is indistinguishable from "never logged in": both come out as GuardDenied.
type Guard struct {
	session *SessionStore
	log     logging.Logger

	mu         sync.Mutex
	dispatched map[string]struct{}
}

func NewGuard(session *SessionStore, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Nop()
	}
	return &Guard{
		session:    session,
		log:        log.With("component", "guard"),
		dispatched: make(map[string]struct{}),
	}
}

// markDispatched reports whether verification should be dispatched for this
// token value. It returns true at most once per value, which is what keeps
// re-evaluation on every render from looping.
func (g *Guard) markDispatched(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, seen := g.dispatched[token]; seen {
		return false
	}
	g.dispatched[token] = struct{}{}
	return true
}

// Check evaluates the decision without blocking. When a token is present but
// unconfirmed it kicks off verification in the background and reports
// GuardLoading; the caller re-checks when the session changes. The store
// update from an abandoned check still lands — only whether anyone looks at
// it changes.
func (g *Guard) Check(ctx context.Context) GuardDecision {
	snap := g.session.Snapshot()

	if snap.IsLoading {
		return GuardLoading
	}

	if snap.Token != "" && !snap.IsAuthenticated {
		if g.markDispatched(snap.Token) {
			g.log.Debug(ctx, "dispatching token verification")
			verifyCtx := context.WithoutCancel(ctx)
			go func() { _ = g.session.VerifyToken(verifyCtx) }()
		}
		return GuardLoading
	}

	if !snap.IsAuthenticated {
		return GuardDenied
	}
	return GuardAllowed
}

// Authorize is the blocking form used by sequential callers: it resolves a
// pending verification synchronously and returns the settled decision,
// which is never GuardLoading.
func (g *Guard) Authorize(ctx context.Context) GuardDecision {
	snap := g.session.Snapshot()

	if snap.Token != "" && !snap.IsAuthenticated {
		if g.markDispatched(snap.Token) {
			_ = g.session.VerifyToken(ctx)
		}
		snap = g.session.Snapshot()
	}

	if snap.IsAuthenticated {
		return GuardAllowed
	}
	return GuardDenied
}

package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"profilehub/internal/client/api"
	"profilehub/internal/client/models"
)

// fakeClient implements api.Client for store tests. Each operation delegates
// to a function field so tests control results and timing; unset operations
// fail loudly.
type fakeClient struct {
	mu    sync.Mutex
	token string

	loginFn    func(email, password string) (*api.AuthResult, error)
	registerFn func(req api.RegisterRequest) (*api.AuthResult, error)
	verifyFn   func() (*models.User, error)
	listFn     func(q api.ListQuery) (*api.UserPage, error)
	getFn      func(id int64) (*models.User, error)
	updateFn   func(id int64, upd api.ProfileUpdate) (*models.User, error)
	profileFn  func() (*models.User, error)
	deleteFn   func(id int64) error

	verifyCalls atomic.Int32
	deleteCalls atomic.Int32
}

var errUnexpectedCall = errors.New("unexpected api call")

func (f *fakeClient) Login(_ context.Context, email, password string) (*api.AuthResult, error) {
	if f.loginFn == nil {
		return nil, errUnexpectedCall
	}
	res, err := f.loginFn(email, password)
	if err == nil {
		f.SetToken(res.Token)
	}
	return res, err
}

func (f *fakeClient) Register(_ context.Context, req api.RegisterRequest) (*api.AuthResult, error) {
	if f.registerFn == nil {
		return nil, errUnexpectedCall
	}
	res, err := f.registerFn(req)
	if err == nil {
		f.SetToken(res.Token)
	}
	return res, err
}

func (f *fakeClient) VerifyToken(_ context.Context) (*models.User, error) {
	f.verifyCalls.Add(1)
	if f.verifyFn == nil {
		return nil, errUnexpectedCall
	}
	return f.verifyFn()
}

func (f *fakeClient) ListUsers(_ context.Context, q api.ListQuery) (*api.UserPage, error) {
	if f.listFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listFn(q)
}

func (f *fakeClient) GetUser(_ context.Context, id int64) (*models.User, error) {
	if f.getFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getFn(id)
}

func (f *fakeClient) UpdateUser(_ context.Context, id int64, upd api.ProfileUpdate) (*models.User, error) {
	if f.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return f.updateFn(id, upd)
}

func (f *fakeClient) CurrentProfile(_ context.Context) (*models.User, error) {
	if f.profileFn == nil {
		return nil, errUnexpectedCall
	}
	return f.profileFn()
}

func (f *fakeClient) DeleteAccount(_ context.Context, id int64) error {
	f.deleteCalls.Add(1)
	if f.deleteFn == nil {
		return errUnexpectedCall
	}
	return f.deleteFn(id)
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeClient) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) Close() error { return nil }

func alice() *models.User {
	return &models.User{
		ID:       1,
		FullName: "Alice Doe",
		Email:    "alice@example.org",
		Gender:   models.GenderFemale,
	}
}

func authOK(token string) func(string, string) (*api.AuthResult, error) {
	return func(string, string) (*api.AuthResult, error) {
		return &api.AuthResult{Token: token, User: *alice()}, nil
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"profilehub/internal/client/api"
	"profilehub/internal/client/config"
	"profilehub/internal/client/keystore"
	"profilehub/internal/client/models"
	"profilehub/internal/client/state"
	"profilehub/internal/logging"
)

// fakeClient implements api.Client for CLI tests. Operations delegate to
// function fields; unset operations fail loudly.
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

// newTestApp wires an App around the fake client, an in-memory keystore and
// a silent logger. The reader is empty; interactive input goes through the
// stubbed seams.
func newTestApp(f *fakeClient) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	keys := keystore.NewMemory()
	session := state.NewSessionStore(f, keys, nil)

	return &App{
		config:    cfg,
		client:    f,
		keys:      keys,
		session:   session,
		directory: state.NewDirectoryStore(f, nil),
		guard:     state.NewGuard(session, nil),
		log:       logging.Nop(),
		reader:    bufio.NewReader(strings.NewReader("")),
	}
}

// loginTestApp returns an app already authenticated as alice.
func loginTestApp(t *testing.T, f *fakeClient) *App {
	t.Helper()
	a := newTestApp(f)
	f.loginFn = authOK("tok-1")
	if err := a.session.Login(context.Background(), "alice@example.org", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return a
}

// stubPrompts replaces getSimpleText with a queue of canned answers; answers
// beyond the queue come back blank.
func stubPrompts(t *testing.T, answers ...string) func() {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", nil
		}
		a := answers[i]
		i++
		return a, nil
	}
	return func() { getSimpleText = orig }
}

func stubPassword(t *testing.T, pw string) func() {
	t.Helper()
	orig := getPassword
	getPassword = func(_ string, _ io.Writer) ([]byte, error) { return []byte(pw), nil }
	return func() { getPassword = orig }
}

func stubFreeform(t *testing.T, multiline string, list []string) func() {
	t.Helper()
	origML, origCL := getMultiline, getCommaList
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return multiline, nil }
	getCommaList = func(_ *bufio.Reader, _ string, _ io.Writer) ([]string, error) { return list, nil }
	return func() {
		getMultiline = origML
		getCommaList = origCL
	}
}

// capturePrintln redirects printlnFn into a slice of rendered lines.
func capturePrintln(t *testing.T) (*[]string, func()) {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	return &lines, func() { printlnFn = orig }
}

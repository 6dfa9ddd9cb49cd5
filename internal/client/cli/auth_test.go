package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"profilehub/internal/client/api"
	"profilehub/internal/client/keystore"
	"profilehub/internal/client/models"
)

func TestLogin_Success(t *testing.T) {
	f := &fakeClient{loginFn: authOK("tok-1")}
	a := newTestApp(f)

	restore := stubPrompts(t, "alice@example.org")
	defer restore()
	restorePW := stubPassword(t, "secret1")
	defer restorePW()
	_, restoreOut := capturePrintln(t)
	defer restoreOut()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}

	snap := a.session.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil {
		t.Fatalf("session not authenticated after login")
	}
	if got := f.Token(); got != "tok-1" {
		t.Fatalf("api token = %q, want tok-1", got)
	}

	persisted, err := a.keys.Get(context.Background(), keystore.TokenKey)
	if err != nil || persisted != "tok-1" {
		t.Fatalf("persisted token = %q, err=%v", persisted, err)
	}
}

func TestLogin_ValidationStopsBeforeNetwork(t *testing.T) {
	// loginFn left nil: a network call would fail with errUnexpectedCall.
	f := &fakeClient{}
	a := newTestApp(f)

	restore := stubPrompts(t, "not-an-email")
	defer restore()
	restorePW := stubPassword(t, "secret1")
	defer restorePW()
	_, restoreOut := capturePrintln(t)
	defer restoreOut()

	err := a.Login(context.Background())
	if err == nil {
		t.Fatal("want validation error")
	}
	if errors.Is(err, errUnexpectedCall) {
		t.Fatal("network call made despite invalid input")
	}
}

func TestLogin_BadCredentialsShowsBanner(t *testing.T) {
	f := &fakeClient{loginFn: func(string, string) (*api.AuthResult, error) {
		return nil, &api.Error{Status: 401, Msg: "Invalid email or password", Kind: api.ErrUnauthorized}
	}}
	a := newTestApp(f)

	restore := stubPrompts(t, "alice@example.org")
	defer restore()
	restorePW := stubPassword(t, "secret1")
	defer restorePW()
	lines, restoreOut := capturePrintln(t)
	defer restoreOut()

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("want error")
	}
	if !containsLine(*lines, "Invalid email or password") {
		t.Fatalf("banner not shown, output: %q", *lines)
	}
	if a.session.Snapshot().IsAuthenticated {
		t.Fatal("session must stay anonymous")
	}
}

func TestRegister_Success(t *testing.T) {
	var got api.RegisterRequest
	f := &fakeClient{registerFn: func(req api.RegisterRequest) (*api.AuthResult, error) {
		got = req
		return &api.AuthResult{Token: "tok-r", User: *alice()}, nil
	}}
	a := newTestApp(f)

	restore := stubPrompts(t,
		"Alice Doe",        // full name
		"alice@example.org", // email
		"",                 // phone
		"1990-04-15",       // date of birth
		"Female",           // gender
	)
	defer restore()
	restorePW := stubPassword(t, "secret1")
	defer restorePW()
	restoreFF := stubFreeform(t, "hello", []string{"music", "art"})
	defer restoreFF()
	_, restoreOut := capturePrintln(t)
	defer restoreOut()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}

	if got.FullName != "Alice Doe" || got.Email != "alice@example.org" {
		t.Fatalf("request identity mismatch: %+v", got)
	}
	if got.DateOfBirth.String() != "1990-04-15" {
		t.Fatalf("date of birth = %q", got.DateOfBirth.String())
	}
	if got.Gender != models.GenderFemale {
		t.Fatalf("gender = %q", got.Gender)
	}
	if len(got.Interests) != 2 {
		t.Fatalf("interests = %v", got.Interests)
	}
	if !a.session.Snapshot().IsAuthenticated {
		t.Fatal("registration must log the user in")
	}
}

func TestRegister_PasswordMismatchRejectedLocally(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)

	restore := stubPrompts(t, "Alice Doe", "alice@example.org", "", "1990-04-15", "Female")
	defer restore()

	origGP := getPassword
	calls := 0
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte("secret1"), nil
		}
		return []byte("different"), nil
	}
	defer func() { getPassword = origGP }()

	restoreFF := stubFreeform(t, "", nil)
	defer restoreFF()
	lines, restoreOut := capturePrintln(t)
	defer restoreOut()

	if err := a.Register(context.Background()); err == nil {
		t.Fatal("want validation error")
	}
	if len(*lines) == 0 || !strings.Contains(strings.Join(*lines, "\n"), "match") {
		t.Fatalf("mismatch message not shown: %q", *lines)
	}
}

func TestLogout(t *testing.T) {
	a := loginTestApp(t, &fakeClient{})
	_, restoreOut := capturePrintln(t)
	defer restoreOut()

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}

	snap := a.session.Snapshot()
	if snap.IsAuthenticated || snap.Token != "" {
		t.Fatalf("session not cleared: %+v", snap)
	}
	persisted, _ := a.keys.Get(context.Background(), keystore.TokenKey)
	if persisted != "" {
		t.Fatalf("persisted token not removed: %q", persisted)
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if strings.Contains(l, want) {
			return true
		}
	}
	return false
}

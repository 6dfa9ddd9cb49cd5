package cli

import (
	"context"
	"os"

	"profilehub/internal/client/forms"
)

// getSimpleText, getPassword and friends are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline
var getCommaList = GetCommaList

// Login prompts the user for credentials and tries to authenticate.
//
// Input is validated locally before the network call so obvious mistakes
// never leave the terminal. On failure the session store's error banner is
// shown; the store keeps it until the next attempt clears it.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	form := forms.LoginForm{Email: email, Password: string(password)}
	if err := form.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.session.Login(ctx, form.Email, form.Password); err != nil {
		printlnFn(a.session.Snapshot().Err)
		return err
	}

	snap := a.session.Snapshot()
	printlnFn("Logged in as " + snap.User.Email)
	return nil
}

// Register walks the user through the registration form, validates it, and
// creates the account. A successful registration logs the user in.
func (a *App) Register(ctx context.Context) error {
	form := forms.RegisterForm{}
	var err error

	if form.FullName, err = getSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)
	form.Password = string(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(confirm)
	form.ConfirmPassword = string(confirm)

	if form.PhoneNumber, err = getSimpleText(a.reader, "Phone number (optional)", os.Stdout); err != nil {
		return err
	}
	if form.DateOfBirth, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	}
	if form.Gender, err = getSimpleText(a.reader, "Gender (Male/Female/Other)", os.Stdout); err != nil {
		return err
	}
	if form.Interests, err = getCommaList(a.reader, "Interests (comma-separated, optional)", os.Stdout); err != nil {
		return err
	}
	if form.Bio, err = getMultiline(a.reader, "Bio (optional):", os.Stdout); err != nil {
		return err
	}

	if err := form.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	req, err := form.ToRequest()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.session.Register(ctx, req); err != nil {
		printlnFn(a.session.Snapshot().Err)
		return err
	}

	printlnFn("Account created. You are now logged in.")
	return nil
}

// Logout clears the session and removes the persisted token. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"profilehub/internal/client/forms"
)

// WhoAmI prints a short session summary: the authenticated user and what the
// token itself says about expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	snap := a.session.Snapshot()
	printlnFn(fmt.Sprintf("Logged in as %s (%s)", snap.User.FullName, snap.User.Email))

	if info, ok := a.session.Info(); ok && !info.ExpiresAt.IsZero() {
		printlnFn("Session expires " + info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Profile fetches and renders the caller's own record.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	if err := a.directory.GetCurrentProfile(ctx); err != nil {
		printlnFn(a.directory.Snapshot().Err)
		return err
	}

	if current := a.directory.Snapshot().CurrentUser; current != nil {
		renderUser(os.Stdout, current)
	}
	return nil
}

// Edit prompts for new profile values, blank meaning "keep as is", and sends
// a partial update. The rendered result is the server's record, not a local
// merge of the submitted fields.
func (a *App) Edit(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	userID := a.session.Snapshot().User.ID

	printlnFn("Leave a field blank to keep its current value.")

	form := forms.ProfileEditForm{}
	var err error

	if form.FullName, err = getSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}
	if form.PhoneNumber, err = getSimpleText(a.reader, "Phone number", os.Stdout); err != nil {
		return err
	}
	if form.DateOfBirth, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	}
	if form.Gender, err = getSimpleText(a.reader, "Gender (Male/Female/Other)", os.Stdout); err != nil {
		return err
	}
	if form.Interests, err = getCommaList(a.reader, "Interests (comma-separated)", os.Stdout); err != nil {
		return err
	}
	if form.Bio, err = getMultiline(a.reader, "Bio:", os.Stdout); err != nil {
		return err
	}

	if err := form.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	upd, err := form.ToUpdate()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.directory.UpdateUserProfile(ctx, userID, upd); err != nil {
		printlnFn(a.directory.Snapshot().Err)
		return err
	}

	printlnFn("Profile updated.")
	if current := a.directory.Snapshot().CurrentUser; current != nil {
		renderUser(os.Stdout, current)
	}
	return nil
}

// DeleteAccount removes the account after an explicit confirmation. Success
// behaves like logout.
func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	answer, err := getSimpleText(a.reader, "This permanently deletes your account. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.session.DeleteAccount(ctx); err != nil {
		printlnFn(a.session.Snapshot().Err)
		return err
	}

	printlnFn("Account deleted.")
	return nil
}

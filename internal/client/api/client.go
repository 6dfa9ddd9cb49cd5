// Package api is the gateway to the profile service's REST API. It owns the
// bearer token, performs the HTTP calls, and normalizes every failure into an
// *Error carrying a sentinel category and a human-readable message. It holds
// no other state.
package api

import (
	"context"

	"profilehub/internal/client/models"
)

// Client is the operation surface the stores dispatch against.
//
// All methods honor context cancellation. Failures never panic; they come
// back as errors matchable with errors.Is against the package sentinels,
// with a display message extractable via Message.
type Client interface {
	// Login exchanges credentials for a token and the user record.
	// The token is retained for subsequent authenticated calls.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Register creates an account; on success the server logs the user in,
	// so the result carries a token which the client retains.
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)

	// VerifyToken validates the retained token and returns a fresh user record.
	VerifyToken(ctx context.Context) (*models.User, error)

	// ListUsers fetches one page of public profiles.
	ListUsers(ctx context.Context, q ListQuery) (*UserPage, error)

	// GetUser fetches a single profile by id.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// UpdateUser sends a partial profile update and returns the server's
	// canonical record.
	UpdateUser(ctx context.Context, id int64, upd ProfileUpdate) (*models.User, error)

	// CurrentProfile fetches the authenticated caller's own record.
	CurrentProfile(ctx context.Context) (*models.User, error)

	// DeleteAccount removes the authenticated caller's account.
	DeleteAccount(ctx context.Context, id int64) error

	// SetToken replaces the retained bearer token ("" clears it).
	SetToken(token string)

	// Token returns the currently retained bearer token.
	Token() string

	Close() error
}

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

// RegisterRequest is the full registration form. Field-format validation is
// the caller's job (see the forms package); the adapter only forwards it.
type RegisterRequest struct {
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	Password        string        `json:"password"`
	ConfirmPassword string        `json:"confirm_password"`
	PhoneNumber     string        `json:"phone_number,omitempty"`
	DateOfBirth     models.Date   `json:"date_of_birth"`
	Gender          models.Gender `json:"gender"`
	Interests       models.TagSet `json:"interests"`
	Bio             string        `json:"bio,omitempty"`
}

// ProfileUpdate is a partial update: nil fields are omitted from the request
// body and left untouched by the server.
type ProfileUpdate struct {
	FullName    *string        `json:"full_name,omitempty"`
	Email       *string        `json:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	DateOfBirth *models.Date   `json:"date_of_birth,omitempty"`
	Gender      *models.Gender `json:"gender,omitempty"`
	Interests   *models.TagSet `json:"interests,omitempty"`
	Bio         *string        `json:"bio,omitempty"`
}

// ListQuery selects a page of the user directory.
type ListQuery struct {
	Search  string
	Page    int
	PerPage int
}

// UserPage is one page of the directory listing.
type UserPage struct {
	Users       []models.User `json:"users"`
	Total       int           `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
}

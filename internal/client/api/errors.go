package api

import "errors"

// Sentinel categories for API failures. Match with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("rejected by server validation")
	ErrUnavailable  = errors.New("server unavailable")
)

// Error is a normalized API failure: the HTTP status (0 for transport-level
// failures), the message taken from the server's error field or the
// per-operation fallback, and the sentinel category it unwraps to.
type Error struct {
	Status int
	Msg    string
	Kind   error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Message returns the display message carried by err, or fallback when err
// is not an API error or carries none. Stores use this to fill the error
// banner without ever inspecting transport details.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	return fallback
}

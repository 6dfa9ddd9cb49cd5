// Package keystore is the client's local key-value persistence. Its one job
// today is holding the authentication token across restarts, so the session
// store can seed itself at startup.
package keystore

import "context"

// TokenKey is the well-known key the session token is persisted under.
const TokenKey = "token"

// Store is a synchronous key-value store. Get returns "" (no error) for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Package cli provides the interactive profilehub command-line client.
//
// It wires configuration, the token keystore, the API client, and the state
// stores into an interactive REPL. Typical flow: restore a persisted session
// through the guard, then execute user commands against the stores.
//
// Key features:
//   - Login / Register / Logout
//   - Browse the public user directory with search and paging
//   - Show a single profile, view and edit one's own
//   - Delete the account (with confirmation)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, Guard and runREPL for details.
package cli

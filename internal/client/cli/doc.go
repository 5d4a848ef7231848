// Package cli provides the interactive vault command-line client.
//
// A session starts with a login prompt. Online login may ask for a second
// factor; when the identity service is unreachable the client falls back to
// the credentials cached by the last online login. Once unlocked the user can
// import exports from other password managers, list and match entries and
// manage equivalent domains.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli

// Package cli provides the interactive storefront command-line client.
//
// It wires configuration and the HTTP API client into a small REPL. The
// session lives in the API client's cookie jar, so after signup, signin or
// reset every following command runs as that user until signout.
//
// Commands:
//   - signup, signin, signout, me
//   - users, permissions <userId> <LABEL...>
//   - request-reset, reset
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

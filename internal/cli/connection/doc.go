// Package connection talks HTTP to a SharePay server on behalf of the CLI.
//
// Dispatcher is the authenticated request path. It attaches the stored
// bearer token, and on a 401 it asks the server for a new access token
// once, retries once, and otherwise clears the stored credentials and
// sends the user to the login page:
//
//	send ──► 401? ──► refresh ──► ok? ──► resend ──► 401? ──► expire
//	   │                            │                  │
//	   └─► response                 └─► expire         └─► response
//
// Refresher performs the refresh call itself and never goes through
// Dispatch. Send is the single-attempt path used by login, register and
// logout, where a 401 means bad input rather than an expired session.
//
// Manager keeps the dispatcher for the current server so that the shell
// can swap it when the configuration changes.
package connection

// Package command defines the sharepay-cli command tree with urfave/cli/v2.
//
//   - root.go: App, global flags, exit codes
//   - runtime.go: shared state (config, store, dispatcher, metrics)
//   - auth.go: register, login, logout, status
//   - trip.go: dashboard and the trip group
//   - payment.go: the payment group
//   - request.go: raw authenticated requests
//   - config.go, system.go, shell.go
//
// Commands that stand for a protected page run the route guard in their
// Before hook, so an anonymous user is sent to login before any request
// is built.
package command

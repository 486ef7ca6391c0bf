// Package token holds helpers for the opaque session credentials the
// SharePay API hands out.
//
//   - bearer.go: Authorization header formatting and parsing
//   - fingerprint.go: non-reversible fingerprints for log lines
//   - generator.go: random bytes for install keys
//
// The client never interprets a token beyond present or absent.
package token

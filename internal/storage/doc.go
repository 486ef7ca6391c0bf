// Package storage keeps the client's login state.
//
// CredentialStore is the only type the rest of the client talks to. It
// holds at most one access token plus the refresh credential issued with
// it, and delegates persistence to a Backend:
//
//   - file: a sealed record under ~/.sharepay (default)
//   - memory: in-process, see package memory
//   - badger: an embedded Badger directory
//   - redis: a shared key, so several agents can reuse one login
//
// Open builds a store from Config.
package storage

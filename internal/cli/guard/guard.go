package guard

import (
	"context"
	"strings"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// DefaultProtected lists the page prefixes that require a login.
var DefaultProtected = []string{"/dashboard", "/trip"}

// TokenChecker reports whether a session token is stored.
type TokenChecker interface {
	Has(ctx context.Context) bool
}

// Navigator moves the user to another page.
type Navigator interface {
	Redirect(path string)
}

// Guard checks page paths against a list of protected prefixes.
type Guard struct {
	store     TokenChecker
	nav       Navigator
	protected []string
}

// New creates a guard over DefaultProtected. Extra prefixes are added to it.
func New(store TokenChecker, nav Navigator, extra ...string) *Guard {
	protected := append(append([]string(nil), DefaultProtected...), extra...)
	return &Guard{store: store, nav: nav, protected: protected}
}

// IsProtected reports whether path starts with a protected prefix. The
// match is on raw characters, so "/tripping" is covered by "/trip".
func (g *Guard) IsProtected(path string) bool {
	for _, prefix := range g.protected {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Check returns true when the user may open path. For a protected path
// without a stored token it redirects to LoginPath and returns false.
func (g *Guard) Check(ctx context.Context, path string) bool {
	if !g.IsProtected(path) {
		return true
	}
	if g.store.Has(ctx) {
		return true
	}
	g.nav.Redirect(LoginPath)
	return false
}

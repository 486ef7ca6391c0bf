package output

import (
	"fmt"
	"strings"
	"sync"
)

// Navigator stands in for browser page changes. The terminal cannot move
// to another page, so it records the target and tells the user which
// command corresponds to it.
type Navigator struct {
	mu      sync.Mutex
	console *Console
	history []string

	// OnRedirect, if set, is called with each target path.
	OnRedirect func(path string)
}

// NewNavigator creates a navigator printing hints to console.
func NewNavigator(console *Console) *Navigator {
	return &Navigator{console: console}
}

// Redirect records path and prints a hint.
func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	n.history = append(n.history, path)
	hook := n.OnRedirect
	n.mu.Unlock()

	if hook != nil {
		hook(path)
	}
	if n.console != nil {
		fmt.Fprintln(n.console, n.console.paint("33", "→ "+Hint(path)))
	}
}

// Last returns the most recent target, or "".
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// History returns every target in order.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

// Hint maps a page path to what the user should do next.
func Hint(path string) string {
	switch {
	case path == "/login":
		return "please sign in: run `sharepay-cli login`"
	case path == "/register":
		return "create an account: run `sharepay-cli register`"
	case path == "/" || path == "":
		return "signed out"
	case path == "/dashboard":
		return "run `sharepay-cli dashboard`"
	case strings.HasPrefix(path, "/trip/"):
		id := strings.Trim(strings.TrimPrefix(path, "/trip/"), "/")
		return "run `sharepay-cli trip settlement " + id + "`"
	default:
		return "open " + path
	}
}

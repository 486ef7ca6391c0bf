package repl

import (
	"sort"
	"strings"
)

// Completer suggests command lines for a typed prefix.
type Completer struct {
	commands []string
}

// Builtins are handled by the shell itself.
var Builtins = []string{"exit", "quit", "history", "help"}

// NewCompleter creates a Completer over commands plus Builtins.
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]bool)
	var all []string
	for _, c := range append(append([]string(nil), commands...), Builtins...) {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the commands starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Extend returns line completed as far as every match agrees.
func (c *Completer) Extend(line string) (string, []string) {
	matches := c.Complete(line)
	switch len(matches) {
	case 0:
		return line, nil
	case 1:
		return matches[0] + " ", matches
	}
	common := matches[0]
	for _, m := range matches[1:] {
		for !strings.HasPrefix(m, common) {
			common = common[:len(common)-1]
		}
	}
	return common, matches
}

package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShellRunsCommands(t *testing.T) {
	f := newCLIFixture(t)
	history := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(f.config, []byte("history: "+history+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	f.login("acc", "ref")

	out, err := f.run("status\nrequest GET\nexit\n", "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	for _, want := range []string{"SharePay shell", "logged in", "error: "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(history)
	if err != nil {
		t.Fatalf("history not saved: %v", err)
	}
	if !strings.Contains(string(data), "status") {
		t.Errorf("history = %q", data)
	}
}

func TestCommandPathsSkipsShell(t *testing.T) {
	paths := commandPaths(App().Commands, "")
	seen := map[string]bool{}
	for _, p := range paths {
		seen[p] = true
	}
	for _, want := range []string{"login", "trip settlement", "payment update", "config set"} {
		if !seen[want] {
			t.Errorf("missing %q in %v", want, paths)
		}
	}
	if seen["shell"] {
		t.Error("shell listed")
	}
}

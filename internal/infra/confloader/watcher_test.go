package confloader

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yaml")
	other := filepath.Join(dir, "history")
	for _, p := range []string{path, other} {
		if err := os.WriteFile(p, []byte("a"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	changed := make(chan string, 10)
	w.OnChange(func(p string) { changed <- p })
	w.StartAsync()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(other, []byte("b"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("server: x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != filepath.Clean(path) {
			t.Errorf("changed = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherDebounce(t *testing.T) {
	w, err := NewWatcher(WithDebounce(30 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	var calls atomic.Int32
	w.OnChange(func(string) { calls.Add(1) })

	for i := 0; i < 5; i++ {
		w.schedule("/x/cli.yaml")
	}
	time.Sleep(150 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("callbacks = %d, want 1", n)
	}
}

func TestWatcherNonexistentDir(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if err := w.Watch("/nonexistent/path/cli.yaml"); err == nil {
		t.Error("expected error")
	}
}

func TestWatcherStopTwice(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.StartAsync()
	if err := w.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

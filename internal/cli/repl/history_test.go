package repl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistoryAdd(t *testing.T) {
	h := NewHistory("", 3)
	for _, c := range []string{"a", "a", " ", "b", "c", "d"} {
		h.Add(c)
	}
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Errorf("Entries() = %v", got)
	}
	if h.Get(0) != "d" || h.Get(2) != "b" || h.Get(3) != "" || h.Get(-1) != "" {
		t.Errorf("Get mismatch")
	}
}

func TestHistorySaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file, 0)
	h.Add("login -u amy")
	h.Add("dashboard")
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o", perm)
	}

	loaded := NewHistory(file, 0)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Entries(); !reflect.DeepEqual(got, []string{"login -u amy", "dashboard"}) {
		t.Errorf("Entries() = %v", got)
	}
}

func TestHistoryLoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "none"), 0)
	if err := h.Load(); err != nil {
		t.Errorf("Load: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len = %d", h.Len())
	}
}

func TestHistoryInMemory(t *testing.T) {
	h := NewHistory("", 0)
	h.Add("x")
	if err := h.Save(); err != nil {
		t.Errorf("Save: %v", err)
	}
}

package connection

import (
	"errors"
	"testing"

	"github.com/sharepay/sharepay-go/internal/storage"
	"github.com/sharepay/sharepay-go/internal/storage/memory"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m.IsConnected() {
		t.Error("new manager should not be connected")
	}
	if _, err := m.Current(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Current() error = %v, want ErrNotConfigured", err)
	}
}

func TestManager_ConnectSwap(t *testing.T) {
	m := NewManager()
	store := storage.NewCredentialStore(memory.New())

	d1, err := m.Connect(&Profile{Server: "localhost:8000", Store: store})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if d1.BaseURL() != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q", d1.BaseURL())
	}

	d2, err := m.Connect(&Profile{Server: "https://pay.example.com", Store: store})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	cur, _ := m.Current()
	if cur != d2 {
		t.Error("Current() should return the latest dispatcher")
	}
	if m.Server() != "https://pay.example.com" {
		t.Errorf("Server() = %q", m.Server())
	}

	m.Disconnect()
	if m.IsConnected() {
		t.Error("IsConnected() after Disconnect")
	}
}

func TestManager_ConnectRequiresServer(t *testing.T) {
	m := NewManager()
	if _, err := m.Connect(&Profile{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Connect() error = %v, want ErrNotConfigured", err)
	}
}

package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/storage"
	"github.com/sharepay/sharepay-go/internal/storage/memory"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Redirect(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type seenRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// apiFixture is a fake SharePay API plus a client wired to it.
type apiFixture struct {
	srv   *httptest.Server
	mux   *http.ServeMux
	store *storage.CredentialStore
	nav   *recordingNavigator
	d     *connection.Dispatcher

	mu   sync.Mutex
	seen []seenRequest
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		mux:   http.NewServeMux(),
		store: storage.NewCredentialStore(memory.New()),
		nav:   &recordingNavigator{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.seen = append(f.seen, seenRequest{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(body)})
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	f.d = connection.NewDispatcher(f.srv.URL, f.store, connection.WithNavigator(f.nav))
	return f
}

func (f *apiFixture) requests() []seenRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seenRequest(nil), f.seen...)
}

func (f *apiFixture) login(t *testing.T, access, refresh string) {
	t.Helper()
	if err := f.store.SetSession(context.Background(), access, refresh); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

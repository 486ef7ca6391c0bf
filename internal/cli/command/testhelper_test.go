package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sharepay/sharepay-go/internal/storage"
	"github.com/sharepay/sharepay-go/internal/storage/memory"
)

type seenRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// cliFixture is a fake SharePay API and a credential store shared by
// every CLI run in a test.
type cliFixture struct {
	t      *testing.T
	srv    *httptest.Server
	mux    *http.ServeMux
	store  *storage.CredentialStore
	config string

	mu   sync.Mutex
	seen []seenRequest
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		t:      t,
		mux:    http.NewServeMux(),
		store:  storage.NewCredentialStore(memory.New()),
		config: filepath.Join(t.TempDir(), "cli.yaml"),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.seen = append(f.seen, seenRequest{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(body)})
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// run executes one CLI invocation with stdin and returns stdout.
func (f *cliFixture) run(stdin string, args ...string) (string, error) {
	f.t.Helper()
	var out, errOut bytes.Buffer
	app := App(WithStore(f.store), WithIO(strings.NewReader(stdin), &out, &errOut))

	full := append([]string{"sharepay-cli", "--config", f.config, "--server", f.srv.URL}, args...)
	err := app.RunContext(context.Background(), full)
	return out.String(), err
}

func (f *cliFixture) login(access, refresh string) {
	f.t.Helper()
	if err := f.store.SetSession(context.Background(), access, refresh); err != nil {
		f.t.Fatalf("SetSession: %v", err)
	}
}

func (f *cliFixture) requests() []seenRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seenRequest(nil), f.seen...)
}

func (f *cliFixture) requestsTo(path string) []seenRequest {
	var out []seenRequest
	for _, r := range f.requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, detail string) {
	jsonResponse(w, status, map[string]string{"detail": detail})
}

func dashboardBody() map[string]any {
	return map[string]any{
		"user": map[string]any{"id": 1, "username": "amy", "email": "amy@example.com"},
		"trips": []map[string]any{
			{"id": 3, "name": "Tokyo", "description": "spring", "currency": "JPY", "created_at": "2026-01-02T03:04:05"},
		},
	}
}

package connection

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sharepay/sharepay-go/internal/storage"
	"github.com/sharepay/sharepay-go/internal/storage/memory"
	"github.com/sharepay/sharepay-go/internal/telemetry/metric"
	"github.com/sharepay/sharepay-go/pkg/token"
)

// recordingNavigator remembers every redirect.
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

// capturedRequest is what the fake server saw.
type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
	Cookie string
}

// fakeServer records requests and routes them to handlers by path.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
	handlers map[string]http.HandlerFunc
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{handlers: make(map[string]http.HandlerFunc)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) handle(path string, h http.HandlerFunc) {
	fs.mu.Lock()
	fs.handlers[path] = h
	fs.mu.Unlock()
}

func (fs *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	cookie := ""
	if c, err := r.Cookie(RefreshCookie); err == nil {
		cookie = c.Value
	}

	fs.mu.Lock()
	fs.requests = append(fs.requests, capturedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(body),
		Cookie: cookie,
	})
	h := fs.handlers[r.URL.Path]
	fs.mu.Unlock()

	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// requestsTo returns the captured requests for path, in order.
func (fs *fakeServer) requestsTo(path string) []capturedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var out []capturedRequest
	for _, r := range fs.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// bearerGated answers 200 only for the given token.
func bearerGated(valid string, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token.ParseBearer(r.Header.Get("Authorization")) != valid {
			jsonResponse(w, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
			return
		}
		jsonResponse(w, http.StatusOK, body)
	}
}

type fixture struct {
	server  *fakeServer
	store   *storage.CredentialStore
	nav     *recordingNavigator
	metrics *metric.Registry
	d       *Dispatcher
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		server:  newFakeServer(t),
		store:   storage.NewCredentialStore(memory.New()),
		nav:     &recordingNavigator{},
		metrics: metric.NewRegistry(),
	}
	base := []Option{WithNavigator(f.nav), WithObserver(f.metrics)}
	f.d = NewDispatcher(f.server.URL, f.store, append(base, opts...)...)
	return f
}

func (f *fixture) login(t *testing.T, access, refresh string) {
	t.Helper()
	if err := f.store.SetSession(context.Background(), access, refresh); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}
}

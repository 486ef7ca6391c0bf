package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/infra/buildinfo"
	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
	"github.com/sharepay/sharepay-go/internal/telemetry/metric"
	"github.com/sharepay/sharepay-go/pkg/token"
)

// DefaultTimeout is the HTTP client timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// LoginPath is where an expired session is sent.
const LoginPath = "/login"

// Header names set by the client.
const (
	HeaderRequestID = "X-Request-ID"
	headerAuth      = "Authorization"
	headerCT        = "Content-Type"
	headerUA        = "User-Agent"
	contentTypeJSON = "application/json"
)

// TokenStore is the credential storage the dispatcher reads and updates.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, tok string) error
	Clear(ctx context.Context) error
	RefreshToken(ctx context.Context) (string, error)
	SetRefreshToken(ctx context.Context, tok string) error
}

// Navigator moves the user to another page.
type Navigator interface {
	Redirect(path string)
}

// Observer receives dispatch measurements. *metric.Registry implements it.
type Observer interface {
	ObserveDispatch(outcome string)
	ObserveRefresh(ok bool)
	ObserveRequest(method string, status int, d time.Duration)
}

// Dispatcher sends API requests with the stored bearer token and handles
// expired sessions.
type Dispatcher struct {
	baseURL   string
	client    *http.Client
	store     TokenStore
	nav       Navigator
	observer  Observer
	limiter   *rate.Limiter
	logger    logger.Logger
	userAgent string
	newID     func() string

	refresher *Refresher
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		d.client = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.client.Timeout = timeout
		}
	}
}

// WithTLSConfig sets the client TLS configuration. A nil config keeps
// the default transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(d *Dispatcher) {
		if cfg == nil {
			return
		}
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = cfg
		d.client.Transport = tr
	}
}

// WithNavigator sets where expired sessions are redirected.
func WithNavigator(n Navigator) Option {
	return func(d *Dispatcher) {
		d.nav = n
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// WithRateLimit limits sends to rps per second. Zero disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(d *Dispatcher) {
		if rps <= 0 {
			d.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Dispatcher) {
		d.userAgent = ua
	}
}

// WithRequestIDs overrides the request ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(d *Dispatcher) {
		d.newID = fn
	}
}

// NewDispatcher creates a dispatcher for server. A server without a
// scheme is assumed to be plain http.
func NewDispatcher(server string, store TokenStore, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		baseURL:   normalizeBaseURL(server),
		client:    &http.Client{Timeout: DefaultTimeout},
		store:     store,
		nav:       discardNavigator{},
		observer:  nopObserver{},
		logger:    logger.Discard(),
		userAgent: "sharepay-cli/" + buildinfo.Version,
		newID:     func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(d)
	}
	d.refresher = &Refresher{d: d}
	return d
}

// BaseURL returns the server base URL.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Refresher returns the refresh sub-operation bound to this dispatcher.
func (d *Dispatcher) Refresher() *Refresher {
	return d.refresher
}

// Dispatch sends req with the stored token. On a 401 it refreshes the
// token once and resends once. When that is not enough the stored
// credentials are cleared, the navigator is sent to LoginPath and
// domain.ErrAuthExpired is returned.
//
// Any response other than 401 is returned as is; the caller owns its body.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (*http.Response, error) {
	reqID := d.newID()
	ctx = logger.WithRequestID(ctx, reqID)
	log := d.logger.With("request_id", reqID).WithContext(ctx)

	tok := d.currentToken(ctx)
	resp, err := d.send(ctx, req, tok, reqID)
	if err != nil {
		log.Error("request failed", "method", req.Method, "target", req.Target, "error", err)
		d.observer.ObserveDispatch(metric.OutcomeTransportError)
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		d.observer.ObserveDispatch(outcomeFor(resp.StatusCode))
		return resp, nil
	}
	drain(resp)

	log.Debug("unauthorized, refreshing", "target", req.Target, "token_fp", token.Fingerprint(tok))
	newTok, err := d.refresher.Refresh(ctx)
	if err != nil {
		log.Warn("token refresh failed", "error", err)
		return nil, d.expire(ctx, log)
	}

	resp, err = d.send(ctx, req.Clone(), newTok, reqID)
	if err != nil {
		log.Error("retry failed", "method", req.Method, "target", req.Target, "error", err)
		d.observer.ObserveDispatch(metric.OutcomeTransportError)
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		log.Warn("still unauthorized after refresh", "target", req.Target)
		return nil, d.expire(ctx, log)
	}

	d.observer.ObserveDispatch(outcomeFor(resp.StatusCode))
	return resp, nil
}

// Send makes exactly one attempt with the stored token, if any, and
// returns whatever the server answers, 401 included.
func (d *Dispatcher) Send(ctx context.Context, req *Request) (*http.Response, error) {
	reqID := d.newID()
	ctx = logger.WithRequestID(ctx, reqID)

	resp, err := d.send(ctx, req, d.currentToken(ctx), reqID)
	if err != nil {
		d.logger.With("request_id", reqID).WithContext(ctx).
			Error("request failed", "method", req.Method, "target", req.Target, "error", err)
		return nil, err
	}
	return resp, nil
}

func (d *Dispatcher) currentToken(ctx context.Context) string {
	tok, err := d.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			d.logger.WithContext(ctx).Warn("read credentials", "error", err)
		}
		return ""
	}
	return tok
}

// expire ends the session: clear, redirect once, report.
func (d *Dispatcher) expire(ctx context.Context, log logger.Logger) error {
	if err := d.store.Clear(ctx); err != nil {
		log.Error("clear credentials", "error", err)
	}
	d.nav.Redirect(LoginPath)
	d.observer.ObserveDispatch(metric.OutcomeAuthExpired)
	return domain.ErrAuthExpired
}

// send performs one HTTP exchange. The caller's Authorization header is
// replaced whenever tok is set.
func (d *Dispatcher) send(ctx context.Context, req *Request, tok, reqID string) (*http.Response, error) {
	httpReq, err := d.build(ctx, req, reqID)
	if err != nil {
		return nil, err
	}
	if tok != "" {
		httpReq.Header.Set(headerAuth, token.FormatBearer(tok))
	}
	return d.do(httpReq)
}

func (d *Dispatcher) build(ctx context.Context, req *Request, reqID string) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	url := d.resolve(req.Target)

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	httpReq.Header.Set(headerCT, contentTypeJSON)
	httpReq.Header.Set(headerUA, d.userAgent)
	httpReq.Header.Set(HeaderRequestID, reqID)
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	return httpReq, nil
}

func (d *Dispatcher) do(httpReq *http.Request) (*http.Response, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(httpReq.Context()); err != nil {
			return nil, &TransportError{Method: httpReq.Method, URL: httpReq.URL.String(), Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		d.observer.ObserveRequest(httpReq.Method, 0, time.Since(start))
		return nil, &TransportError{Method: httpReq.Method, URL: httpReq.URL.String(), Err: err}
	}
	d.observer.ObserveRequest(httpReq.Method, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (d *Dispatcher) resolve(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return d.baseURL + target
}

func normalizeBaseURL(server string) string {
	base := strings.TrimRight(strings.TrimSpace(server), "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base
}

func outcomeFor(status int) string {
	if status >= 500 {
		return metric.OutcomeServerError
	}
	return metric.OutcomeOK
}

type discardNavigator struct{}

func (discardNavigator) Redirect(string) {}

type nopObserver struct{}

func (nopObserver) ObserveDispatch(string)                    {}
func (nopObserver) ObserveRefresh(bool)                       {}
func (nopObserver) ObserveRequest(string, int, time.Duration) {}

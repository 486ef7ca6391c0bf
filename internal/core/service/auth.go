package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
	"github.com/sharepay/sharepay-go/pkg/token"
)

// API paths of the auth endpoints.
const (
	PathRegister = "/api/register"
	PathLogin    = "/api/login"
	PathLogout   = "/api/logout"
)

// AuthService signs users in and out.
type AuthService struct {
	d      Doer
	store  SessionStore
	nav    Navigator
	logger logger.Logger
	now    func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(d Doer, store SessionStore, nav Navigator, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.Discard()
	}
	return &AuthService{d: d, store: store, nav: nav, logger: log, now: time.Now}
}

// Register creates an account. It does not sign in.
func (s *AuthService) Register(ctx context.Context, in *domain.RegisterInput) (*domain.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	req, err := newRequest(http.MethodPost, PathRegister, in)
	if err != nil {
		return nil, err
	}
	resp, err := s.d.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	var msg domain.Message
	if err := connection.ParseResponse(resp, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Login exchanges credentials for a token pair and stores both tokens.
// Wrong credentials yield domain.ErrBadLogin.
func (s *AuthService) Login(ctx context.Context, in *domain.LoginInput) (*domain.TokenPair, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	req, err := newRequest(http.MethodPost, PathLogin, in)
	if err != nil {
		return nil, err
	}
	resp, err := s.d.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	var pair domain.TokenPair
	if err := connection.ParseResponse(resp, &pair); err != nil {
		var se *connection.ServerError
		if errors.As(err, &se) && se.Status == http.StatusUnauthorized {
			return nil, domain.ErrBadLogin.WithCause(err)
		}
		return nil, err
	}
	if !pair.Valid() {
		return nil, domain.ErrServer.WithDetails("login response carried no access token")
	}
	if pair.RefreshToken == "" {
		for _, c := range resp.Cookies() {
			if c.Name == connection.RefreshCookie {
				pair.RefreshToken = c.Value
			}
		}
	}

	if err := s.store.SetSession(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).Info("logged in", "user", in.Username, "token_fp", token.Fingerprint(pair.AccessToken))
	return &pair, nil
}

// Logout tells the server, clears the local session and goes to the home
// page. The server call is best effort; only a local failure is returned.
func (s *AuthService) Logout(ctx context.Context) error {
	log := s.logger.WithContext(ctx)

	resp, err := s.d.Send(ctx, connection.NewRequest(http.MethodPost, PathLogout))
	if err != nil {
		log.Warn("logout request failed", "error", err)
	} else if err := connection.ParseResponse(resp, nil); err != nil {
		log.Warn("logout rejected", "error", err)
	}

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.nav.Redirect("/")
	return nil
}

// SessionStatus describes the locally stored session.
type SessionStatus struct {
	LoggedIn   bool      `json:"logged_in"`
	Subject    string    `json:"subject,omitempty"`
	IssuedAt   time.Time `json:"issued_at,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitempty"`
	Expired    bool      `json:"expired"`
	HasRefresh bool      `json:"has_refresh"`
	TokenFP    string    `json:"token_fp,omitempty"`
}

// Status reads the stored access token's claims without verifying its
// signature; the client has no key and only wants to show them. Opaque
// tokens report LoggedIn with no claims.
func (s *AuthService) Status(ctx context.Context) (*SessionStatus, error) {
	tok, err := s.store.Get(ctx)
	if errors.Is(err, domain.ErrNoCredential) {
		return &SessionStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	st := &SessionStatus{LoggedIn: true, TokenFP: token.Fingerprint(tok)}
	if _, err := s.store.RefreshToken(ctx); err == nil {
		st.HasRefresh = true
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		s.logger.WithContext(ctx).Debug("access token is not a JWT", "error", err)
		return st, nil
	}
	st.Subject = claims.Subject
	if claims.IssuedAt != nil {
		st.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		st.ExpiresAt = claims.ExpiresAt.Time
		st.Expired = !s.now().Before(st.ExpiresAt)
	}
	return st, nil
}

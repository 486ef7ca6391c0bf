package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sharepay/sharepay-go/internal/core/domain"
)

func TestLoginStoresTokenPair(t *testing.T) {
	f := newAPIFixture(t)
	f.mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"access_token":  "acc-1",
			"refresh_token": "ref-1",
			"token_type":    "bearer",
		})
	})

	svc := NewAuthService(f.d, f.store, f.nav, nil)
	pair, err := svc.Login(context.Background(), &domain.LoginInput{Username: "amy", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken != "acc-1" {
		t.Errorf("AccessToken = %q", pair.AccessToken)
	}

	ctx := context.Background()
	if tok, _ := f.store.Get(ctx); tok != "acc-1" {
		t.Errorf("stored access = %q", tok)
	}
	if ref, _ := f.store.RefreshToken(ctx); ref != "ref-1" {
		t.Errorf("stored refresh = %q", ref)
	}

	reqs := f.requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost {
		t.Fatalf("requests = %+v", reqs)
	}
	if !strings.Contains(reqs[0].Body, `"username":"amy"`) {
		t.Errorf("body = %s", reqs[0].Body)
	}
}

func TestLoginRefreshFromCookie(t *testing.T) {
	f := newAPIFixture(t)
	f.mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "ref-cookie", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "acc", "token_type": "bearer"})
	})

	svc := NewAuthService(f.d, f.store, f.nav, nil)
	if _, err := svc.Login(context.Background(), &domain.LoginInput{Username: "amy", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if ref, _ := f.store.RefreshToken(context.Background()); ref != "ref-cookie" {
		t.Errorf("stored refresh = %q", ref)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	f := newAPIFixture(t)
	f.mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		detail(w, http.StatusUnauthorized, "bad credentials")
	})
	f.mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		t.Error("login must not trigger a refresh")
	})

	svc := NewAuthService(f.d, f.store, f.nav, nil)
	_, err := svc.Login(context.Background(), &domain.LoginInput{Username: "amy", Password: "nope"})
	if !errors.Is(err, domain.ErrBadLogin) {
		t.Fatalf("err = %v, want ErrBadLogin", err)
	}
	if f.store.Has(context.Background()) {
		t.Error("store should stay empty")
	}
	if len(f.nav.Paths()) != 0 {
		t.Errorf("unexpected redirects %v", f.nav.Paths())
	}
}

func TestLoginValidation(t *testing.T) {
	f := newAPIFixture(t)
	svc := NewAuthService(f.d, f.store, f.nav, nil)

	_, err := svc.Login(context.Background(), &domain.LoginInput{Username: "  ", Password: "pw"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if n := len(f.requests()); n != 0 {
		t.Errorf("%d requests sent for invalid input", n)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.RegisterInput
		status  int
		wantErr error
	}{
		{"ok", domain.RegisterInput{Username: "amy", Email: "amy@example.com", Password: "pw"}, http.StatusOK, nil},
		{"taken", domain.RegisterInput{Username: "amy", Email: "amy@example.com", Password: "pw"}, http.StatusBadRequest, domain.ErrBadRequest},
		{"bad email", domain.RegisterInput{Username: "amy", Email: "amy@", Password: "pw"}, 0, domain.ErrInvalidEmail},
		{"missing", domain.RegisterInput{Email: "amy@example.com"}, 0, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			f.mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
				if tt.status != http.StatusOK {
					detail(w, tt.status, "username taken")
					return
				}
				writeJSON(w, http.StatusOK, map[string]string{"message": "registered"})
			})

			svc := NewAuthService(f.d, f.store, f.nav, nil)
			msg, err := svc.Register(context.Background(), &tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register: %v", err)
			}
			if msg.Message != "registered" {
				t.Errorf("message = %q", msg.Message)
			}
		})
	}
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	f := newAPIFixture(t)
	f.login(t, "acc", "ref")
	f.mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		detail(w, http.StatusInternalServerError, "boom")
	})

	svc := NewAuthService(f.d, f.store, f.nav, nil)
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if f.store.Has(context.Background()) {
		t.Error("store not cleared")
	}
	if got := f.nav.Paths(); len(got) != 1 || got[0] != "/" {
		t.Errorf("redirects = %v, want [/]", got)
	}

	reqs := f.requests()
	if len(reqs) != 1 || reqs[0].Auth != "Bearer acc" {
		t.Errorf("logout request = %+v", reqs)
	}
}

func TestLogoutServerUnreachable(t *testing.T) {
	f := newAPIFixture(t)
	f.login(t, "acc", "ref")
	f.srv.Close()

	svc := NewAuthService(f.d, f.store, f.nav, nil)
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if f.store.Has(context.Background()) {
		t.Error("store not cleared")
	}
}

func TestStatus(t *testing.T) {
	f := newAPIFixture(t)
	svc := NewAuthService(f.d, f.store, f.nav, nil)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.LoggedIn {
		t.Error("LoggedIn with empty store")
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	claims := jwt.RegisteredClaims{
		Subject:   "amy",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatal(err)
	}
	f.login(t, signed, "ref")

	st, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.LoggedIn || st.Subject != "amy" || !st.Expired || !st.HasRefresh {
		t.Errorf("status = %+v", st)
	}
	if !st.ExpiresAt.Equal(now.Add(-time.Minute)) {
		t.Errorf("ExpiresAt = %v", st.ExpiresAt)
	}
}

func TestStatusOpaqueToken(t *testing.T) {
	f := newAPIFixture(t)
	f.login(t, "not-a-jwt", "")
	svc := NewAuthService(f.d, f.store, f.nav, nil)

	st, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.LoggedIn || st.Subject != "" || st.Expired {
		t.Errorf("status = %+v", st)
	}
}

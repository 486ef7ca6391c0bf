package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/pkg/token"
)

// RefreshPath is the server endpoint that exchanges a refresh credential
// for a new access token.
const RefreshPath = "/api/refresh"

// RefreshCookie carries the refresh credential, as the server expects it
// from a browser.
const RefreshCookie = "refresh_token"

// Refresher obtains a new access token from the server. It shares the
// HTTP client, store and observer of its Dispatcher but never calls
// Dispatch.
type Refresher struct {
	d *Dispatcher
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh posts to RefreshPath and stores the new access token before
// returning it. A rotated refresh credential, from the body or a
// Set-Cookie header, replaces the stored one. Every failure is reported
// as domain.ErrRefreshFailed.
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	tok, err := r.refresh(ctx)
	r.d.observer.ObserveRefresh(err == nil)
	return tok, err
}

func (r *Refresher) refresh(ctx context.Context) (string, error) {
	d := r.d
	reqID := d.newID()

	httpReq, err := d.build(ctx, &Request{Method: http.MethodPost, Target: RefreshPath}, reqID)
	if err != nil {
		return "", domain.ErrRefreshFailed.Wrap(err)
	}
	if rt, err := d.store.RefreshToken(ctx); err == nil {
		httpReq.AddCookie(&http.Cookie{Name: RefreshCookie, Value: rt})
	} else if !errors.Is(err, domain.ErrNoCredential) {
		d.logger.WithContext(ctx).Warn("read refresh credential", "error", err)
	}

	resp, err := d.do(httpReq)
	if err != nil {
		return "", domain.ErrRefreshFailed.Wrap(err)
	}

	var body refreshResponse
	if err := ParseResponse(resp, &body); err != nil {
		return "", domain.ErrRefreshFailed.Wrap(err)
	}
	if body.AccessToken == "" {
		return "", domain.ErrRefreshFailed.WithDetails("response carried no access token")
	}

	if err := d.store.Set(ctx, body.AccessToken); err != nil {
		return "", domain.ErrRefreshFailed.Wrap(fmt.Errorf("store access token: %w", err))
	}

	rotated := body.RefreshToken
	if rotated == "" {
		rotated = cookieValue(resp, RefreshCookie)
	}
	if rotated != "" {
		if err := d.store.SetRefreshToken(ctx, rotated); err != nil {
			d.logger.WithContext(ctx).Warn("store rotated refresh credential", "error", err)
		}
	}

	d.logger.WithContext(ctx).Debug("token refreshed", "token_fp", token.Fingerprint(body.AccessToken))
	return body.AccessToken, nil
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

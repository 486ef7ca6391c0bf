package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// Doer sends API requests. *connection.Dispatcher implements it.
type Doer interface {
	Dispatch(ctx context.Context, req *connection.Request) (*http.Response, error)
	Send(ctx context.Context, req *connection.Request) (*http.Response, error)
}

// SessionStore is the part of the credential store the services use.
type SessionStore interface {
	Get(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetSession(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// Navigator moves the user to another page.
type Navigator interface {
	Redirect(path string)
}

// call dispatches an authenticated JSON request and decodes the answer
// into out. body and out may be nil.
func call(ctx context.Context, d Doer, method, path string, body, out any) error {
	req, err := newRequest(method, path, body)
	if err != nil {
		return err
	}
	resp, err := d.Dispatch(ctx, req)
	if err != nil {
		return err
	}
	return connection.ParseResponse(resp, out)
}

func newRequest(method, path string, body any) (*connection.Request, error) {
	if body == nil {
		return connection.NewRequest(method, path), nil
	}
	req, err := connection.NewJSONRequest(method, path, body)
	if err != nil {
		return nil, domain.ErrInvalidArgument.Wrap(err)
	}
	return req, nil
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("%s must be a positive id", name))
	}
	return nil
}

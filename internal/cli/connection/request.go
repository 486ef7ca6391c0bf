package connection

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Request describes one API call. Target is a path relative to the
// server base URL, or an absolute URL. Dispatch never mutates a Request.
type Request struct {
	Method string
	Target string
	Header http.Header
	Body   []byte
}

// NewRequest creates a Request without a body.
func NewRequest(method, target string) *Request {
	return &Request{
		Method: method,
		Target: target,
		Header: make(http.Header),
	}
}

// NewJSONRequest creates a Request with v encoded as its JSON body.
func NewJSONRequest(method, target string, v any) (*Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	r := NewRequest(method, target)
	r.Body = body
	return r, nil
}

// SetHeader sets a caller header and returns r for chaining.
func (r *Request) SetHeader(key, value string) *Request {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	cp := &Request{
		Method: r.Method,
		Target: r.Target,
		Header: r.Header.Clone(),
	}
	if r.Body != nil {
		cp.Body = append([]byte(nil), r.Body...)
	}
	return cp
}

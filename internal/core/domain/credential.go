package domain

import "time"

// Credentials is the persisted login state of one client install.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Empty reports whether neither token is set.
func (c *Credentials) Empty() bool {
	return c == nil || (c.AccessToken == "" && c.RefreshToken == "")
}

// Clone returns an independent copy.
func (c *Credentials) Clone() *Credentials {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

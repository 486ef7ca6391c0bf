package domain

import "strings"

// User is the account the current session belongs to.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterInput is the body of POST /api/register.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields and the email shape.
func (in *RegisterInput) Validate() error {
	if err := ValidateRequired(
		Field{"username", in.Username},
		Field{"email", in.Email},
		Field{"password", in.Password},
	); err != nil {
		return err
	}
	if !ValidateEmail(in.Email) {
		return ErrInvalidEmail.WithDetails(in.Email)
	}
	return nil
}

// LoginInput is the body of POST /api/login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (in *LoginInput) Validate() error {
	return ValidateRequired(Field{"username", in.Username}, Field{"password", in.Password})
}

// TokenPair is returned by login and refresh. RefreshToken is only set
// by login and by servers that rotate refresh credentials.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Valid reports whether the pair carries a usable access token.
func (p *TokenPair) Valid() bool {
	return p != nil && strings.TrimSpace(p.AccessToken) != ""
}

// Message is the generic acknowledgement body of mutating endpoints.
type Message struct {
	Message string `json:"message"`
	TripID  int64  `json:"trip_id,omitempty"`
	Name    string `json:"name,omitempty"`
}

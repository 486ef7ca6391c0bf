package domain

import "strings"

// DefaultCurrency is used when a trip or payment names none.
const DefaultCurrency = "TWD"

// TripSummary is one entry of the dashboard trip list.
type TripSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency"`
	CreatedAt   string `json:"created_at"`
}

// Dashboard is the body of GET /api/dashboard.
type Dashboard struct {
	User  User          `json:"user"`
	Trips []TripSummary `json:"trips"`
}

// TripInput is the body of POST /api/trips.
type TripInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency"`
}

// Normalize fills defaults and trims whitespace.
func (in *TripInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
}

// Validate checks required fields and the currency code.
func (in *TripInput) Validate() error {
	if err := ValidateRequired(Field{"name", in.Name}); err != nil {
		return err
	}
	return ValidateCurrency(in.Currency)
}

// MemberInput is the body of POST /api/trips/{id}/members. A name that
// matches a registered username adds that user; any other name adds a
// guest member.
type MemberInput struct {
	Name string `json:"name"`
}

// Validate checks the member name.
func (in *MemberInput) Validate() error {
	return ValidateRequired(Field{"name", in.Name})
}

// Transfer is one settlement transaction.
type Transfer struct {
	FromUser string  `json:"from_user"`
	ToUser   string  `json:"to_user"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Settlement is the body of GET /api/trips/{id}/settlement.
type Settlement struct {
	Transactions []Transfer `json:"transactions"`
}

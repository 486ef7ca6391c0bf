package domain

import "strings"

// PaymentInput is the body of POST /api/trips/{id}/payments.
type PaymentInput struct {
	TripID            int64   `json:"trip_id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	Description       string  `json:"description"`
	Date              string  `json:"date,omitempty"`
	PayerTripMemberID int64   `json:"payer_trip_member_id,omitempty"`
	SplitWith         []int64 `json:"split_with"`
}

// Normalize fills defaults and trims whitespace.
func (in *PaymentInput) Normalize() {
	in.Description = strings.TrimSpace(in.Description)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
}

// Validate checks the payment before it is sent.
func (in *PaymentInput) Validate() error {
	if in.TripID <= 0 {
		return ErrInvalidArgument.WithDetails("trip id")
	}
	if err := ValidateRequired(Field{"description", in.Description}); err != nil {
		return err
	}
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(in.SplitWith) == 0 {
		return ErrEmptySplit
	}
	if err := ValidateCurrency(in.Currency); err != nil {
		return err
	}
	if in.Date != "" && !ValidateDate(in.Date) {
		return ErrInvalidDate.WithDetails(in.Date)
	}
	return nil
}

// Payment is the body of GET /api/payments/{id}.
type Payment struct {
	ID                int64   `json:"id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	Description       string  `json:"description"`
	Date              string  `json:"date,omitempty"`
	PayerTripMemberID int64   `json:"payer_trip_member_id,omitempty"`
	SplitWith         []int64 `json:"split_with"`
}

// PaymentUpdate is the body of PUT /api/payments/{id}. Nil fields keep
// their stored value. The server replaces the split list wholesale, so
// SplitWith is always sent.
type PaymentUpdate struct {
	Amount            *float64 `json:"amount,omitempty"`
	Currency          *string  `json:"currency,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Date              *string  `json:"date,omitempty"`
	PayerTripMemberID *int64   `json:"payer_trip_member_id,omitempty"`
	SplitWith         []int64  `json:"split_with"`
}

// Validate checks the fields that are set.
func (u *PaymentUpdate) Validate() error {
	if u.Amount != nil && *u.Amount <= 0 {
		return ErrInvalidAmount
	}
	if u.Currency != nil {
		if err := ValidateCurrency(*u.Currency); err != nil {
			return err
		}
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return ErrValidation.WithDetails("description")
	}
	if u.Date != nil && !ValidateDate(*u.Date) {
		return ErrInvalidDate.WithDetails(*u.Date)
	}
	if len(u.SplitWith) == 0 {
		return ErrEmptySplit
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// PathPayments is the payment endpoint root.
const PathPayments = "/api/payments"

// PaymentService records and edits payments.
type PaymentService struct {
	d Doer
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(d Doer) *PaymentService {
	return &PaymentService{d: d}
}

// AddPayment records a payment on in.TripID.
func (s *PaymentService) AddPayment(ctx context.Context, in *domain.PaymentInput) (*domain.Message, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var msg domain.Message
	if err := call(ctx, s.d, http.MethodPost, tripPath(in.TripID, "payments"), in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetPayment fetches one payment.
func (s *PaymentService) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	if err := requireID("payment", id); err != nil {
		return nil, err
	}
	var p domain.Payment
	if err := call(ctx, s.d, http.MethodGet, paymentPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePayment edits a payment. Only the payer may do so; the server
// answers 403 otherwise.
func (s *PaymentService) UpdatePayment(ctx context.Context, id int64, u *domain.PaymentUpdate) (*domain.Message, error) {
	if err := requireID("payment", id); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var msg domain.Message
	if err := call(ctx, s.d, http.MethodPut, paymentPath(id), u, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func paymentPath(id int64) string {
	return fmt.Sprintf("%s/%d", PathPayments, id)
}

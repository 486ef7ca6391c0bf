package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// PathDashboard and PathTrips are the trip endpoints.
const (
	PathDashboard = "/api/dashboard"
	PathTrips     = "/api/trips"
)

// TripService reads the dashboard and manages trips.
type TripService struct {
	d Doer
}

// NewTripService creates a TripService.
func NewTripService(d Doer) *TripService {
	return &TripService{d: d}
}

// Dashboard returns the signed-in user and their trips.
func (s *TripService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var dash domain.Dashboard
	if err := call(ctx, s.d, http.MethodGet, PathDashboard, nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// CreateTrip creates a trip owned by the current user. The returned
// message carries the new trip id.
func (s *TripService) CreateTrip(ctx context.Context, in *domain.TripInput) (*domain.Message, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var msg domain.Message
	if err := call(ctx, s.d, http.MethodPost, PathTrips, in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AddMember adds a registered user or a guest to a trip.
func (s *TripService) AddMember(ctx context.Context, tripID int64, in *domain.MemberInput) (*domain.Message, error) {
	if err := requireID("trip", tripID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var msg domain.Message
	if err := call(ctx, s.d, http.MethodPost, tripPath(tripID, "members"), in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Settlement returns the transfers that square up a trip.
func (s *TripService) Settlement(ctx context.Context, tripID int64) (*domain.Settlement, error) {
	if err := requireID("trip", tripID); err != nil {
		return nil, err
	}
	var st domain.Settlement
	if err := call(ctx, s.d, http.MethodGet, tripPath(tripID, "settlement"), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func tripPath(id int64, sub string) string {
	return fmt.Sprintf("%s/%d/%s", PathTrips, id, sub)
}

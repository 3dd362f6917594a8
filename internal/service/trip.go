package service

import (
	"context"
	"strings"
	"time"

	"github.com/smarttravel/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dates are accepted as plain days or full RFC3339 timestamps.
var tripDateLayouts = []string{"2006-01-02", time.RFC3339}

// TripService handles trip CRUD with ownership checks
type TripService struct {
	tripRepo domain.TripRepository
}

// NewTripService creates a new trip service
func NewTripService(tripRepo domain.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// ParseTripDate parses a trip date string
func ParseTripDate(value string) (time.Time, error) {
	for _, layout := range tripDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate
}

// Create validates and stores a new trip owned by userID
func (s *TripService) Create(ctx context.Context, userID string, input domain.TripCreate) (*domain.Trip, error) {
	start, err := ParseTripDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseTripDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, domain.ErrDateOrder
	}

	now := time.Now().UTC()
	trip := &domain.Trip{
		ID:          primitive.NewObjectID().Hex(),
		UserID:      userID,
		Destination: strings.TrimSpace(input.Destination),
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Get returns a trip if it exists and belongs to userID
func (s *TripService) Get(ctx context.Context, userID, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, domain.ErrTripNotFound
	}
	if trip.UserID != userID {
		return nil, domain.ErrPermission
	}
	return trip, nil
}

// List returns the user's trips narrowed by filter
func (s *TripService) List(ctx context.Context, userID string, filter domain.TripFilter) (*domain.TripPage, error) {
	return s.tripRepo.ListByUser(ctx, userID, filter)
}

// Update applies a partial update to an owned trip. The date-order
// invariant is re-checked against the merged values.
func (s *TripService) Update(ctx context.Context, userID, tripID string, input domain.TripUpdate) (*domain.Trip, error) {
	trip, err := s.Get(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if input.Destination != nil {
		dest := strings.TrimSpace(*input.Destination)
		if dest == "" {
			return nil, domain.ErrEmptyField
		}
		trip.Destination = dest
	}
	if input.StartDate != nil {
		start, err := ParseTripDate(*input.StartDate)
		if err != nil {
			return nil, err
		}
		trip.StartDate = start
	}
	if input.EndDate != nil {
		end, err := ParseTripDate(*input.EndDate)
		if err != nil {
			return nil, err
		}
		trip.EndDate = end
	}
	if input.Description != nil {
		trip.Description = strings.TrimSpace(*input.Description)
	}

	if !trip.EndDate.After(trip.StartDate) {
		return nil, domain.ErrDateOrder
	}

	trip.UpdatedAt = time.Now().UTC()
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Delete removes an owned trip
func (s *TripService) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.Get(ctx, userID, tripID); err != nil {
		return err
	}
	return s.tripRepo.Delete(ctx, tripID)
}

package domain

import (
	"context"
	"time"
)

// Trip represents a planned trip owned by a single user
type Trip struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"userId" bson:"user_id"`
	Destination string    `json:"destination" bson:"destination"`
	StartDate   time.Time `json:"startDate" bson:"start_date"`
	EndDate     time.Time `json:"endDate" bson:"end_date"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// TripCreate represents trip creation data
type TripCreate struct {
	Destination string `json:"destination" validate:"required,min=1,max=255"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Description string `json:"description" validate:"max=2000"`
}

// TripUpdate represents a partial trip update. Nil fields are left unchanged.
type TripUpdate struct {
	Destination *string `json:"destination,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TripFilter narrows and orders a trip listing
type TripFilter struct {
	// StartDate/EndDate bound the trip's start date when non-zero.
	StartDate time.Time
	EndDate   time.Time

	SortBy string // start_date, end_date, destination, created_at
	Order  string // asc or desc

	// Page is 1-based; Limit <= 0 means no pagination.
	Page  int
	Limit int
}

// TripPage is one page of a paginated trip listing
type TripPage struct {
	Trips      []Trip
	TotalItems int64
}

// TripRepository defines the interface for trip storage
type TripRepository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id string) (*Trip, error)
	ListByUser(ctx context.Context, userID string, filter TripFilter) (*TripPage, error)
	Update(ctx context.Context, trip *Trip) error
	Delete(ctx context.Context, id string) error
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/smarttravel/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tripCollection = "trips"

// TripRepository implements domain.TripRepository
type TripRepository struct {
	coll *mongo.Collection
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *DB) *TripRepository {
	return &TripRepository{coll: db.Collection(tripCollection)}
}

// EnsureIndexes creates the owner index used by every listing query
func (r *TripRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create trip index: %w", err)
	}
	return nil
}

// Create inserts a new trip
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if _, err := r.coll.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by ID. Returns (nil, nil) when not found.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	var trip domain.Trip
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// ListByUser returns the user's trips narrowed by the filter. The total
// count covers the filtered set, not just the returned page.
func (r *TripRepository) ListByUser(ctx context.Context, userID string, filter domain.TripFilter) (*domain.TripPage, error) {
	query := bson.M{"user_id": userID}

	dateRange := bson.M{}
	if !filter.StartDate.IsZero() {
		dateRange["$gte"] = filter.StartDate
	}
	if !filter.EndDate.IsZero() {
		dateRange["$lte"] = filter.EndDate
	}
	if len(dateRange) > 0 {
		query["start_date"] = dateRange
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count trips: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "start_date"
	}
	order := 1
	if filter.Order == "desc" {
		order = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: sortBy, Value: order}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit))
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []domain.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return &domain.TripPage{Trips: trips, TotalItems: total}, nil
}

// Update replaces the trip's mutable fields
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": trip.ID},
		bson.M{"$set": bson.M{
			"destination": trip.Destination,
			"start_date":  trip.StartDate,
			"end_date":    trip.EndDate,
			"description": trip.Description,
			"updated_at":  trip.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

// Delete removes a trip
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

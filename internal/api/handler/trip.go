package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/smarttravel/api/internal/api/middleware"
	"github.com/smarttravel/api/internal/api/response"
	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/service"
)

// sortFields maps API sort keys to stored field names
var sortFields = map[string]string{
	"startDate":   "start_date",
	"endDate":     "end_date",
	"destination": "destination",
	"createdAt":   "created_at",
}

// TripHandler handles trip CRUD endpoints
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// Create handles trip creation
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	var input domain.TripCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		if errs, ok := fieldErrors(err); ok {
			response.ValidationFailed(w, errs)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	trip, err := h.tripService.Create(r.Context(), userID, input)
	if err != nil {
		h.writeTripError(w, err)
		return
	}

	response.Created(w, trip)
}

// List returns the user's trips, optionally filtered, sorted and paginated
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	q := r.URL.Query()
	filter := domain.TripFilter{Order: q.Get("order")}

	if v := q.Get("startDate"); v != "" {
		t, err := service.ParseTripDate(v)
		if err != nil {
			response.BadRequest(w, "invalid startDate")
			return
		}
		filter.StartDate = t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := service.ParseTripDate(v)
		if err != nil {
			response.BadRequest(w, "invalid endDate")
			return
		}
		filter.EndDate = t
	}
	if v := q.Get("sortBy"); v != "" {
		field, ok := sortFields[v]
		if !ok {
			response.BadRequest(w, "invalid sortBy")
			return
		}
		filter.SortBy = field
	}

	paginated := q.Get("page") != "" || q.Get("limit") != ""
	if paginated {
		filter.Page, _ = strconv.Atoi(q.Get("page"))
		filter.Limit, _ = strconv.Atoi(q.Get("limit"))
		if filter.Page < 1 {
			filter.Page = 1
		}
		if filter.Limit < 1 {
			filter.Limit = 10
		}
	}

	page, err := h.tripService.List(r.Context(), userID, filter)
	if err != nil {
		h.writeTripError(w, err)
		return
	}

	if !paginated {
		response.OK(w, page.Trips)
		return
	}

	totalPages := int(page.TotalItems) / filter.Limit
	if int(page.TotalItems)%filter.Limit != 0 {
		totalPages++
	}

	response.OK(w, map[string]any{
		"trips": page.Trips,
		"pagination": map[string]any{
			"currentPage": filter.Page,
			"totalPages":  totalPages,
			"totalItems":  page.TotalItems,
		},
	})
}

// Get returns a single owned trip
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	trip, err := h.tripService.Get(r.Context(), userID, chi.URLParam(r, "tripID"))
	if err != nil {
		h.writeTripError(w, err)
		return
	}

	response.OK(w, trip)
}

// Update applies a partial update to an owned trip
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	var input domain.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	trip, err := h.tripService.Update(r.Context(), userID, chi.URLParam(r, "tripID"), input)
	if err != nil {
		h.writeTripError(w, err)
		return
	}

	response.OK(w, trip)
}

// Delete removes an owned trip
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	if err := h.tripService.Delete(r.Context(), userID, chi.URLParam(r, "tripID")); err != nil {
		h.writeTripError(w, err)
		return
	}

	response.OK(w, map[string]any{"message": "Trip deleted successfully"})
}

func (h *TripHandler) writeTripError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTripNotFound):
		response.NotFound(w, "Trip not found")
	case errors.Is(err, domain.ErrPermission):
		response.Forbidden(w, "Permission denied")
	case errors.Is(err, domain.ErrInvalidDate):
		response.ValidationFailed(w, map[string]string{"date": "invalid date format"})
	case errors.Is(err, domain.ErrDateOrder):
		response.ValidationFailed(w, map[string]string{"endDate": "end date must be after start date"})
	case errors.Is(err, domain.ErrEmptyField):
		response.ValidationFailed(w, map[string]string{"destination": "field is required"})
	default:
		response.InternalError(w, "Something went wrong")
	}
}

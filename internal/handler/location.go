package handler

import (
	"context"
	"net/http"
	"time"

	"location-tracker/internal/auth"
	"location-tracker/internal/models"
	"location-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

// LocationHandler handles location submission and history requests
type LocationHandler struct {
	ingest IngestService
	query  LocationQueryService
}

// IngestService interface for dependency injection
type IngestService interface {
	SubmitLocation(ctx context.Context, clientID string, in models.LocationInput) (*models.Location, error)
	SubmitBatch(ctx context.Context, clientID string, in []models.LocationInput) ([]models.Location, error)
}

// LocationQueryService interface for dependency injection
type LocationQueryService interface {
	ListLocations(ctx context.Context, actorID string, q models.LocationQuery) (*models.LocationsPage, error)
	LatestLocation(ctx context.Context, actorID, clientID string) (*models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(ingest IngestService, query LocationQueryService) *LocationHandler {
	return &LocationHandler{ingest: ingest, query: query}
}

// LocationRequest is one submitted GPS fix. Presence is checked here, ranges by the store.
type LocationRequest struct {
	Latitude  *float64  `json:"latitude" validate:"required" example:"35.681236"`
	Longitude *float64  `json:"longitude" validate:"required" example:"139.767125"`
	Accuracy  *float64  `json:"accuracy" validate:"required" example:"4.5"`
	Altitude  *float64  `json:"altitude,omitempty" example:"40.2"`
	Speed     *float64  `json:"speed,omitempty" example:"1.4"`
	Timestamp time.Time `json:"timestamp" validate:"required" example:"2025-05-01T09:00:00Z"`
}

func (r LocationRequest) input() models.LocationInput {
	return models.LocationInput{
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Accuracy:  *r.Accuracy,
		Altitude:  r.Altitude,
		Speed:     r.Speed,
		Timestamp: r.Timestamp,
	}
}

// BatchRequest is a list of GPS fixes stored together.
type BatchRequest struct {
	Locations []LocationRequest `json:"locations" validate:"required,dive"`
}

// SubmitResponse is returned by POST /locations.
type SubmitResponse struct {
	ID         int64     `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

// BatchResponse is returned by POST /locations/batch.
type BatchResponse struct {
	ReceivedCount int       `json:"received_count"`
	IDs           []int64   `json:"ids"`
	ReceivedAt    time.Time `json:"received_at"`
}

// Submit handles POST /locations requests
//
//	@Summary	Submit a location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		location	body		LocationRequest	true	"GPS fix"
//	@Success	201			{object}	SubmitResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	401			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/locations [post]
func (h *LocationHandler) Submit(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON payload")
		return
	}
	if err := validation.Struct(req); err != nil {
		respondError(c, err, "")
		return
	}

	loc, err := h.ingest.SubmitLocation(c.Request.Context(), auth.ClientID(c), req.input())
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{ID: loc.ID, ReceivedAt: loc.CreatedAt})
}

// SubmitBatch handles POST /locations/batch requests
//
//	@Summary	Submit several locations atomically
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		batch	body		BatchRequest	true	"GPS fixes"
//	@Success	201		{object}	BatchResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/locations/batch [post]
func (h *LocationHandler) SubmitBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON payload")
		return
	}
	if err := validation.Struct(req); err != nil {
		respondError(c, err, "")
		return
	}

	inputs := make([]models.LocationInput, len(req.Locations))
	for i, r := range req.Locations {
		inputs[i] = r.input()
	}

	locations, err := h.ingest.SubmitBatch(c.Request.Context(), auth.ClientID(c), inputs)
	if err != nil {
		respondError(c, err, "")
		return
	}

	resp := BatchResponse{ReceivedCount: len(locations), IDs: make([]int64, len(locations))}
	for i, loc := range locations {
		resp.IDs[i] = loc.ID
	}
	if len(locations) > 0 {
		resp.ReceivedAt = locations[0].CreatedAt
	}
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /locations/:client_id requests
//
//	@Summary	List a client's locations, newest first
//	@Tags		locations
//	@Produce	json
//	@Param		client_id	path		string	true	"Client ID"
//	@Param		start_time	query		string	false	"Inclusive lower bound (RFC3339)"
//	@Param		end_time	query		string	false	"Inclusive upper bound (RFC3339)"
//	@Param		limit		query		int		false	"Page size (1-1000)"	default(100)
//	@Param		offset		query		int		false	"Rows to skip"			default(0)
//	@Success	200			{object}	models.LocationsPage
//	@Failure	400			{object}	ErrorResponse
//	@Failure	403			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/locations/{client_id} [get]
func (h *LocationHandler) List(c *gin.Context) {
	window, ok := parseWindow(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	result, err := h.query.ListLocations(c.Request.Context(), auth.ClientID(c), models.LocationQuery{
		ClientID: c.Param("client_id"),
		Window:   window,
		Page:     page,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Latest handles GET /locations/:client_id/latest requests
//
//	@Summary	Most recent location of a client
//	@Tags		locations
//	@Produce	json
//	@Param		client_id	path		string	true	"Client ID"
//	@Success	200			{object}	models.Location
//	@Failure	403			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/locations/{client_id}/latest [get]
func (h *LocationHandler) Latest(c *gin.Context) {
	loc, err := h.query.LatestLocation(c.Request.Context(), auth.ClientID(c), c.Param("client_id"))
	if err != nil {
		respondError(c, err, "no locations found for this client")
		return
	}

	c.JSON(http.StatusOK, loc)
}

package handler

import (
	"context"
	"net/http"
	"strconv"

	"location-tracker/internal/auth"
	"location-tracker/internal/models"
	"location-tracker/internal/route"

	"github.com/gin-gonic/gin"
)

// RouteHandler handles route geometry requests
type RouteHandler struct {
	service RouteService
}

// RouteService interface for dependency injection
type RouteService interface {
	Route(ctx context.Context, actorID, clientID string, window models.TimeWindow, simplify bool) (*models.Route, error)
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(svc RouteService) *RouteHandler {
	return &RouteHandler{service: svc}
}

// Route handles GET /routes/:client_id requests
//
//	@Summary		Route of a client as GeoJSON
//	@Description	Points in the window ordered by event time. Routes longer than the configured
//	@Description	threshold are reduced by stride sampling unless simplify=false.
//	@Tags			routes
//	@Produce		json
//	@Param			client_id	path		string	true	"Client ID"
//	@Param			start_time	query		string	false	"Inclusive lower bound (RFC3339)"
//	@Param			end_time	query		string	false	"Inclusive upper bound (RFC3339)"
//	@Param			simplify	query		bool	false	"Decimate long routes"	default(true)
//	@Param			format		query		string	false	"geojson or json"		Enums(geojson, json)	default(geojson)
//	@Success		200			{object}	models.FeatureCollection
//	@Failure		400			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/routes/{client_id} [get]
func (h *RouteHandler) Route(c *gin.Context) {
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	simplify := true
	if raw := c.Query("simplify"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "simplify must be a boolean")
			return
		}
		simplify = v
	}

	format := c.DefaultQuery("format", "geojson")
	if format != "geojson" && format != "json" {
		badRequest(c, "format must be one of: geojson json")
		return
	}

	r, err := h.service.Route(c.Request.Context(), auth.ClientID(c), c.Param("client_id"), window, simplify)
	if err != nil {
		respondError(c, err, "no locations found for this client in the specified time range")
		return
	}

	if format == "json" {
		c.JSON(http.StatusOK, route.Points(*r))
		return
	}
	c.JSON(http.StatusOK, route.FeatureCollection(*r))
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"location-tracker/internal/models"
	"location-tracker/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// respondError maps a service error to a status code. Unexpected errors are logged and hidden.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	case errors.Is(err, models.ErrPermission):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not authorized to access this client's data"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMessage})
	default:
		_ = c.Error(err)
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// timeLayouts are accepted for start_time and end_time. Times without an offset are UTC.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		t, perr := time.Parse(layout, s)
		if perr == nil {
			return t.UTC(), nil
		}
		err = perr
	}
	return time.Time{}, err
}

// parseWindow reads the optional start_time and end_time query parameters.
func parseWindow(c *gin.Context) (models.TimeWindow, bool) {
	var window models.TimeWindow
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"start_time", &window.Start},
		{"end_time", &window.End},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := parseTime(raw)
		if err != nil {
			badRequest(c, p.name+" must be an RFC3339 timestamp")
			return models.TimeWindow{}, false
		}
		*p.dst = &t
	}
	return window, true
}

// parsePage reads limit and offset. Range checks are left to the store.
func parsePage(c *gin.Context) (models.Page, bool) {
	page := models.DefaultPage()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &page.Limit},
		{"offset", &page.Offset},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, p.name+" must be an integer")
			return models.Page{}, false
		}
		*p.dst = v
	}
	return page, true
}

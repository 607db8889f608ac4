package handler

import (
	"context"
	"net/http"

	"location-tracker/internal/auth"
	"location-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// LogHandler handles audit log requests
type LogHandler struct {
	service LogService
}

// LogService interface for dependency injection
type LogService interface {
	ListLogs(ctx context.Context, actorID string, q models.LogQuery) (*models.LogsPage, error)
}

// NewLogHandler creates a new log handler
func NewLogHandler(svc LogService) *LogHandler {
	return &LogHandler{service: svc}
}

// List handles GET /logs/:client_id requests
//
//	@Summary	List a client's audit records, newest first
//	@Tags		logs
//	@Produce	json
//	@Param		client_id	path		string	true	"Client ID"
//	@Param		start_time	query		string	false	"Inclusive lower bound (RFC3339)"
//	@Param		end_time	query		string	false	"Inclusive upper bound (RFC3339)"
//	@Param		action		query		string	false	"Only this action"
//	@Param		limit		query		int		false	"Page size (1-1000)"	default(100)
//	@Param		offset		query		int		false	"Rows to skip"			default(0)
//	@Success	200			{object}	models.LogsPage
//	@Failure	400			{object}	ErrorResponse
//	@Failure	403			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/logs/{client_id} [get]
func (h *LogHandler) List(c *gin.Context) {
	window, ok := parseWindow(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	result, err := h.service.ListLogs(c.Request.Context(), auth.ClientID(c), models.LogQuery{
		ClientID: c.Param("client_id"),
		Action:   c.Query("action"),
		Window:   window,
		Page:     page,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

package handler

import (
	"net/http"
	"testing"
	"time"

	"location-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLogHandler_List(t *testing.T) {
	logTime := time.Date(2025, 5, 1, 9, 0, 1, 0, time.UTC)

	tests := []struct {
		name           string
		target         string
		setupMock      func(m *MockLogService)
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "negative offset syntax",
			target:         "/logs/client-1?offset=-x",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "offset must be an integer"},
		},
		{
			name:   "limit out of range",
			target: "/logs/client-1?limit=5000",
			setupMock: func(m *MockLogService) {
				m.On("ListLogs", mock.Anything, "client-1", mock.Anything).Return(nil, models.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid request"},
		},
		{
			name:   "another client's logs",
			target: "/logs/client-2",
			setupMock: func(m *MockLogService) {
				m.On("ListLogs", mock.Anything, "client-1", mock.Anything).Return(nil, models.ErrPermission)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   map[string]interface{}{"error": "not authorized to access this client's data"},
		},
		{
			name:   "filtered by action",
			target: "/logs/client-1?action=location_submit",
			setupMock: func(m *MockLogService) {
				m.On("ListLogs", mock.Anything, "client-1", models.LogQuery{
					ClientID: "client-1",
					Action:   "location_submit",
					Page:     models.DefaultPage(),
				}).Return(&models.LogsPage{
					TotalCount: 1,
					Logs: []models.ClientLog{{
						ID:        3,
						ClientID:  "client-1",
						Action:    "location_submit",
						Details:   map[string]any{"location_id": float64(7)},
						Timestamp: logTime,
					}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"total_count": float64(1),
				"logs": []interface{}{
					map[string]interface{}{
						"id":        float64(3),
						"client_id": "client-1",
						"action":    "location_submit",
						"details":   map[string]interface{}{"location_id": float64(7)},
						"timestamp": "2025-05-01T09:00:01Z",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLogService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			h := NewLogHandler(svc)
			r := newTestEngine("client-1", func(r *gin.Engine) {
				r.GET("/logs/:client_id", h.List)
			})

			status, body := serve(t, r, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedBody, body)
			svc.AssertExpectations(t)
		})
	}
}

package service

import (
	"context"
	"testing"

	"location-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogService_ListLogs(t *testing.T) {
	q := models.LogQuery{ClientID: "client-a", Action: "location_submit", Page: models.DefaultPage()}
	logs := []models.ClientLog{
		{ID: 9, ClientID: "client-a", Action: "location_submit", Details: map[string]any{"location_id": float64(4)}, Timestamp: eventTime},
	}

	tests := []struct {
		name        string
		actorID     string
		callRepo    bool
		mockTotal   int64
		mockResult  []models.ClientLog
		mockError   error
		expected    *models.LogsPage
		expectError error
	}{
		{
			name:       "own logs",
			actorID:    "client-a",
			callRepo:   true,
			mockTotal:  1,
			mockResult: logs,
			expected:   &models.LogsPage{TotalCount: 1, Logs: logs},
		},
		{
			name:      "no logs",
			actorID:   "client-a",
			callRepo:  true,
			mockTotal: 0,
			expected:  &models.LogsPage{TotalCount: 0, Logs: []models.ClientLog{}},
		},
		{
			name:        "other client",
			actorID:     "client-b",
			expectError: models.ErrPermission,
		},
		{
			name:        "repository error",
			actorID:     "client-a",
			callRepo:    true,
			mockError:   assert.AnError,
			expectError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := NewLogService(mockRepo)
			if tt.callRepo {
				mockRepo.On("QueryClientLogs", mock.Anything, q).Return(tt.mockTotal, tt.mockResult, tt.mockError)
			}

			result, err := service.ListLogs(context.Background(), tt.actorID, q)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"location-tracker/internal/models"
)

func TestWhereBuilder(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name         string
		window       models.TimeWindow
		expectedSQL  string
		expectedArgs []any
		expectedNext string
	}{
		{
			name:         "open window",
			expectedSQL:  "WHERE client_id = $1",
			expectedArgs: []any{"client-a"},
			expectedNext: "$2",
		},
		{
			name:         "start only",
			window:       models.TimeWindow{Start: &start},
			expectedSQL:  "WHERE client_id = $1 AND timestamp >= $2",
			expectedArgs: []any{"client-a", start},
			expectedNext: "$3",
		},
		{
			name:         "end only",
			window:       models.TimeWindow{End: &end},
			expectedSQL:  "WHERE client_id = $1 AND timestamp <= $2",
			expectedArgs: []any{"client-a", end},
			expectedNext: "$3",
		},
		{
			name:         "closed window",
			window:       models.TimeWindow{Start: &start, End: &end},
			expectedSQL:  "WHERE client_id = $1 AND timestamp >= $2 AND timestamp <= $3",
			expectedArgs: []any{"client-a", start, end},
			expectedNext: "$4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := &whereBuilder{}
			where.add("client_id = ?", "client-a")
			where.window("timestamp", tt.window)

			assert.Equal(t, tt.expectedSQL, where.String())
			assert.Equal(t, tt.expectedArgs, where.args)
			assert.Equal(t, tt.expectedNext, where.nextArg(1))
		})
	}
}

func TestRepository_RejectsInvalidInputBeforeQuerying(t *testing.T) {
	// A nil pool would panic if any of these reached the database.
	repo := NewRepository(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	valid := models.LocationInput{Latitude: 1, Longitude: 1, Accuracy: 1, Timestamp: time.Now()}
	invalid := valid
	invalid.Latitude = 90.0001

	_, err := repo.InsertLocation(ctx, "client-a", invalid)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = repo.InsertLocation(ctx, "", valid)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = repo.InsertLocations(ctx, "client-a", []models.LocationInput{valid, invalid})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = repo.ImportLocations(ctx, "client-a", []models.LocationInput{invalid})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = repo.QueryLocations(ctx, models.LocationQuery{ClientID: "client-a", Page: models.Page{Limit: 0}})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = repo.QueryLocations(ctx, models.LocationQuery{ClientID: "client-a", Page: models.Page{Limit: 10, Offset: -1}})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = repo.QueryClientLogs(ctx, models.LogQuery{ClientID: "client-a", Page: models.Page{Limit: 1001}})
	assert.ErrorIs(t, err, models.ErrValidation)
}

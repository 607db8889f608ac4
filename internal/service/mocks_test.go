package service

import (
	"context"

	"location-tracker/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the repository interfaces
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertLocation(ctx context.Context, clientID string, in models.LocationInput) (*models.Location, error) {
	args := m.Called(ctx, clientID, in)
	loc, _ := args.Get(0).(*models.Location)
	return loc, args.Error(1)
}

func (m *MockRepository) InsertLocations(ctx context.Context, clientID string, in []models.LocationInput) ([]models.Location, error) {
	args := m.Called(ctx, clientID, in)
	locs, _ := args.Get(0).([]models.Location)
	return locs, args.Error(1)
}

func (m *MockRepository) QueryLocations(ctx context.Context, q models.LocationQuery) (int64, []models.Location, error) {
	args := m.Called(ctx, q)
	locs, _ := args.Get(1).([]models.Location)
	return args.Get(0).(int64), locs, args.Error(2)
}

func (m *MockRepository) RouteLocations(ctx context.Context, clientID string, window models.TimeWindow) ([]models.Location, error) {
	args := m.Called(ctx, clientID, window)
	locs, _ := args.Get(0).([]models.Location)
	return locs, args.Error(1)
}

func (m *MockRepository) LatestLocation(ctx context.Context, clientID string) (*models.Location, error) {
	args := m.Called(ctx, clientID)
	loc, _ := args.Get(0).(*models.Location)
	return loc, args.Error(1)
}

func (m *MockRepository) QueryClientLogs(ctx context.Context, q models.LogQuery) (int64, []models.ClientLog, error) {
	args := m.Called(ctx, q)
	logs, _ := args.Get(1).([]models.ClientLog)
	return args.Get(0).(int64), logs, args.Error(2)
}

// MockAuditRecorder is a mock implementation of AuditRecorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, clientID, action string, details map[string]any) {
	m.Called(ctx, clientID, action, details)
}

package handler

import (
	"context"

	"location-tracker/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockIngestService is a mock implementation of the IngestService interface
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) SubmitLocation(ctx context.Context, clientID string, in models.LocationInput) (*models.Location, error) {
	args := m.Called(ctx, clientID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockIngestService) SubmitBatch(ctx context.Context, clientID string, in []models.LocationInput) ([]models.Location, error) {
	args := m.Called(ctx, clientID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Location), args.Error(1)
}

// MockQueryService is a mock implementation of LocationQueryService and RouteService
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) ListLocations(ctx context.Context, actorID string, q models.LocationQuery) (*models.LocationsPage, error) {
	args := m.Called(ctx, actorID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationsPage), args.Error(1)
}

func (m *MockQueryService) LatestLocation(ctx context.Context, actorID, clientID string) (*models.Location, error) {
	args := m.Called(ctx, actorID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockQueryService) Route(ctx context.Context, actorID, clientID string, window models.TimeWindow, simplify bool) (*models.Route, error) {
	args := m.Called(ctx, actorID, clientID, window, simplify)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

// MockLogService is a mock implementation of the LogService interface
type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) ListLogs(ctx context.Context, actorID string, q models.LogQuery) (*models.LogsPage, error) {
	args := m.Called(ctx, actorID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LogsPage), args.Error(1)
}

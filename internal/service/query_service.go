package service

import (
	"context"
	"fmt"

	"location-tracker/internal/metrics"
	"location-tracker/internal/models"
	"location-tracker/internal/route"
)

// QueryService serves a client's own location history and route.
type QueryService struct {
	repo      QueryRepository
	routeOpts route.Options
}

// QueryRepository interface for dependency injection
type QueryRepository interface {
	QueryLocations(ctx context.Context, q models.LocationQuery) (int64, []models.Location, error)
	RouteLocations(ctx context.Context, clientID string, window models.TimeWindow) ([]models.Location, error)
	LatestLocation(ctx context.Context, clientID string) (*models.Location, error)
}

// NewQueryService creates a new query service
func NewQueryService(repo QueryRepository, routeOpts route.Options) *QueryService {
	return &QueryService{repo: repo, routeOpts: routeOpts}
}

// authorize allows a client to read only its own data.
func authorize(actorID, clientID string) error {
	if actorID == "" || actorID != clientID {
		return fmt.Errorf("service: %w: client %q may not read data of client %q", models.ErrPermission, actorID, clientID)
	}
	return nil
}

// ListLocations returns a page of the client's points, newest first.
func (s *QueryService) ListLocations(ctx context.Context, actorID string, q models.LocationQuery) (*models.LocationsPage, error) {
	if err := authorize(actorID, q.ClientID); err != nil {
		return nil, err
	}

	total, locations, err := s.repo.QueryLocations(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list locations: %w", err)
	}
	if locations == nil {
		locations = []models.Location{}
	}

	return &models.LocationsPage{TotalCount: total, Locations: locations}, nil
}

// LatestLocation returns the client's most recent point by event time.
func (s *QueryService) LatestLocation(ctx context.Context, actorID, clientID string) (*models.Location, error) {
	if err := authorize(actorID, clientID); err != nil {
		return nil, err
	}

	loc, err := s.repo.LatestLocation(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find latest location: %w", err)
	}
	if loc == nil {
		return nil, fmt.Errorf("service: %w: no locations found for this client", models.ErrNotFound)
	}
	return loc, nil
}

// Route returns the client's points in the window, oldest first, decimated when simplify is set.
func (s *QueryService) Route(ctx context.Context, actorID, clientID string, window models.TimeWindow, simplify bool) (*models.Route, error) {
	if err := authorize(actorID, clientID); err != nil {
		return nil, err
	}

	points, err := s.repo.RouteLocations(ctx, clientID, window)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load route: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("service: %w: no locations found for this client in the specified time range", models.ErrNotFound)
	}

	r := route.Build(clientID, points, simplify, s.routeOpts)
	metrics.RecordRoute(r.OriginalPointCount, len(r.Points))
	return &r, nil
}

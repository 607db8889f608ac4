package service

import (
	"context"
	"fmt"
	"time"

	"location-tracker/internal/audit"
	"location-tracker/internal/metrics"
	"location-tracker/internal/models"
	"location-tracker/internal/validation"
)

// IngestService accepts location submissions on behalf of an authenticated client.
type IngestService struct {
	repo         IngestRepository
	audit        AuditRecorder
	maxBatchSize int
	now          func() time.Time
}

// IngestRepository interface for dependency injection
type IngestRepository interface {
	InsertLocation(ctx context.Context, clientID string, in models.LocationInput) (*models.Location, error)
	InsertLocations(ctx context.Context, clientID string, in []models.LocationInput) ([]models.Location, error)
}

// AuditRecorder receives best-effort audit records.
type AuditRecorder interface {
	Record(ctx context.Context, clientID, action string, details map[string]any)
}

// NewIngestService creates a new ingest service. Batches larger than maxBatchSize are rejected.
func NewIngestService(repo IngestRepository, recorder AuditRecorder, maxBatchSize int) *IngestService {
	return &IngestService{
		repo:         repo,
		audit:        recorder,
		maxBatchSize: maxBatchSize,
		now:          time.Now,
	}
}

// SubmitLocation stores one point for the authenticated client.
func (s *IngestService) SubmitLocation(ctx context.Context, clientID string, in models.LocationInput) (*models.Location, error) {
	loc, err := s.repo.InsertLocation(ctx, clientID, in)
	if err != nil {
		return nil, fmt.Errorf("service: failed to store location: %w", err)
	}
	metrics.RecordIngest("single", 1)

	s.audit.Record(ctx, clientID, audit.ActionLocationSubmit, map[string]any{
		"location_id": loc.ID,
		"timestamp":   loc.Timestamp.Format(time.RFC3339Nano),
	})
	return loc, nil
}

// SubmitBatch stores a list of points for the authenticated client atomically.
func (s *IngestService) SubmitBatch(ctx context.Context, clientID string, in []models.LocationInput) ([]models.Location, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("service: %w", validation.NewError("locations", "min", "locations must contain at least 1 item"))
	}
	if s.maxBatchSize > 0 && len(in) > s.maxBatchSize {
		return nil, fmt.Errorf("service: %w", validation.NewError("locations", "max",
			fmt.Sprintf("locations must contain at most %d items", s.maxBatchSize)))
	}

	locations, err := s.repo.InsertLocations(ctx, clientID, in)
	if err != nil {
		return nil, fmt.Errorf("service: failed to store location batch: %w", err)
	}
	metrics.RecordIngest("batch", len(locations))

	s.audit.Record(ctx, clientID, audit.ActionLocationBatchSubmit, map[string]any{
		"count":     len(locations),
		"timestamp": s.now().UTC().Format(time.RFC3339Nano),
	})
	return locations, nil
}

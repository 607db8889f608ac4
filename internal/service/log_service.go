package service

import (
	"context"
	"fmt"

	"location-tracker/internal/models"
)

// LogService serves a client's own audit trail.
type LogService struct {
	repo LogRepository
}

// LogRepository interface for dependency injection
type LogRepository interface {
	QueryClientLogs(ctx context.Context, q models.LogQuery) (int64, []models.ClientLog, error)
}

// NewLogService creates a new log service
func NewLogService(repo LogRepository) *LogService {
	return &LogService{repo: repo}
}

// ListLogs returns a page of the client's audit records, newest first.
func (s *LogService) ListLogs(ctx context.Context, actorID string, q models.LogQuery) (*models.LogsPage, error) {
	if err := authorize(actorID, q.ClientID); err != nil {
		return nil, err
	}

	total, logs, err := s.repo.QueryClientLogs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list logs: %w", err)
	}
	if logs == nil {
		logs = []models.ClientLog{}
	}

	return &models.LogsPage{TotalCount: total, Logs: logs}, nil
}

// Package audit records client actions. Recording is best-effort: a failed write is logged and
// counted, never returned to the caller.
package audit

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"location-tracker/internal/metrics"
)

// Actions recorded by the service.
const (
	ActionLocationSubmit      = "location_submit"
	ActionLocationBatchSubmit = "location_batch_submit"
	ActionLocationImport      = "location_import"
)

// Store persists audit records.
type Store interface {
	InsertClientLog(ctx context.Context, clientID, action string, details map[string]any) error
}

// Logger writes audit records to a Store.
type Logger struct {
	store  Store
	logger zerolog.Logger
}

// NewLogger creates an audit logger backed by store.
func NewLogger(store Store) *Logger {
	return &Logger{
		store:  store,
		logger: log.With().Str("component", "audit").Logger(),
	}
}

// Record writes one audit record for clientID.
func (l *Logger) Record(ctx context.Context, clientID, action string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}

	if err := l.store.InsertClientLog(ctx, clientID, action, details); err != nil {
		metrics.RecordAuditFailure(action)
		l.logger.Warn().
			Err(err).
			Str("client_id", clientID).
			Str("action", action).
			Msg("failed to write audit record")
	}
}

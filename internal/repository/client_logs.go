package repository

import (
	"context"
	"fmt"

	"location-tracker/internal/models"
	"location-tracker/internal/validation"

	"github.com/goccy/go-json"
)

// InsertClientLog appends an audit record for clientID. Details are stored as a JSONB document.
func (r *Repository) InsertClientLog(ctx context.Context, clientID, action string, details map[string]any) error {
	if err := checkClientID(clientID); err != nil {
		return err
	}
	if details == nil {
		details = map[string]any{}
	}

	doc, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("repository: failed to encode log details: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO client_logs (client_id, action, details) VALUES ($1, $2, $3::jsonb)`,
		clientID, action, string(doc),
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert client log: %w", err)
	}
	return nil
}

// QueryClientLogs returns one page of a client's audit records, newest first, together with the
// number of records matching the filter.
func (r *Repository) QueryClientLogs(ctx context.Context, q models.LogQuery) (int64, []models.ClientLog, error) {
	if err := checkClientID(q.ClientID); err != nil {
		return 0, nil, err
	}
	if err := validation.Page(q.Page); err != nil {
		return 0, nil, fmt.Errorf("repository: invalid page: %w", err)
	}

	where := &whereBuilder{}
	where.add("client_id = ?", q.ClientID)
	where.window("timestamp", q.Window)
	if q.Action != "" {
		where.add("action = ?", q.Action)
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM client_logs "+where.String(), where.args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("repository: failed to count client logs: %w", err)
	}

	sql := fmt.Sprintf(`
		SELECT id, client_id, action, details, timestamp
		FROM client_logs
		%s
		ORDER BY timestamp DESC, id DESC
		LIMIT %s OFFSET %s
	`, where.String(), where.nextArg(1), where.nextArg(2))

	args := append(where.args, q.Page.Limit, q.Page.Offset)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("repository: failed to execute client log query: %w", err)
	}
	defer rows.Close()

	logs := []models.ClientLog{}
	for rows.Next() {
		var (
			entry models.ClientLog
			doc   []byte
		)
		if err := rows.Scan(&entry.ID, &entry.ClientID, &entry.Action, &doc, &entry.Timestamp); err != nil {
			return 0, nil, fmt.Errorf("repository: failed to scan client log: %w", err)
		}
		if len(doc) > 0 {
			if err := json.Unmarshal(doc, &entry.Details); err != nil {
				return 0, nil, fmt.Errorf("repository: failed to decode log details: %w", err)
			}
		}
		entry.Timestamp = entry.Timestamp.UTC()
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return total, logs, nil
}

package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"location-tracker/internal/models"
	"location-tracker/internal/validation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Repository is the PostgreSQL-backed store for client locations and audit logs.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates tables and indexes. Safe to run repeatedly.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("repository: failed to apply schema: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

const locationColumns = `id, client_id, latitude, longitude, accuracy, altitude, speed, timestamp, created_at`

const insertLocationSQL = `
	INSERT INTO locations (client_id, latitude, longitude, accuracy, altitude, speed, timestamp)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + locationColumns

func scanLocation(row pgx.Row) (models.Location, error) {
	var loc models.Location
	err := row.Scan(
		&loc.ID,
		&loc.ClientID,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Accuracy,
		&loc.Altitude,
		&loc.Speed,
		&loc.Timestamp,
		&loc.CreatedAt,
	)
	loc.Timestamp = loc.Timestamp.UTC()
	loc.CreatedAt = loc.CreatedAt.UTC()
	return loc, err
}

func insertArgs(clientID string, in models.LocationInput) []any {
	return []any{clientID, in.Latitude, in.Longitude, in.Accuracy, in.Altitude, in.Speed, in.Timestamp}
}

func checkClientID(clientID string) error {
	if clientID == "" {
		return fmt.Errorf("repository: %w", validation.NewError("client_id", "required", "client_id is required"))
	}
	return nil
}

// InsertLocation validates and stores one point for clientID. The database assigns the id and the
// ingestion timestamp.
func (r *Repository) InsertLocation(ctx context.Context, clientID string, in models.LocationInput) (*models.Location, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}
	if err := validation.Location(in); err != nil {
		return nil, fmt.Errorf("repository: invalid location: %w", err)
	}

	loc, err := scanLocation(r.db.QueryRow(ctx, insertLocationSQL, insertArgs(clientID, in)...))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert location: %w", err)
	}
	return &loc, nil
}

// InsertLocations stores a batch of points in one transaction. Either every point is stored or none
// is. The result is in input order.
func (r *Repository) InsertLocations(ctx context.Context, clientID string, in []models.LocationInput) ([]models.Location, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}
	if err := validation.Locations(in); err != nil {
		return nil, fmt.Errorf("repository: invalid location batch: %w", err)
	}

	locations := make([]models.Location, len(in))
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, point := range in {
			batch.Queue(insertLocationSQL, insertArgs(clientID, point)...)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range in {
			loc, err := scanLocation(results.QueryRow())
			if err != nil {
				results.Close()
				return fmt.Errorf("point %d: %w", i, err)
			}
			locations[i] = loc
		}
		return results.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert location batch: %w", err)
	}

	return locations, nil
}

// ImportLocations bulk-loads points with COPY inside a transaction. It returns the number of rows
// written.
func (r *Repository) ImportLocations(ctx context.Context, clientID string, in []models.LocationInput) (int64, error) {
	if err := checkClientID(clientID); err != nil {
		return 0, err
	}
	if err := validation.Locations(in); err != nil {
		return 0, fmt.Errorf("repository: invalid import: %w", err)
	}

	var copied int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"locations"},
			[]string{"client_id", "latitude", "longitude", "accuracy", "altitude", "speed", "timestamp"},
			pgx.CopyFromSlice(len(in), func(i int) ([]any, error) {
				return insertArgs(clientID, in[i]), nil
			}),
		)
		copied = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy locations: %w", err)
	}
	return copied, nil
}

// whereBuilder accumulates AND-ed conditions and their positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

func (w *whereBuilder) window(column string, tw models.TimeWindow) {
	if tw.Start != nil {
		w.add(column+" >= ?", *tw.Start)
	}
	if tw.End != nil {
		w.add(column+" <= ?", *tw.End)
	}
}

func (w *whereBuilder) String() string {
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// nextArg returns the placeholder for the next argument to be appended.
func (w *whereBuilder) nextArg(offset int) string {
	return "$" + strconv.Itoa(len(w.args)+offset)
}

func collectLocations(rows pgx.Rows) ([]models.Location, error) {
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return locations, nil
}

// QueryLocations returns one page of a client's points in the window, newest first, together with
// the number of points in the whole window.
func (r *Repository) QueryLocations(ctx context.Context, q models.LocationQuery) (int64, []models.Location, error) {
	if err := checkClientID(q.ClientID); err != nil {
		return 0, nil, err
	}
	if err := validation.Page(q.Page); err != nil {
		return 0, nil, fmt.Errorf("repository: invalid page: %w", err)
	}

	where := &whereBuilder{}
	where.add("client_id = ?", q.ClientID)
	where.window("timestamp", q.Window)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM locations "+where.String(), where.args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("repository: failed to count locations: %w", err)
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM locations
		%s
		ORDER BY timestamp DESC, id DESC
		LIMIT %s OFFSET %s
	`, locationColumns, where.String(), where.nextArg(1), where.nextArg(2))

	args := append(where.args, q.Page.Limit, q.Page.Offset)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("repository: failed to execute location query: %w", err)
	}

	locations, err := collectLocations(rows)
	if err != nil {
		return 0, nil, err
	}
	return total, locations, nil
}

// RouteLocations returns every point of a client in the window, oldest first.
func (r *Repository) RouteLocations(ctx context.Context, clientID string, window models.TimeWindow) ([]models.Location, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}

	where := &whereBuilder{}
	where.add("client_id = ?", clientID)
	where.window("timestamp", window)

	sql := fmt.Sprintf(`
		SELECT %s
		FROM locations
		%s
		ORDER BY timestamp ASC, id ASC
	`, locationColumns, where.String())

	rows, err := r.db.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute route query: %w", err)
	}
	return collectLocations(rows)
}

// LatestLocation returns the client's most recent point by event time, or nil when it has none.
func (r *Repository) LatestLocation(ctx context.Context, clientID string) (*models.Location, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}

	sql := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE client_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	loc, err := scanLocation(r.db.QueryRow(ctx, sql, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to query latest location: %w", err)
	}
	return &loc, nil
}

// DeleteClientData removes every location and audit record of a client in one transaction.
func (r *Repository) DeleteClientData(ctx context.Context, clientID string) (models.PurgeResult, error) {
	if err := checkClientID(clientID); err != nil {
		return models.PurgeResult{}, err
	}

	var result models.PurgeResult
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM locations WHERE client_id = $1`, clientID)
		if err != nil {
			return fmt.Errorf("locations: %w", err)
		}
		result.Locations = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM client_logs WHERE client_id = $1`, clientID)
		if err != nil {
			return fmt.Errorf("client_logs: %w", err)
		}
		result.Logs = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return models.PurgeResult{}, fmt.Errorf("repository: failed to delete client data: %w", err)
	}
	return result, nil
}

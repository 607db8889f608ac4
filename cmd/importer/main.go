package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"location-tracker/internal/audit"
	"location-tracker/internal/config"
	"location-tracker/internal/logging"
	"location-tracker/internal/models"
	"location-tracker/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	clientID := flag.String("client", "", "Client the imported points belong to")
	purge := flag.Bool("purge", false, "Delete every location and audit record of -client instead of importing")
	configPath := flag.String("config", "configs", "Directory containing app.env")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	if *clientID == "" {
		log.Fatal().Msg("--client flag is required")
	}
	if *file == "" && !*purge {
		log.Fatal().Msg("--file flag is required")
	}

	// Load config
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	// Connect to DB
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot apply schema")
	}

	if *purge {
		result, err := repo.DeleteClientData(ctx, *clientID)
		if err != nil {
			log.Fatal().Err(err).Msg("purge failed")
		}
		log.Info().Str("client_id", *clientID).
			Int64("locations", result.Locations).
			Int64("logs", result.Logs).
			Msg("client data purged")
		return
	}

	log.Info().Str("file", *file).Msg("starting import")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open file")
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("records", len(records)).Msg("parsed CSV")

	n, err := repo.ImportLocations(ctx, *clientID, records)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	audit.NewLogger(repo).Record(ctx, *clientID, audit.ActionLocationImport, map[string]any{
		"count":     n,
		"source":    filepath.Base(*file),
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})

	log.Info().Int64("imported", n).Str("client_id", *clientID).Msg("import finished")
}

// columns maps header names to their position. altitude and speed are optional.
type columns map[string]int

var requiredColumns = []string{"timestamp", "latitude", "longitude", "accuracy"}

func readHeader(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func (c columns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c columns) float(record []string, name string) (float64, error) {
	raw := c.get(record, name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func (c columns) optionalFloat(record []string, name string) (*float64, error) {
	if c.get(record, name) == "" {
		return nil, nil
	}
	v, err := c.float(record, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseCSV reads a header row followed by one point per row.
func parseCSV(r io.Reader) ([]models.LocationInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow trailing optional columns to be omitted

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := readHeader(header)
	if err != nil {
		return nil, err
	}

	var records []models.LocationInput
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		in, err := parseRecord(cols, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, in)
	}

	return records, nil
}

func parseRecord(cols columns, record []string) (models.LocationInput, error) {
	var in models.LocationInput
	var err error

	raw := cols.get(record, "timestamp")
	if in.Timestamp, err = time.Parse(time.RFC3339Nano, raw); err != nil {
		return in, fmt.Errorf("invalid timestamp: %q", raw)
	}
	in.Timestamp = in.Timestamp.UTC()

	if in.Latitude, err = cols.float(record, "latitude"); err != nil {
		return in, err
	}
	if in.Longitude, err = cols.float(record, "longitude"); err != nil {
		return in, err
	}
	if in.Accuracy, err = cols.float(record, "accuracy"); err != nil {
		return in, err
	}
	if in.Altitude, err = cols.optionalFloat(record, "altitude"); err != nil {
		return in, err
	}
	if in.Speed, err = cols.optionalFloat(record, "speed"); err != nil {
		return in, err
	}
	return in, nil
}

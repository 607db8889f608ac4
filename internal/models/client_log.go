package models

import "time"

// ClientLog is an audit record of something a client did.
type ClientLog struct {
	ID        int64          `json:"id"`
	ClientID  string         `json:"client_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}

// LogQuery selects a page of one client's audit records, optionally narrowed to one action.
type LogQuery struct {
	ClientID string
	Action   string
	Window   TimeWindow
	Page     Page
}

// LogsPage is a listing result. TotalCount ignores pagination.
type LogsPage struct {
	TotalCount int64       `json:"total_count"`
	Logs       []ClientLog `json:"logs"`
}

// PurgeResult reports how many rows a client purge removed.
type PurgeResult struct {
	Locations int64 `json:"locations"`
	Logs      int64 `json:"logs"`
}

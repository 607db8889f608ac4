package models

import "time"

// GeoJSON types for route rendering. Coordinates are [longitude, latitude].

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   LineString     `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// RoutePoint is one vertex of the plain JSON route format.
type RoutePoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Route is a time-ordered, possibly decimated point series for one client.
// StartTime and EndTime describe the full window before decimation.
type Route struct {
	ClientID           string     `json:"client_id"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	OriginalPointCount int        `json:"original_point_count"`
	Simplified         bool       `json:"simplified"`
	Points             []Location `json:"-"`
}

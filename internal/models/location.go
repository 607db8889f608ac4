package models

import "time"

// Location is a single GPS fix reported by a client. Timestamp is the moment the fix was observed on
// the device; CreatedAt is when the server persisted it.
type Location struct {
	ID        int64     `json:"id"`
	ClientID  string    `json:"client_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Altitude  *float64  `json:"altitude"`
	Speed     *float64  `json:"speed"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationInput is the caller-supplied part of a Location.
type LocationInput struct {
	Latitude  float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64   `json:"longitude" validate:"gte=-180,lte=180"`
	Accuracy  float64   `json:"accuracy" validate:"gt=0"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Speed     *float64  `json:"speed,omitempty"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

// LocationBatchInput wraps a list of points submitted in one request.
type LocationBatchInput struct {
	Locations []LocationInput `json:"locations" validate:"required,min=1,dive"`
}

// TimeWindow bounds a query by event timestamp. Both ends are inclusive and optional.
type TimeWindow struct {
	Start *time.Time
	End   *time.Time
}

// Page selects a slice of a descending listing.
type Page struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0"`
}

// DefaultPage mirrors the listing defaults of the public API.
func DefaultPage() Page {
	return Page{Limit: 100, Offset: 0}
}

// LocationQuery selects a page of one client's locations.
type LocationQuery struct {
	ClientID string
	Window   TimeWindow
	Page     Page
}

// LocationsPage is a listing result. TotalCount ignores pagination.
type LocationsPage struct {
	TotalCount int64      `json:"total_count"`
	Locations  []Location `json:"locations"`
}

// Package route turns a time-ordered point series into renderable route geometry.
package route

import (
	"time"

	"location-tracker/internal/models"
)

// DefaultMaxPoints is the size above which a route is decimated.
const DefaultMaxPoints = 100

// Options controls decimation.
type Options struct {
	// MaxPoints is the threshold above which decimation applies. Zero means DefaultMaxPoints.
	MaxPoints int
	// KeepLast appends the final point when the stride skips it. Off by default so output matches
	// existing clients, which only see the last point when (n-1) is a multiple of the stride.
	KeepLast bool
}

// Simplify keeps every step-th point of an ascending series, starting at index 0, where
// step = len(points) / MaxPoints. Series at or below MaxPoints are returned unchanged.
//
// This is plain stride sampling, not a shape-preserving simplification: the output can hold up to
// 2*MaxPoints-1 points and corners between samples are lost.
func Simplify(points []models.Location, opts Options) []models.Location {
	maxPoints := opts.MaxPoints
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	n := len(points)
	if n <= maxPoints {
		return points
	}

	step := n / maxPoints
	out := make([]models.Location, 0, (n+step-1)/step+1)
	for i := 0; i < n; i += step {
		out = append(out, points[i])
	}

	if opts.KeepLast && (n-1)%step != 0 {
		out = append(out, points[n-1])
	}
	return out
}

// Build decimates an ascending series into a Route. The start and end times describe the window
// that was read, not the decimated output.
func Build(clientID string, points []models.Location, simplify bool, opts Options) models.Route {
	r := models.Route{
		ClientID:           clientID,
		OriginalPointCount: len(points),
		Points:             points,
	}
	if len(points) == 0 {
		return r
	}

	r.StartTime = points[0].Timestamp
	r.EndTime = points[len(points)-1].Timestamp
	if simplify {
		r.Points = Simplify(points, opts)
		r.Simplified = len(r.Points) != len(points)
	}
	return r
}

// FeatureCollection renders the route as a single LineString feature.
func FeatureCollection(r models.Route) models.FeatureCollection {
	coords := make([][2]float64, len(r.Points))
	for i, p := range r.Points {
		coords[i] = [2]float64{p.Longitude, p.Latitude}
	}

	return models.FeatureCollection{
		Type: "FeatureCollection",
		Features: []models.Feature{
			{
				Type: "Feature",
				Geometry: models.LineString{
					Type:        "LineString",
					Coordinates: coords,
				},
				Properties: map[string]any{
					"client_id":            r.ClientID,
					"start_time":           r.StartTime.Format(time.RFC3339Nano),
					"end_time":             r.EndTime.Format(time.RFC3339Nano),
					"point_count":          len(r.Points),
					"original_point_count": r.OriginalPointCount,
					"simplified":           r.Simplified,
				},
			},
		},
	}
}

// JSONRoute is the plain (non-GeoJSON) route representation.
type JSONRoute struct {
	ClientID  string              `json:"client_id"`
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time"`
	Points    []models.RoutePoint `json:"points"`
}

// Points renders the route as a list of timestamped vertices.
func Points(r models.Route) JSONRoute {
	out := JSONRoute{
		ClientID:  r.ClientID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Points:    make([]models.RoutePoint, len(r.Points)),
	}
	for i, p := range r.Points {
		out.Points[i] = models.RoutePoint{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Timestamp: p.Timestamp,
		}
	}
	return out
}

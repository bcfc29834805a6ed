// Package facilities provides the facility-search collaborator: a Store
// interface with PostgreSQL and in-memory implementations.
package facilities

import (
	"context"

	"github.com/linnemanlabs/gabay/internal/assistant"
)

const (
	// DefaultRadiusMeters bounds geo searches when the caller sets none.
	DefaultRadiusMeters = 5000

	// DefaultLimit caps result lists when the caller sets none.
	DefaultLimit = 3
)

// Query describes one facility search. Either GPS coordinates (HasCoords)
// or a Barangay locality label; with neither, the search is type-filtered
// only.
type Query struct {
	NearLat      float64
	NearLng      float64
	HasCoords    bool
	Barangay     string
	Type         string
	RadiusMeters int
	Limit        int
}

// Normalized returns a copy with defaults applied.
func (q Query) Normalized() Query {
	if q.RadiusMeters <= 0 {
		q.RadiusMeters = DefaultRadiusMeters
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

// Store is the facility-search interface. Results are ordered by distance
// when coordinates are given, by name otherwise.
type Store interface {
	Search(ctx context.Context, q Query) ([]assistant.FacilityCard, error)
}

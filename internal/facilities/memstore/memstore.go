// Package memstore provides an in-memory implementation of facilities.Store.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/facilities"
	"github.com/linnemanlabs/gabay/internal/geo"
)

// Facility is one seeded record.
type Facility struct {
	ID       string
	Name     string
	Type     string
	Address  string
	Barangay string
	City     string
	Phone    string
	Hours    string
	Services []string
	Lat      float64
	Lng      float64
}

// Store serves facility searches from a fixed in-memory set. Suitable for
// dev/testing.
type Store struct {
	mu   sync.RWMutex
	recs []Facility
}

// New initializes a Store with the given records. With none, a seed set of
// Naga City facilities is loaded.
func New(recs ...Facility) *Store {
	if len(recs) == 0 {
		recs = nagaSeed()
	}
	return &Store{recs: recs}
}

// Search implements facilities.Store.
func (s *Store) Search(_ context.Context, raw facilities.Query) ([]assistant.FacilityCard, error) {
	q := raw.Normalized()

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		rec  Facility
		dist float64
	}
	var hits []scored
	for _, rec := range s.recs {
		if q.Type != "" && rec.Type != q.Type {
			continue
		}
		if q.Barangay != "" && !strings.Contains(
			strings.ToLower(rec.Barangay), strings.ToLower(q.Barangay)) {
			continue
		}

		h := scored{rec: rec}
		if q.HasCoords {
			h.dist = geo.HaversineMeters(
				geo.Point{Lat: q.NearLat, Lng: q.NearLng},
				geo.Point{Lat: rec.Lat, Lng: rec.Lng})
			if h.dist > float64(q.RadiusMeters) {
				continue
			}
		}
		hits = append(hits, h)
	}

	if q.HasCoords {
		sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	} else {
		sort.Slice(hits, func(i, j int) bool { return hits[i].rec.Name < hits[j].rec.Name })
	}
	if len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}

	cards := make([]assistant.FacilityCard, 0, len(hits))
	for _, h := range hits {
		cards = append(cards, card(h.rec, h.dist))
	}
	return cards, nil
}

func card(rec Facility, dist float64) assistant.FacilityCard {
	addr := rec.Address
	for _, part := range []string{rec.Barangay, rec.City} {
		if part != "" {
			addr += ", " + part
		}
	}
	return assistant.FacilityCard{
		CardType:       assistant.CardFacility,
		FacilityID:     rec.ID,
		Name:           rec.Name,
		FacilityType:   rec.Type,
		Address:        addr,
		Phone:          rec.Phone,
		Hours:          rec.Hours,
		Services:       append([]string(nil), rec.Services...),
		Lat:            rec.Lat,
		Lng:            rec.Lng,
		DistanceMeters: dist,
	}
}

func nagaSeed() []Facility {
	return []Facility{
		{
			ID:       "bmc",
			Name:     "Bicol Medical Center",
			Type:     "hospital",
			Address:  "Concepcion Pequeña",
			Barangay: "Concepcion Pequeña",
			City:     "Naga City",
			Phone:    "(054) 472-5555",
			Hours:    "24/7",
			Services: []string{"emergency", "trauma", "surgery", "laboratory"},
			Lat:      13.6308,
			Lng:      123.1859,
		},
		{
			ID:       "nch",
			Name:     "Naga City Hospital",
			Type:     "hospital",
			Address:  "J. Miranda Avenue",
			Barangay: "Concepcion Grande",
			City:     "Naga City",
			Phone:    "(054) 473-2222",
			Hours:    "24/7",
			Services: []string{"emergency", "inpatient", "laboratory", "x-ray"},
			Lat:      13.6156,
			Lng:      123.2021,
		},
		{
			ID:       "mmh",
			Name:     "Mother Seton Hospital",
			Type:     "hospital",
			Address:  "Roxas Avenue",
			Barangay: "Triangulo",
			City:     "Naga City",
			Phone:    "(054) 472-1777",
			Hours:    "24/7",
			Services: []string{"emergency", "maternity", "pediatrics"},
			Lat:      13.6172,
			Lng:      123.1903,
		},
		{
			ID:       "hc-concepcion",
			Name:     "Concepcion Pequeña Health Center",
			Type:     "health_center",
			Address:  "Concepcion Pequeña",
			Barangay: "Concepcion Pequeña",
			City:     "Naga City",
			Hours:    "Mon-Fri 8:00-17:00",
			Services: []string{"consultation", "immunization", "maternal care"},
			Lat:      13.6294,
			Lng:      123.1871,
		},
		{
			ID:       "hc-abella",
			Name:     "Abella Health Center",
			Type:     "health_center",
			Address:  "Abella Street",
			Barangay: "Abella",
			City:     "Naga City",
			Hours:    "Mon-Fri 8:00-17:00",
			Services: []string{"consultation", "immunization"},
			Lat:      13.6225,
			Lng:      123.1812,
		},
		{
			ID:       "hc-triangulo",
			Name:     "Triangulo Health Center",
			Type:     "health_center",
			Address:  "Triangulo",
			Barangay: "Triangulo",
			City:     "Naga City",
			Hours:    "Mon-Fri 8:00-17:00",
			Services: []string{"consultation", "family planning"},
			Lat:      13.6180,
			Lng:      123.1921,
		},
		{
			ID:       "rx-mercury-centro",
			Name:     "Mercury Drug Naga Centro",
			Type:     "pharmacy",
			Address:  "General Luna Street",
			Barangay: "Dinaga",
			City:     "Naga City",
			Phone:    "(054) 473-8888",
			Hours:    "Daily 7:00-22:00",
			Services: []string{"prescription", "over-the-counter"},
			Lat:      13.6219,
			Lng:      123.1947,
		},
		{
			ID:       "rx-rose",
			Name:     "Rose Pharmacy Magsaysay",
			Type:     "pharmacy",
			Address:  "Magsaysay Avenue",
			Barangay: "Peñafrancia",
			City:     "Naga City",
			Hours:    "Daily 8:00-21:00",
			Services: []string{"prescription", "over-the-counter"},
			Lat:      13.6262,
			Lng:      123.1989,
		},
	}
}

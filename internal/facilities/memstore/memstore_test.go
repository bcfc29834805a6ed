package memstore

import (
	"context"
	"testing"

	"github.com/linnemanlabs/gabay/internal/facilities"
)

func testFacilities() []Facility {
	return []Facility{
		{ID: "a", Name: "Alpha Clinic", Type: "health_center", Barangay: "Abella", Lat: 13.6225, Lng: 123.1812},
		{ID: "b", Name: "Beta Hospital", Type: "hospital", Barangay: "Triangulo", Lat: 13.6172, Lng: 123.1903},
		{ID: "c", Name: "Centro Pharmacy", Type: "pharmacy", Barangay: "Dinaga", Lat: 13.6219, Lng: 123.1947},
		{ID: "d", Name: "Delta Hospital", Type: "hospital", Barangay: "Concepcion Pequeña", Lat: 13.6308, Lng: 123.1859},
	}
}

func TestSearch_GeoOrdering(t *testing.T) {
	t.Parallel()

	s := New(testFacilities()...)

	// Query from the city center: the pharmacy is closest.
	got, err := s.Search(context.Background(), facilities.Query{
		NearLat: 13.6218, NearLng: 123.1948, HasCoords: true,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want default limit 3", len(got))
	}
	if got[0].FacilityID != "c" {
		t.Errorf("nearest = %q, want c", got[0].FacilityID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].DistanceMeters < got[i-1].DistanceMeters {
			t.Errorf("results not sorted by distance: %v then %v", got[i-1].DistanceMeters, got[i].DistanceMeters)
		}
	}
}

func TestSearch_RadiusFilter(t *testing.T) {
	t.Parallel()

	s := New(testFacilities()...)

	got, err := s.Search(context.Background(), facilities.Query{
		NearLat: 13.6218, NearLng: 123.1948, HasCoords: true,
		RadiusMeters: 100,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].FacilityID != "c" {
		t.Errorf("got %v, want only the pharmacy within 100m", got)
	}
}

func TestSearch_TypeFilter(t *testing.T) {
	t.Parallel()

	s := New(testFacilities()...)

	got, err := s.Search(context.Background(), facilities.Query{
		NearLat: 13.6218, NearLng: 123.1948, HasCoords: true,
		Type: "pharmacy",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].FacilityID != "c" {
		t.Errorf("got %v, want only the pharmacy", got)
	}
}

func TestSearch_BarangayFilter(t *testing.T) {
	t.Parallel()

	s := New(testFacilities()...)

	got, err := s.Search(context.Background(), facilities.Query{Barangay: "abella"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].FacilityID != "a" {
		t.Errorf("got %v, want the Abella clinic (case-insensitive)", got)
	}
}

func TestSearch_NoLocationSortsByName(t *testing.T) {
	t.Parallel()

	s := New(testFacilities()...)

	got, err := s.Search(context.Background(), facilities.Query{Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d results, want 4", len(got))
	}
	if got[0].Name != "Alpha Clinic" || got[3].Name != "Delta Hospital" {
		t.Errorf("results not name-sorted: %q .. %q", got[0].Name, got[3].Name)
	}
	if got[0].DistanceMeters != 0 {
		t.Errorf("DistanceMeters = %v without coords, want 0", got[0].DistanceMeters)
	}
}

func TestSearch_SeedLoadsWhenEmpty(t *testing.T) {
	t.Parallel()

	s := New()
	got, err := s.Search(context.Background(), facilities.Query{Limit: 20})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("seed set is empty")
	}
	types := map[string]bool{"hospital": true, "health_center": true, "pharmacy": true}
	for _, c := range got {
		if c.FacilityID == "" || c.Name == "" {
			t.Errorf("seed record missing fields: %+v", c)
		}
		if !types[c.FacilityType] {
			t.Errorf("seed record %q has type %q outside the taxonomy", c.FacilityID, c.FacilityType)
		}
	}
}

package geo

import (
	"math"
	"testing"
)

func TestBounds_Contains(t *testing.T) {
	t.Parallel()

	naga := Bounds{MinLat: 13.55, MaxLat: 13.70, MinLng: 123.15, MaxLng: 123.35}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"city center", Point{13.6218, 123.1948}, true},
		{"south-west corner", Point{13.55, 123.15}, true},
		{"north of bounds", Point{13.75, 123.20}, false},
		{"west of bounds", Point{13.62, 123.10}, false},
		{"manila", Point{14.5995, 120.9842}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := naga.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHaversineMeters(t *testing.T) {
	t.Parallel()

	t.Run("zero distance", func(t *testing.T) {
		t.Parallel()

		p := Point{13.62, 123.19}
		if d := HaversineMeters(p, p); d != 0 {
			t.Errorf("distance to self = %v, want 0", d)
		}
	})

	t.Run("known distance", func(t *testing.T) {
		t.Parallel()

		// One degree of latitude is about 111.2 km.
		a := Point{13.0, 123.0}
		b := Point{14.0, 123.0}
		d := HaversineMeters(a, b)
		if math.Abs(d-111195) > 200 {
			t.Errorf("distance = %v, want ~111195m", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()

		a := Point{13.6218, 123.1948}
		b := Point{13.6308, 123.1859}
		if d1, d2 := HaversineMeters(a, b), HaversineMeters(b, a); math.Abs(d1-d2) > 1e-9 {
			t.Errorf("asymmetric: %v vs %v", d1, d2)
		}
	})
}

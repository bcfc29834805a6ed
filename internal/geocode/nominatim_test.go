package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/linnemanlabs/gabay/internal/geo"
)

var nagaBounds = geo.Bounds{MinLat: 13.55, MaxLat: 13.70, MinLng: 123.15, MaxLng: 123.35}

func TestLookup_Success(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("bounded") != "1" {
			t.Error("bounded=1 not set")
		}
		_, _ = w.Write([]byte(`[{"lat":"13.6225","lon":"123.1812"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "Naga City", nagaBounds)
	p, err := c.Lookup(context.Background(), "Barangay Abella")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Lat != 13.6225 || p.Lng != 123.1812 {
		t.Errorf("point = %+v", p)
	}
	if gotQuery != "Barangay Abella, Naga City" {
		t.Errorf("query = %q, want city appended", gotQuery)
	}
}

func TestLookup_CityNotDuplicated(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"lat":"13.62","lon":"123.19"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "Naga City", nagaBounds)
	if _, err := c.Lookup(context.Background(), "Abella, Naga City"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if gotQuery != "Abella, Naga City" {
		t.Errorf("query = %q, want unchanged", gotQuery)
	}
}

func TestLookup_CachesResults(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"lat":"13.6225","lon":"123.1812"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "Naga City", nagaBounds)

	for i := 0; i < 3; i++ {
		if _, err := c.Lookup(context.Background(), "Barangay Abella"); err != nil {
			t.Fatalf("Lookup %d: %v", i, err)
		}
	}
	// Key is case-insensitive.
	if _, err := c.Lookup(context.Background(), "barangay abella"); err != nil {
		t.Fatalf("Lookup lowercase: %v", err)
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("upstream called %d times, want 1", n)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "Naga City", nagaBounds)
	if _, err := c.Lookup(context.Background(), "nowhere in particular"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLookup_OutsideBounds(t *testing.T) {
	t.Parallel()

	// Upstream returns Manila despite the viewbox hint.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"14.5995","lon":"120.9842"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "Naga City", nagaBounds)
	if _, err := c.Lookup(context.Background(), "SM Manila"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for out-of-area result", err)
	}
}

func TestLookup_EmptyText(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:0", "", "Naga City", nagaBounds)
	if _, err := c.Lookup(context.Background(), "   "); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound without hitting the network", err)
	}
}

func TestLookup_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "", "Naga City", nagaBounds)
	_, err := c.Lookup(context.Background(), "Barangay Abella")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want transport error", err)
	}
}

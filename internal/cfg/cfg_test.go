package cfg

import (
	"flag"
	"strings"
	"testing"
)

func validConfig(t *testing.T) *Config {
	t.Helper()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	c.ClaudeAPIKey = "sk-test"
	return &c
}

func TestValidate_DefaultsWithAPIKey(t *testing.T) {
	t.Parallel()

	c := validConfig(t)
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil for defaults plus API key", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing api key", func(c *Config) { c.ClaudeAPIKey = "" }, "CLAUDE_API_KEY"},
		{"missing model", func(c *Config) { c.ClaudeModel = "" }, "CLAUDE_MODEL"},
		{"drain too long", func(c *Config) { c.DrainSeconds = 301 }, "DRAIN_SECONDS"},
		{"budget below drain", func(c *Config) { c.ShutdownBudgetSeconds = c.DrainSeconds }, "SHUTDOWN_BUDGET_SECONDS"},
		{"bad port", func(c *Config) { c.APIPort = 0 }, "HTTP_PORT"},
		{"missing osrm", func(c *Config) { c.OSRMBaseURL = "" }, "OSRM_BASE_URL"},
		{"empty osrm profile", func(c *Config) { c.OSRMWalkingProfile = "" }, "profile"},
		{"missing nominatim", func(c *Config) { c.NominatimBaseURL = "" }, "NOMINATIM_BASE_URL"},
		{"missing city", func(c *Config) { c.CityName = "" }, "CITY_NAME"},
		{"inverted lat bounds", func(c *Config) { c.MinLat, c.MaxLat = c.MaxLat, c.MinLat }, "BOUNDS_MIN_LAT"},
		{"inverted lng bounds", func(c *Config) { c.MinLng, c.MaxLng = c.MaxLng, c.MinLng }, "BOUNDS_MIN_LNG"},
		{"centroid outside bounds", func(c *Config) { c.CentroidLat = 14.5 }, "centroid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig(t)
			tt.mutate(c)

			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestBoundsAndCentroid(t *testing.T) {
	t.Parallel()

	c := validConfig(t)

	b := c.Bounds()
	if b.MinLat != 13.55 || b.MaxLat != 13.70 || b.MinLng != 123.15 || b.MaxLng != 123.35 {
		t.Errorf("Bounds() = %+v, want Naga defaults", b)
	}

	p := c.Centroid()
	if !b.Contains(p) {
		t.Errorf("default centroid %+v outside default bounds", p)
	}
}

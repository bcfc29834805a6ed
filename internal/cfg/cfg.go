package cfg

import (
	"errors"
	"flag"
	"fmt"

	"github.com/linnemanlabs/gabay/internal/geo"
)

// Config adds app-specific configuration fields to the common
// cfg.Registerable and cfg.Validatable interfaces
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	ClaudeAPIKey          string
	ClaudeModel           string
	DatabaseURL           string
	OSRMBaseURL           string
	OSRMDrivingProfile    string
	OSRMWalkingProfile    string
	NominatimBaseURL      string
	NominatimEmail        string
	InternalAPIKey        string
	CityName              string
	MinLat                float64
	MaxLat                float64
	MinLng                float64
	MaxLng                float64
	CentroidLat           float64
	CentroidLng           float64
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for accessing the Claude LLM provider")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "Claude model to use")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL (empty = in-memory stores)")
	fs.StringVar(&c.OSRMBaseURL, "osrm-base-url", "https://router.project-osrm.org", "OSRM routing endpoint")
	fs.StringVar(&c.OSRMDrivingProfile, "osrm-driving-profile", "driving", "OSRM profile name for driving routes")
	fs.StringVar(&c.OSRMWalkingProfile, "osrm-walking-profile", "foot", "OSRM profile name for walking routes")
	fs.StringVar(&c.NominatimBaseURL, "nominatim-base-url", "https://nominatim.openstreetmap.org", "Nominatim geocoding endpoint")
	fs.StringVar(&c.NominatimEmail, "nominatim-email", "", "contact email sent to Nominatim per usage policy")
	fs.StringVar(&c.InternalAPIKey, "internal-api-key", "", "shared key expected in X-Internal-Key (empty = auth disabled, dev only)")
	fs.StringVar(&c.CityName, "city-name", "Naga City", "display name of the service area")
	fs.Float64Var(&c.MinLat, "bounds-min-lat", 13.55, "service area south bound")
	fs.Float64Var(&c.MaxLat, "bounds-max-lat", 13.70, "service area north bound")
	fs.Float64Var(&c.MinLng, "bounds-min-lng", 123.15, "service area west bound")
	fs.Float64Var(&c.MaxLng, "bounds-max-lng", 123.35, "service area east bound")
	fs.Float64Var(&c.CentroidLat, "centroid-lat", 13.6218, "fallback start latitude when no location is known")
	fs.Float64Var(&c.CentroidLng, "centroid-lng", 123.1948, "fallback start longitude when no location is known")
}

// Bounds returns the configured service area box.
func (c *Config) Bounds() geo.Bounds {
	return geo.Bounds{MinLat: c.MinLat, MaxLat: c.MaxLat, MinLng: c.MinLng, MaxLng: c.MaxLng}
}

// Centroid returns the configured fallback start point.
func (c *Config) Centroid() geo.Point {
	return geo.Point{Lat: c.CentroidLat, Lng: c.CentroidLng}
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Claude API key and model are required for LLM access
	if c.ClaudeAPIKey == "" {
		errs = append(errs, errors.New("CLAUDE_API_KEY is required"))
	}
	if c.ClaudeModel == "" {
		errs = append(errs, errors.New("CLAUDE_MODEL is required"))
	}

	if c.OSRMBaseURL == "" {
		errs = append(errs, errors.New("OSRM_BASE_URL is required"))
	}
	if c.OSRMDrivingProfile == "" || c.OSRMWalkingProfile == "" {
		errs = append(errs, errors.New("OSRM profile names must not be empty"))
	}
	if c.NominatimBaseURL == "" {
		errs = append(errs, errors.New("NOMINATIM_BASE_URL is required"))
	}

	if c.CityName == "" {
		errs = append(errs, errors.New("CITY_NAME is required"))
	}

	// Service area must be a real box containing the centroid
	if c.MinLat >= c.MaxLat {
		errs = append(errs, fmt.Errorf("BOUNDS_MIN_LAT %f must be less than BOUNDS_MAX_LAT %f", c.MinLat, c.MaxLat))
	}
	if c.MinLng >= c.MaxLng {
		errs = append(errs, fmt.Errorf("BOUNDS_MIN_LNG %f must be less than BOUNDS_MAX_LNG %f", c.MinLng, c.MaxLng))
	}
	if len(errs) == 0 && !c.Bounds().Contains(c.Centroid()) {
		errs = append(errs, fmt.Errorf("centroid (%f, %f) must lie inside the service area bounds", c.CentroidLat, c.CentroidLng))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Package routing provides directions via an OSRM backend, restricted to
// the configured service area.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/geo"
)

// Profile selects the travel mode for a route request.
type Profile string

const (
	ProfileDriving Profile = "driving"
	ProfileWalking Profile = "walking"
)

var (
	// ErrOutOfBounds means an endpoint lies outside the service area.
	// Routing is only supported within the configured city bounds.
	ErrOutOfBounds = errors.New("routing: endpoint outside service area")

	// ErrNoRoute means OSRM could not connect the two endpoints.
	ErrNoRoute = errors.New("routing: no route found")
)

// Client calls the OSRM HTTP API.
type Client struct {
	baseURL    string
	bounds     geo.Bounds
	profiles   map[Profile]string
	httpClient *http.Client
}

// New initializes a Client. profiles maps travel modes to OSRM profile
// names; nil selects the defaults (driving -> driving, walking -> foot).
func New(baseURL string, bounds geo.Bounds, profiles map[Profile]string) *Client {
	if profiles == nil {
		profiles = map[Profile]string{
			ProfileDriving: "driving",
			ProfileWalking: "foot",
		}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		bounds:   bounds,
		profiles: profiles,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Steps []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route fetches directions between two points. Both endpoints must lie
// inside the service area. The From/To labels are left empty for the
// caller to fill.
func (c *Client) Route(ctx context.Context, from, to geo.Point, profile Profile) (*assistant.RouteCard, error) {
	if !c.bounds.Contains(from) || !c.bounds.Contains(to) {
		return nil, ErrOutOfBounds
	}

	apiProfile, ok := c.profiles[profile]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", profile)
	}

	u := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson&steps=true",
		c.baseURL, apiProfile, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// OSRM reports NoRoute with a 400, so parse before checking status.
	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("osrm returned %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if parsed.Code == "NoRoute" || (parsed.Code == "Ok" && len(parsed.Routes) == 0) {
		return nil, ErrNoRoute
	}
	if parsed.Code != "Ok" {
		return nil, fmt.Errorf("osrm error %q: %s", parsed.Code, string(body))
	}

	route := parsed.Routes[0]

	card := &assistant.RouteCard{
		CardType: assistant.CardRoute,
		From:     assistant.RouteEndpoint{Lat: from.Lat, Lng: from.Lng},
		To:       assistant.RouteEndpoint{Lat: to.Lat, Lng: to.Lng},
		GeoJSONLine: assistant.GeoJSONLineString{
			Type:        route.Geometry.Type,
			Coordinates: route.Geometry.Coordinates,
		},
		DistanceMeters:  int(math.Round(route.Distance)),
		DurationSeconds: int(math.Round(route.Duration)),
		Profile:         string(profile),
	}

	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			card.Steps = append(card.Steps, assistant.RouteStep{
				Instruction:     instruction(step.Maneuver.Type, step.Maneuver.Modifier, step.Name),
				DistanceMeters:  int(math.Round(step.Distance)),
				DurationSeconds: int(math.Round(step.Duration)),
			})
		}
	}

	return card, nil
}

// instruction renders an OSRM maneuver as a short English sentence.
func instruction(kind, modifier, road string) string {
	var b strings.Builder

	switch kind {
	case "depart":
		b.WriteString("Head")
		if modifier != "" {
			b.WriteString(" " + modifier)
		}
	case "arrive":
		b.WriteString("Arrive at your destination")
		return b.String()
	case "turn", "end of road", "fork":
		b.WriteString("Turn")
		if modifier != "" {
			b.WriteString(" " + modifier)
		}
	case "continue", "new name":
		b.WriteString("Continue")
		if modifier != "" && modifier != "straight" {
			b.WriteString(" " + modifier)
		}
	case "roundabout", "rotary":
		b.WriteString("Take the roundabout")
	default:
		b.WriteString("Continue")
	}

	if road != "" {
		b.WriteString(" onto " + road)
	}
	return b.String()
}

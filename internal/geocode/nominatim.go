// Package geocode resolves free-text place descriptions to coordinates
// using a Nominatim endpoint, with an in-process result cache.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/linnemanlabs/gabay/internal/geo"
)

// ErrNotFound means the text resolved to nothing inside the service area.
var ErrNotFound = errors.New("geocode: no match")

const (
	cacheTTL     = 24 * time.Hour
	cacheCleanup = time.Hour
)

// Client calls the Nominatim search API. Lookups are scoped to the
// configured city and bounding box, and successful results are cached.
type Client struct {
	baseURL    string
	email      string
	city       string
	bounds     geo.Bounds
	httpClient *http.Client
	cache      *cache.Cache
}

// New initializes a Client. email identifies the caller per Nominatim
// usage policy and may be empty for self-hosted instances.
func New(baseURL, email, city string, bounds geo.Bounds) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		city:    city,
		bounds:  bounds,
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

// Lookup resolves text like "Barangay Abella" to a point inside the
// service area.
func (c *Client) Lookup(ctx context.Context, text string) (geo.Point, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return geo.Point{}, ErrNotFound
	}
	if hit, ok := c.cache.Get(key); ok {
		return hit.(geo.Point), nil
	}

	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid endpoint: %w", err)
	}

	query := text
	if c.city != "" && !strings.Contains(key, strings.ToLower(c.city)) {
		query = text + ", " + c.city
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	// viewbox is lng,lat ordered: left,top,right,bottom
	q.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f",
		c.bounds.MinLng, c.bounds.MaxLat, c.bounds.MaxLng, c.bounds.MinLat))
	q.Set("bounded", "1")
	if c.email != "" {
		q.Set("email", c.email)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "gabay-health-assistant")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return geo.Point{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("nominatim returned %d: %s", resp.StatusCode, string(body))
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return geo.Point{}, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return geo.Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("parse lon: %w", err)
	}

	p := geo.Point{Lat: lat, Lng: lng}
	if !c.bounds.Contains(p) {
		return geo.Point{}, ErrNotFound
	}

	c.cache.Set(key, p, cache.DefaultExpiration)
	return p, nil
}

// Package googleplaces implementa places.Lookup sobre Google Places API (v1).
package googleplaces

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/platform/httpclient"
	"github.com/weijenchou/dogdietlinebot/internal/ports/places"
)

var (
	ErrNotConfigured = errors.New("google places not configured")
	ErrUpstream      = errors.New("google places upstream error")
)

const (
	DefaultBaseURL = "https://places.googleapis.com"

	defaultRadius     = 1000.0
	defaultMaxResults = 20
)

// Tipos incluidos en la búsqueda cercana.
var nearbyTypes = []string{"dog_cafe", "cat_cafe", "restaurant"}

var fieldMask = strings.Join([]string{
	"places.location",
	"places.displayName",
	"places.formattedAddress",
	"places.rating",
	"places.allowsDogs",
}, ",")

type Config struct {
	BaseURL string // default DefaultBaseURL
	APIKey  string

	RadiusMeters float64
	MaxResults   int
	Timeout      time.Duration
	Retries      int
}

type Client struct {
	http   *httpclient.Client
	apiKey string
	radius float64
	max    int
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Retries = cfg.Retries

	c := &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
		radius: cfg.RadiusMeters,
		max:    cfg.MaxResults,
	}
	if c.radius <= 0 {
		c.radius = defaultRadius
	}
	if c.max <= 0 {
		c.max = defaultMaxResults
	}
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placeDTO struct {
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Rating           *float64 `json:"rating"`
	AllowsDogs       bool     `json:"allowsDogs"`
	Location         latLng   `json:"location"`
}

type searchResponse struct {
	Places []placeDTO `json:"places"`
}

type nearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center latLng  `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

// FindNearbyDogFriendlyPlaces devuelve solo lugares con allowsDogs.
func (c *Client) FindNearbyDogFriendlyPlaces(ctx context.Context, lat, lon float64) ([]places.Place, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var req nearbyRequest
	req.IncludedTypes = nearbyTypes
	req.MaxResultCount = c.max
	req.LocationRestriction.Circle.Center = latLng{Latitude: lat, Longitude: lon}
	req.LocationRestriction.Circle.Radius = c.radius

	var resp searchResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/v1/places:searchNearby", c.headers(), req, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out := make([]places.Place, 0, len(resp.Places))
	for _, p := range resp.Places {
		if !p.AllowsDogs {
			continue
		}
		out = append(out, places.Place{
			Name:    p.DisplayName.Text,
			Rating:  p.Rating,
			Address: p.FormattedAddress,
			Lat:     p.Location.Latitude,
			Lon:     p.Location.Longitude,
		})
	}
	return out, nil
}

// ResolvePlaceName usa el primer resultado de searchText.
func (c *Client) ResolvePlaceName(ctx context.Context, name string) (float64, float64, error) {
	if !c.IsConfigured() {
		return 0, 0, ErrNotConfigured
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, 0, places.ErrNotFound
	}

	var resp searchResponse
	body := map[string]string{"textQuery": name}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/v1/places:searchText", c.headers(), body, &resp); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Places) == 0 {
		return 0, 0, places.ErrNotFound
	}
	loc := resp.Places[0].Location
	return loc.Latitude, loc.Longitude, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"X-Goog-Api-Key":   c.apiKey,
		"X-Goog-FieldMask": fieldMask,
	}
}

package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/activity-weather/internal/common"
	"github.com/i474232898/activity-weather/internal/weather"
)

// builtin is used when no geocoding key is configured.
var builtin = []weather.Location{
	{Name: "San Francisco, CA", Lat: 37.7749, Lon: -122.4194},
	{Name: "New York, NY", Lat: 40.7128, Lon: -74.0060},
	{Name: "Los Angeles, CA", Lat: 34.0522, Lon: -118.2437},
	{Name: "Chicago, IL", Lat: 41.8781, Lon: -87.6298},
	{Name: "Miami, FL", Lat: 25.7617, Lon: -80.1918},
}

// geocodeFunc matches geocoder.Geocoding so tests can swap it.
type geocodeFunc func(geocoder.Address) (geocoder.Location, error)

// Resolver turns free-text queries into locations.
type Resolver struct {
	geocode geocodeFunc
	logger  *slog.Logger
}

// NewResolver returns a Resolver backed by the Google Geocoding API when
// apiKey is set, and by a built-in list of cities otherwise.
func NewResolver(apiKey string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{logger: logger.With("component", "geo.resolver")}
	if strings.TrimSpace(apiKey) != "" {
		// The geocoder package reads its key from a package variable.
		geocoder.ApiKey = apiKey
		r.geocode = geocoder.Geocoding
	}
	return r
}

// Search returns locations matching query.
func (r *Resolver) Search(ctx context.Context, query string) ([]weather.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []weather.Location{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.geocode == nil {
		out := []weather.Location{}
		for _, loc := range builtin {
			if common.ContainsFold(loc.Name, query) {
				out = append(out, loc)
			}
		}
		return out, nil
	}

	city, state := splitQuery(query)
	found, err := r.geocode(geocoder.Address{City: city, State: state})
	if err != nil {
		r.logger.Warn("geocoding failed", "query", query, "error", err)
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	return []weather.Location{{
		Name: query,
		Lat:  found.Latitude,
		Lon:  found.Longitude,
	}}, nil
}

// splitQuery reads "City, ST" style input.
func splitQuery(q string) (string, string) {
	city, state, ok := strings.Cut(q, ",")
	if !ok {
		return q, ""
	}
	return strings.TrimSpace(city), strings.TrimSpace(state)
}

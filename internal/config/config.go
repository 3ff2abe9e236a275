package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/activity-weather/internal/weather"
)

const (
	ModeLive = "live"
	ModeMock = "mock"
)

type AppConfig struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`

	// ProviderMode is "live" or "mock"; empty picks live when an API key is present.
	ProviderMode       string `envconfig:"PROVIDER_MODE"`
	OpenWeatherAPIKey  string `envconfig:"OPENWEATHER_API_KEY"`
	OpenWeatherBaseURL string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	Units              string `envconfig:"UNITS" default:"imperial"`
	MockSeed           int64  `envconfig:"MOCK_SEED" default:"42"`

	UVEnabled        bool   `envconfig:"UV_ENABLED" default:"true"`
	OpenMeteoBaseURL string `envconfig:"OPENMETEO_BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`

	GeocoderAPIKey string `envconfig:"GEOCODER_API_KEY"`

	// Refresh cadence per horizon; also the cache freshness window.
	CurrentRefresh time.Duration `envconfig:"CURRENT_REFRESH" default:"10m"`
	HourlyRefresh  time.Duration `envconfig:"HOURLY_REFRESH" default:"30m"`
	DailyRefresh   time.Duration `envconfig:"DAILY_REFRESH" default:"60m"`

	// In-memory history retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"144"` // 24h at 10-minute refreshes
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"24h"`

	// Caps distinct lat/lon pairs cached from client queries.
	StoreMaxLocations int `envconfig:"STORE_MAX_LOCATIONS" default:"1000"`

	// LocationsRaw is "name|lat|lon" entries separated by ";".
	LocationsRaw string             `envconfig:"WEATHER_LOCATIONS" default:"San Francisco, CA|37.7749|-122.4194"`
	Locations    []weather.Location `ignored:"true"`

	ProfilesFile string `envconfig:"PROFILES_FILE"`
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.ProviderMode == "" {
		cfg.ProviderMode = ModeMock
		if cfg.OpenWeatherAPIKey != "" {
			cfg.ProviderMode = ModeLive
		}
	}

	locs, err := parseLocations(cfg.LocationsRaw)
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate ensures the configuration is safe to use.
func (c *AppConfig) Validate() error {
	switch c.ProviderMode {
	case ModeLive:
		if strings.TrimSpace(c.OpenWeatherAPIKey) == "" {
			return errors.New("OPENWEATHER_API_KEY is required in live mode")
		}
	case ModeMock:
	default:
		return fmt.Errorf("PROVIDER_MODE must be %q or %q, got %q", ModeLive, ModeMock, c.ProviderMode)
	}
	switch weather.Units(c.Units) {
	case weather.UnitsImperial, weather.UnitsMetric:
	default:
		return fmt.Errorf("UNITS must be imperial or metric, got %q", c.Units)
	}
	if c.CurrentRefresh <= 0 || c.HourlyRefresh <= 0 || c.DailyRefresh <= 0 {
		return errors.New("refresh intervals must be positive")
	}
	if c.StoreMaxAge < 0 {
		return errors.New("STORE_MAX_AGE cannot be negative")
	}
	if c.StoreMaxLocations < 0 {
		return errors.New("STORE_MAX_LOCATIONS cannot be negative")
	}
	if len(c.Locations) == 0 {
		return errors.New("at least one location must be configured")
	}
	return nil
}

// DefaultLocation is the first configured location.
func (c *AppConfig) DefaultLocation() weather.Location {
	return c.Locations[0]
}

func parseLocations(raw string) ([]weather.Location, error) {
	var locs []weather.Location
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid WEATHER_LOCATIONS entry %q: want name|lat|lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude in %q", entry)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude in %q", entry)
		}
		locs = append(locs, weather.Location{
			Name: strings.TrimSpace(parts[0]),
			Lat:  lat,
			Lon:  lon,
		})
	}
	return locs, nil
}

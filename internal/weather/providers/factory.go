package providers

import (
	"fmt"
	"net/http"

	"github.com/i474232898/activity-weather/internal/weather"
)

// Mode selects between the live provider and synthetic data.
type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// Config describes which sources to build.
type Config struct {
	Mode      Mode
	APIKey    string
	BaseURL   string
	Units     weather.Units
	UVEnabled bool
	UVBaseURL string
	Seed      int64
}

// NewSource builds the weather source and, if enabled, the UV source for cfg.
// The returned UV source is nil when UV lookups are disabled.
func NewSource(client *http.Client, cfg Config) (weather.Source, weather.UVSource, error) {
	switch cfg.Mode {
	case ModeMock:
		mock := NewMockSource(cfg.Seed, cfg.Units)
		if !cfg.UVEnabled {
			return mock, nil, nil
		}
		return mock, mock, nil
	case ModeLive:
		if cfg.APIKey == "" {
			return nil, nil, fmt.Errorf("live mode requires an api key")
		}
		src := NewOpenWeatherSource(client, cfg.APIKey, cfg.BaseURL, cfg.Units)
		if !cfg.UVEnabled {
			return src, nil, nil
		}
		return src, NewOpenMeteoUV(client, cfg.UVBaseURL), nil
	default:
		return nil, nil, fmt.Errorf("unknown provider mode %q", cfg.Mode)
	}
}

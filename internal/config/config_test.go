package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("PROVIDER_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ModeMock, cfg.ProviderMode)
	assert.Equal(t, "imperial", cfg.Units)
	assert.Equal(t, 10*time.Minute, cfg.CurrentRefresh)
	assert.Equal(t, 30*time.Minute, cfg.HourlyRefresh)
	assert.Equal(t, time.Hour, cfg.DailyRefresh)
	assert.True(t, cfg.UVEnabled)
	assert.Equal(t, 1000, cfg.StoreMaxLocations)
	require.Len(t, cfg.Locations, 1)
	assert.Equal(t, "San Francisco, CA", cfg.DefaultLocation().Name)
}

func TestLoadPicksLiveWithKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("PROVIDER_MODE", "")
	t.Setenv("UNITS", "metric")
	t.Setenv("CURRENT_REFRESH", "5m")
	t.Setenv("WEATHER_LOCATIONS", "Paris|48.8566|2.3522; Oslo|59.9139|10.7522")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeLive, cfg.ProviderMode)
	assert.Equal(t, "metric", cfg.Units)
	assert.Equal(t, 5*time.Minute, cfg.CurrentRefresh)
	require.Len(t, cfg.Locations, 2)
	assert.Equal(t, "Oslo", cfg.Locations[1].Name)
	assert.Equal(t, 59.9139, cfg.Locations[1].Lat)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"live without key": {"PROVIDER_MODE": "live", "OPENWEATHER_API_KEY": ""},
		"unknown mode":     {"PROVIDER_MODE": "replay"},
		"unknown units":    {"UNITS": "kelvin"},
		"zero refresh":     {"HOURLY_REFRESH": "0s"},
		"bad location":     {"WEATHER_LOCATIONS": "Nowhere|91|0"},
		"short location":   {"WEATHER_LOCATIONS": "Nowhere|10"},
		"no locations":     {"WEATHER_LOCATIONS": " ; "},
		"bad duration":     {"DAILY_REFRESH": "soon"},
		"negative cap":     {"STORE_MAX_LOCATIONS": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("OPENWEATHER_API_KEY", "")
			t.Setenv("PROVIDER_MODE", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").Level().String())
	assert.Equal(t, "WARN", parseLevel(" WARN ").Level().String())
	assert.Equal(t, "ERROR", parseLevel("error").Level().String())
	assert.Equal(t, "INFO", parseLevel("verbose").Level().String())
	assert.NotNil(t, NewLogger("info"))
}

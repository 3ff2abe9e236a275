package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/activity-weather/internal/weather"
)

const defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherSource implements weather.Source for OpenWeatherMap.
type OpenWeatherSource struct {
	name    string
	apiKey  string
	baseURL string
	units   weather.Units
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherSource(client *http.Client, apiKey, baseURL string, units weather.Units) *OpenWeatherSource {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenWeatherURL
	}
	if units == "" {
		units = weather.UnitsImperial
	}
	return &OpenWeatherSource{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		units:   units,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherSource) Name() string {
	return p.name
}

func (p *OpenWeatherSource) FetchCurrent(ctx context.Context, loc weather.Location) (*weather.CurrentPayload, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: openweather api key is not configured", weather.ErrProviderUnavailable)
	}
	var payload weather.CurrentPayload
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.endpoint("weather", loc), &payload); err != nil {
		return nil, fmt.Errorf("openweather current: %w", err)
	}
	return &payload, nil
}

func (p *OpenWeatherSource) FetchForecast(ctx context.Context, loc weather.Location) (*weather.ForecastPayload, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: openweather api key is not configured", weather.ErrProviderUnavailable)
	}
	var payload weather.ForecastPayload
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.endpoint("forecast", loc), &payload); err != nil {
		return nil, fmt.Errorf("openweather forecast: %w", err)
	}
	return &payload, nil
}

func (p *OpenWeatherSource) endpoint(path string, loc weather.Location) string {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", loc.Lat))
	values.Set("lon", fmt.Sprintf("%f", loc.Lon))
	values.Set("appid", p.apiKey)
	values.Set("units", string(p.units))
	return fmt.Sprintf("%s/%s?%s", p.baseURL, path, values.Encode())
}

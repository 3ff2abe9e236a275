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

const defaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoUV implements weather.UVSource using Open-Meteo, which needs no API key.
type OpenMeteoUV struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoUV(client *http.Client, baseURL string) *OpenMeteoUV {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenMeteoURL
	}
	return &OpenMeteoUV{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoUV) FetchUV(ctx context.Context, loc weather.Location) (float64, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	values.Set("current", "uv_index")

	var payload struct {
		Current *struct {
			UVIndex *float64 `json:"uv_index"`
		} `json:"current"`
	}
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return 0, fmt.Errorf("openmeteo uv: %w", err)
	}
	if payload.Current == nil || payload.Current.UVIndex == nil {
		return 0, fmt.Errorf("openmeteo uv: %w: missing current.uv_index", weather.ErrMalformedPayload)
	}
	if *payload.Current.UVIndex < 0 {
		return 0, nil
	}
	return *payload.Current.UVIndex, nil
}

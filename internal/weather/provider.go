package weather

import (
	"context"
	"time"
)

// Source abstracts a weather data provider returning raw payloads
// (e.g. OpenWeatherMap, or the built-in mock).
type Source interface {
	Name() string
	FetchCurrent(ctx context.Context, loc Location) (*CurrentPayload, error)
	FetchForecast(ctx context.Context, loc Location) (*ForecastPayload, error)
}

// UVSource supplies the current UV index, which the main provider lacks.
type UVSource interface {
	FetchUV(ctx context.Context, loc Location) (float64, error)
}

// Store is the contract the in-memory cache must satisfy.
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest(loc Location, horizon Horizon) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Observation, error)
}

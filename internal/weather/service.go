package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config sets how long a cached horizon is served before it is fetched again.
type Config struct {
	CurrentTTL time.Duration
	HourlyTTL  time.Duration
	DailyTTL   time.Duration
}

// Service orchestrates fetching from the provider, normalizing, and caching.
type Service struct {
	cfg        Config
	store      Store
	source     Source
	uv         UVSource
	normalizer *Normalizer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new Service. uv may be nil, in which case the UV index
// of current observations stays at zero.
func NewService(cfg Config, store Store, source Source, uv UVSource, normalizer *Normalizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(NormalizerConfig{}, logger)
	}
	return &Service{
		cfg:        cfg,
		store:      store,
		source:     source,
		uv:         uv,
		normalizer: normalizer,
		logger:     logger.With("component", "weather.service"),
		now:        time.Now,
	}
}

// Current returns the current observation for loc.
func (s *Service) Current(ctx context.Context, loc Location) (Observation, error) {
	snap, err := s.get(ctx, loc, HorizonCurrent)
	if err != nil {
		return Observation{}, err
	}
	if len(snap.Observations) == 0 {
		return Observation{}, fmt.Errorf("%w: %w", ErrForecastUnavailable, ErrMalformedPayload)
	}
	return snap.Observations[0], nil
}

// Hourly returns up to 24 chronological hourly observations for loc.
func (s *Service) Hourly(ctx context.Context, loc Location) ([]Observation, error) {
	snap, err := s.get(ctx, loc, HorizonHourly)
	if err != nil {
		return nil, err
	}
	return snap.Observations, nil
}

// Daily returns up to 7 chronological daily observations for loc.
func (s *Service) Daily(ctx context.Context, loc Location) ([]Observation, error) {
	snap, err := s.get(ctx, loc, HorizonDaily)
	if err != nil {
		return nil, err
	}
	return snap.Observations, nil
}

// History returns current observations recorded for loc between from and to (inclusive).
func (s *Service) History(loc Location, from, to time.Time) ([]Observation, error) {
	return s.store.GetRange(loc, from, to)
}

// Warm refreshes every horizon for loc concurrently.
func (s *Service) Warm(ctx context.Context, loc Location) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, h := range []Horizon{HorizonCurrent, HorizonHourly, HorizonDaily} {
		h := h
		g.Go(func() error {
			_, err := s.Refresh(ctx, loc, h)
			return err
		})
	}
	return g.Wait()
}

// Refresh fetches and normalizes one horizon for loc and stores the result.
// On failure the previously stored snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context, loc Location, horizon Horizon) (Snapshot, error) {
	if s.source == nil {
		return Snapshot{}, fmt.Errorf("%w: %w: no source configured", ErrForecastUnavailable, ErrProviderUnavailable)
	}

	obs, err := s.fetch(ctx, loc, horizon)
	if err != nil {
		s.logger.Warn("weather refresh failed",
			"location", loc.Key(), "horizon", horizon, "source", s.source.Name(), "error", err)
		return Snapshot{}, fmt.Errorf("%w: %w", ErrForecastUnavailable, err)
	}

	snap := Snapshot{
		Location:     loc,
		Horizon:      horizon,
		FetchedAt:    s.now().UTC(),
		Source:       s.source.Name(),
		Observations: obs,
	}
	s.store.SaveSnapshot(snap)
	s.logger.Debug("weather refreshed", "location", loc.Key(), "horizon", horizon, "observations", len(obs))
	return snap, nil
}

func (s *Service) get(ctx context.Context, loc Location, horizon Horizon) (Snapshot, error) {
	if snap, err := s.store.GetLatest(loc, horizon); err == nil {
		if s.now().Sub(snap.FetchedAt) < s.ttl(horizon) {
			return snap, nil
		}
	}
	return s.Refresh(ctx, loc, horizon)
}

func (s *Service) fetch(ctx context.Context, loc Location, horizon Horizon) ([]Observation, error) {
	switch horizon {
	case HorizonCurrent:
		payload, err := s.source.FetchCurrent(ctx, loc)
		if err != nil {
			return nil, classify(err)
		}
		obs, err := s.normalizer.NormalizeCurrent(payload)
		if err != nil {
			return nil, err
		}
		obs.UVIndex = s.uvIndex(ctx, loc)
		return []Observation{obs}, nil
	case HorizonHourly, HorizonDaily:
		payload, err := s.source.FetchForecast(ctx, loc)
		if err != nil {
			return nil, classify(err)
		}
		if horizon == HorizonHourly {
			return s.normalizer.NormalizeHourly(payload)
		}
		return s.normalizer.NormalizeDaily(payload)
	default:
		return nil, fmt.Errorf("unknown horizon %q", horizon)
	}
}

func (s *Service) uvIndex(ctx context.Context, loc Location) float64 {
	if s.uv == nil {
		return 0
	}
	uv, err := s.uv.FetchUV(ctx, loc)
	if err != nil {
		s.logger.Warn("uv index unavailable", "location", loc.Key(), "error", err)
		return 0
	}
	return uv
}

func (s *Service) ttl(horizon Horizon) time.Duration {
	switch horizon {
	case HorizonCurrent:
		return s.cfg.CurrentTTL
	case HorizonHourly:
		return s.cfg.HourlyTTL
	default:
		return s.cfg.DailyTTL
	}
}

// classify makes sure a source error carries one of the provider error kinds.
func classify(err error) error {
	if errors.Is(err, ErrMalformedPayload) || errors.Is(err, ErrProviderUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}

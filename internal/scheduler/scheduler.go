package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/activity-weather/internal/weather"
)

const (
	fetchTimeout     = 30 * time.Second
	maxParallelFetch = 4
)

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, loc weather.Location, horizon weather.Horizon) (weather.Snapshot, error)
}

// Intervals sets the refresh cadence per horizon.
type Intervals struct {
	Current time.Duration
	Hourly  time.Duration
	Daily   time.Duration
}

// Scheduler periodically refreshes weather data for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	locations []weather.Location
	intervals Intervals
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(locations []weather.Location, intervals Intervals, service Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		intervals: intervals,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules one job per horizon and starts the underlying scheduler.
// Jobs run once immediately, then on their interval.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("no locations configured; nothing to schedule")
		return nil
	}

	jobs := []struct {
		horizon  weather.Horizon
		interval time.Duration
	}{
		{weather.HorizonCurrent, s.intervals.Current},
		{weather.HorizonHourly, s.intervals.Hourly},
		{weather.HorizonDaily, s.intervals.Daily},
	}
	for _, job := range jobs {
		h := job.horizon
		if _, err := s.scheduler.Every(job.interval).Do(func() { s.refreshAll(h) }); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// refreshAll refreshes one horizon for every location. A failed location
// keeps its last good snapshot.
func (s *Scheduler) refreshAll(horizon weather.Horizon) {
	s.logger.Debug("running weather refresh job", "horizon", horizon)

	var g errgroup.Group
	g.SetLimit(maxParallelFetch)
	for _, loc := range s.locations {
		loc := loc
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()

			if _, err := s.service.Refresh(ctx, loc, horizon); err != nil {
				s.logger.Warn("refresh failed", "location", loc.Name, "horizon", horizon, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	s.logger.Debug("completed weather refresh job", "horizon", horizon)
}

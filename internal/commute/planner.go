package commute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/activity-weather/internal/weather"
)

const (
	DefaultHours = 3
	maxHours     = 24
	fetchLimit   = 4
)

var (
	// ErrUnresolvedPlace is returned when a stop matches no known location.
	ErrUnresolvedPlace = errors.New("place could not be resolved")
	// ErrLookupFailed is returned when the location search itself fails.
	ErrLookupFailed = errors.New("place lookup failed")
)

// Role tells where along a route a stop sits.
type Role string

const (
	RoleOrigin      Role = "origin"
	RoleWaypoint    Role = "waypoint"
	RoleDestination Role = "destination"
)

// Resolver turns a free-text place into candidate locations.
type Resolver interface {
	Search(ctx context.Context, query string) ([]weather.Location, error)
}

// Forecaster serves current and hourly conditions for a location.
type Forecaster interface {
	Current(ctx context.Context, loc weather.Location) (weather.Observation, error)
	Hourly(ctx context.Context, loc weather.Location) ([]weather.Observation, error)
}

// Stop is the weather at one point of a route.
type Stop struct {
	Role     Role                  `json:"role"`
	Query    string                `json:"query"`
	Location weather.Location      `json:"location"`
	Current  weather.Observation   `json:"current"`
	Hourly   []weather.Observation `json:"hourly"`
	Alerts   []weather.Alert       `json:"alerts"`
}

// Report is the weather along a saved route, stops in travel order.
type Report struct {
	Route Route  `json:"route"`
	Stops []Stop `json:"stops"`
}

// Planner builds route weather reports.
type Planner struct {
	resolver   Resolver
	forecaster Forecaster
	logger     *slog.Logger
}

// NewPlanner creates a Planner.
func NewPlanner(resolver Resolver, forecaster Forecaster, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		resolver:   resolver,
		forecaster: forecaster,
		logger:     logger.With("component", "commute.planner"),
	}
}

// Weather resolves every stop of r and returns its current conditions,
// alerts and the next hours hourly buckets. hours is clamped to [1, 24].
// Any stop that cannot be resolved or fetched fails the whole report.
func (p *Planner) Weather(ctx context.Context, r Route, hours int) (Report, error) {
	hours = min(max(hours, 1), maxHours)

	stops := make([]Stop, 0, len(r.Waypoints)+2)
	stops = append(stops, Stop{Role: RoleOrigin, Query: r.Origin})
	for _, w := range r.Waypoints {
		stops = append(stops, Stop{Role: RoleWaypoint, Query: w})
	}
	stops = append(stops, Stop{Role: RoleDestination, Query: r.Destination})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i := range stops {
		g.Go(func() error {
			return p.fill(ctx, &stops[i], hours)
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn("route weather failed", "route", r.RouteID, "error", err)
		return Report{}, err
	}
	return Report{Route: r, Stops: stops}, nil
}

func (p *Planner) fill(ctx context.Context, stop *Stop, hours int) error {
	found, err := p.resolver.Search(ctx, stop.Query)
	if err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrLookupFailed, stop.Role, stop.Query, err)
	}
	if len(found) == 0 {
		return fmt.Errorf("%w: %s %q", ErrUnresolvedPlace, stop.Role, stop.Query)
	}
	stop.Location = found[0]

	current, err := p.forecaster.Current(ctx, stop.Location)
	if err != nil {
		return err
	}
	hourly, err := p.forecaster.Hourly(ctx, stop.Location)
	if err != nil {
		return err
	}
	if len(hourly) > hours {
		hourly = hourly[:hours]
	}
	if hourly == nil {
		hourly = []weather.Observation{}
	}

	stop.Current = current
	stop.Hourly = hourly
	stop.Alerts = weather.Alerts(current)
	if stop.Alerts == nil {
		stop.Alerts = []weather.Alert{}
	}
	return nil
}

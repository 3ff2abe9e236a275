package commute

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/activity-weather/internal/weather"
)

type mapResolver struct {
	places map[string]weather.Location
	err    error
}

func (m mapResolver) Search(_ context.Context, query string) ([]weather.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	if loc, ok := m.places[strings.ToLower(query)]; ok {
		return []weather.Location{loc}, nil
	}
	return []weather.Location{}, nil
}

type stubForecaster struct {
	mu      sync.Mutex
	current map[string]weather.Observation
	hours   int
	err     error
	calls   int
}

func (s *stubForecaster) Current(_ context.Context, loc weather.Location) (weather.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return weather.Observation{}, s.err
	}
	return s.current[loc.Name], nil
}

func (s *stubForecaster) Hourly(_ context.Context, loc weather.Location) ([]weather.Observation, error) {
	base := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	out := make([]weather.Observation, s.hours)
	for i := range out {
		out[i] = weather.Observation{Timestamp: base.Add(time.Duration(i) * time.Hour), Temperature: float64(60 + i)}
	}
	return out, nil
}

var places = map[string]weather.Location{
	"home":   {Name: "Home", Lat: 37.77, Lon: -122.42},
	"school": {Name: "School", Lat: 37.80, Lon: -122.27},
	"office": {Name: "Office", Lat: 37.44, Lon: -122.14},
}

func TestPlannerWeatherOrdersStops(t *testing.T) {
	fc := &stubForecaster{
		hours: 24,
		current: map[string]weather.Observation{
			"Home":   {Temperature: 58, Condition: weather.ConditionCloudy},
			"Office": {Temperature: 70, WindSpeed: 30, Condition: weather.ConditionSunny},
		},
	}
	p := NewPlanner(mapResolver{places: places}, fc, nil)

	route := Route{RouteID: "r1", RouteName: "Work", Origin: "home", Destination: "office", Waypoints: []string{"school"}}
	report, err := p.Weather(context.Background(), route, DefaultHours)
	require.NoError(t, err)

	assert.Equal(t, route, report.Route)
	require.Len(t, report.Stops, 3)
	assert.Equal(t, []Role{RoleOrigin, RoleWaypoint, RoleDestination},
		[]Role{report.Stops[0].Role, report.Stops[1].Role, report.Stops[2].Role})
	assert.Equal(t, "Home", report.Stops[0].Location.Name)
	assert.Equal(t, "school", report.Stops[1].Query)
	assert.Equal(t, 58.0, report.Stops[0].Current.Temperature)

	for _, stop := range report.Stops {
		assert.Len(t, stop.Hourly, DefaultHours)
		assert.NotNil(t, stop.Alerts)
	}
	assert.Empty(t, report.Stops[0].Alerts)
	require.Len(t, report.Stops[2].Alerts, 1)
	assert.Equal(t, weather.AlertWarning, report.Stops[2].Alerts[0].Level)
}

func TestPlannerWeatherClampsHours(t *testing.T) {
	route := Route{RouteName: "Work", Origin: "home", Destination: "office"}

	tests := []struct {
		name      string
		available int
		hours     int
		want      int
	}{
		{"zero becomes one", 24, 0, 1},
		{"above a day", 30, 48, 24},
		{"short forecast", 2, 6, 2},
		{"empty forecast", 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(mapResolver{places: places}, &stubForecaster{hours: tt.available}, nil)
			report, err := p.Weather(context.Background(), route, tt.hours)
			require.NoError(t, err)
			for _, stop := range report.Stops {
				assert.NotNil(t, stop.Hourly)
				assert.Len(t, stop.Hourly, tt.want)
			}
		})
	}
}

func TestPlannerWeatherErrors(t *testing.T) {
	route := Route{RouteName: "Trip", Origin: "home", Destination: "atlantis"}

	_, err := NewPlanner(mapResolver{places: places}, &stubForecaster{}, nil).Weather(context.Background(), route, 3)
	assert.ErrorIs(t, err, ErrUnresolvedPlace)
	assert.Contains(t, err.Error(), "destination")

	_, err = NewPlanner(mapResolver{err: errors.New("quota")}, &stubForecaster{}, nil).Weather(context.Background(), route, 3)
	assert.ErrorIs(t, err, ErrLookupFailed)

	fc := &stubForecaster{err: weather.ErrForecastUnavailable}
	route.Destination = "office"
	_, err = NewPlanner(mapResolver{places: places}, fc, nil).Weather(context.Background(), route, 3)
	assert.ErrorIs(t, err, weather.ErrForecastUnavailable)
}

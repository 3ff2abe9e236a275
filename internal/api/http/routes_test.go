package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/activity-weather/internal/activity"
	"github.com/i474232898/activity-weather/internal/geo"
	"github.com/i474232898/activity-weather/internal/store"
	"github.com/i474232898/activity-weather/internal/weather"
	"github.com/i474232898/activity-weather/internal/weather/providers"
)

var defaultLoc = weather.Location{Name: "San Francisco, CA", Lat: 37.7749, Lon: -122.4194}

func newTestApp(t *testing.T, source weather.Source) (*fiber.App, *store.ProfileStore) {
	t.Helper()

	var uv weather.UVSource
	if mock, ok := source.(*providers.MockSource); ok {
		uv = mock
	}
	svc := weather.NewService(weather.Config{
		CurrentTTL: 10 * time.Minute,
		HourlyTTL:  30 * time.Minute,
		DailyTTL:   time.Hour,
	}, store.NewMemoryStore(10, 24*time.Hour, 0), source, uv, nil, nil)

	profiles := store.NewProfileStore()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Deps{
		Weather:         svc,
		Profiles:        profiles,
		Routes:          store.NewRouteStore(),
		Resolver:        geo.NewResolver("", nil),
		DefaultLocation: defaultLoc,
	})
	return app, profiles
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestCurrentWeatherDefaultsLocation(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, body := do(t, app, http.MethodGet, "/api/v1/weather/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	loc := body["location"].(map[string]any)
	assert.Equal(t, defaultLoc.Name, loc["name"])
	current := body["current"].(map[string]any)
	assert.Equal(t, "partly-cloudy", current["condition"])
	assert.Equal(t, 72.0, current["temperature"])
	assert.Equal(t, 5.0, current["uvIndex"])
}

func TestLocationQueryValidation(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	for _, target := range []string{
		"/api/v1/weather/current?lat=10",
		"/api/v1/weather/hourly?lat=abc&lon=1",
		"/api/v1/weather/daily?lat=100&lon=0",
		"/api/v1/weather/alerts?lat=0&lon=181",
	} {
		resp, body := do(t, app, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		assert.Equal(t, true, body["error"], target)
	}
}

func TestHourlyAndDaily(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, body := do(t, app, http.MethodGet, "/api/v1/weather/hourly?lat=40.7128&lon=-74.006", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["hourly"], 24)

	resp, body = do(t, app, http.MethodGet, "/api/v1/weather/daily?lat=40.7128&lon=-74.006", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := body["daily"].([]any)
	require.NotEmpty(t, days)
	assert.LessOrEqual(t, len(days), 7)
	assert.Contains(t, days[0], "tempHigh")
}

func TestAlertsAlwaysArray(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, body := do(t, app, http.MethodGet, "/api/v1/weather/alerts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["alerts"])
	assert.Empty(t, body["alerts"])
}

func TestRefreshWarmsEveryHorizon(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, body := do(t, app, http.MethodPost, "/api/v1/weather/refresh?lat=25.7617&lon=-80.1918", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["refreshed"])

	app, _ = newTestApp(t, nil)
	resp, _ = do(t, app, http.MethodPost, "/api/v1/weather/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestForecastUnavailable(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodGet, "/api/v1/weather/current", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, weather.ErrForecastUnavailable.Error(), body["message"])
}

func TestHistory(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, _ := do(t, app, http.MethodGet, "/api/v1/weather/history?from=2024-01-01T00:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/weather/history?from=1717243200&to=1717200000", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/weather/history?from=yesterday&to=today", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	now := time.Now().UTC()
	q := url.Values{}
	q.Set("from", now.Add(-time.Hour).Format(time.RFC3339))
	q.Set("to", now.Add(time.Hour).Format(time.RFC3339))
	target := "/api/v1/weather/history?" + q.Encode()

	resp, _ = do(t, app, http.MethodGet, target, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/weather/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["observations"], 1)
}

func TestLocationSearch(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodGet, "/api/v1/locations/search?q=chicago", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Chicago, IL", results[0].(map[string]any)["name"])
}

func TestProfileLifecycle(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, _ := do(t, app, http.MethodPost, "/api/v1/profiles", map[string]any{
		"activityType":        "running",
		"preferredConditions": map[string]any{"tempMin": 80, "tempMax": 60},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, created := do(t, app, http.MethodPost, "/api/v1/profiles", map[string]any{
		"activityType": "running",
		"preferredConditions": map[string]any{
			"tempMin":          50,
			"tempMax":          75,
			"maxPrecipitation": 0,
			"preferredTime":    "morning",
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["profileId"].(string)
	require.NotEmpty(t, id)
	pc := created["preferredConditions"].(map[string]any)
	assert.Equal(t, 0.0, pc["maxPrecipitation"])

	resp, got := do(t, app, http.MethodGet, "/api/v1/profiles/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "running", got["activityType"])

	resp, patched := do(t, app, http.MethodPatch, "/api/v1/profiles/"+id, map[string]any{
		"preferredConditions": map[string]any{"tempMax": 80},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "running", patched["activityType"])
	pc = patched["preferredConditions"].(map[string]any)
	assert.Equal(t, 50.0, pc["tempMin"])
	assert.Equal(t, 80.0, pc["tempMax"])
	assert.Equal(t, 0.0, pc["maxPrecipitation"])
	assert.Equal(t, "morning", pc["preferredTime"])

	resp, _ = do(t, app, http.MethodPatch, "/api/v1/profiles/"+id, map[string]any{
		"preferredConditions": map[string]any{"tempMin": 90},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, got = do(t, app, http.MethodGet, "/api/v1/profiles/"+id, nil)
	assert.Equal(t, 50.0, got["preferredConditions"].(map[string]any)["tempMin"])

	resp, updated := do(t, app, http.MethodPut, "/api/v1/profiles/"+id, map[string]any{"activityType": "jogging"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, updated["profileId"])
	assert.Equal(t, "jogging", updated["activityType"])
	assert.Empty(t, updated["preferredConditions"], "PUT replaces the whole profile")

	resp, list := do(t, app, http.MethodGet, "/api/v1/profiles", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list["profiles"], 1)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/profiles/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/profiles/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPut, "/api/v1/profiles/"+id, map[string]any{"activityType": "jogging"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPatch, "/api/v1/profiles/"+id, map[string]any{"activityType": "jogging"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecommendations(t *testing.T) {
	app, profiles := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	_, err := profiles.Create(activity.Profile{
		ActivityType:        "swimming",
		PreferredConditions: activity.PreferredConditions{TempMin: activity.Float(80)},
	})
	require.NoError(t, err)
	_, err = profiles.Create(activity.Profile{
		ActivityType:        "hiking",
		PreferredConditions: activity.PreferredConditions{TempMin: activity.Float(55), TempMax: activity.Float(80)},
	})
	require.NoError(t, err)

	resp, body := do(t, app, http.MethodGet, "/api/v1/recommendations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	recs := body["recommendations"].([]any)
	require.Len(t, recs, 2)
	first := recs[0].(map[string]any)
	assert.Equal(t, "hiking", first["profile"].(map[string]any)["activityType"])
	assert.Equal(t, "ideal", first["rating"])
	analysis := first["analysis"].(map[string]any)
	assert.Equal(t, 100.0, analysis["score"])
	assert.Equal(t, true, analysis["ideal"])

	second := recs[1].(map[string]any)
	assert.Equal(t, 80.0, second["analysis"].(map[string]any)["score"])
}

func TestBestHoursAndDays(t *testing.T) {
	app, profiles := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	p, err := profiles.Create(activity.Profile{
		ActivityType:        "cycling",
		PreferredConditions: activity.PreferredConditions{MaxWindSpeed: activity.Float(12)},
	})
	require.NoError(t, err)

	resp, _ := do(t, app, http.MethodGet, "/api/v1/profiles/"+p.ProfileID+"/best-hours?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/profiles/missing/best-hours", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/v1/profiles/"+p.ProfileID+"/best-hours?limit=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["hours"], 5)

	resp, body = do(t, app, http.MethodGet, "/api/v1/profiles/"+p.ProfileID+"/best-days", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := body["plan"].(map[string]any)
	assert.Contains(t, plan, "bestDates")
	assert.Contains(t, plan, "riskDates")
}

func TestCommuteRouteLifecycle(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, _ := do(t, app, http.MethodPost, "/api/v1/routes", map[string]any{"routeName": "Work", "origin": "San Francisco"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, created := do(t, app, http.MethodPost, "/api/v1/routes", map[string]any{
		"routeName":   "Work",
		"origin":      "San Francisco",
		"destination": "los angeles",
		"waypoints":   []string{"", "chicago"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["routeId"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, []any{"chicago"}, created["waypoints"])

	resp, list := do(t, app, http.MethodGet, "/api/v1/routes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list["routes"], 1)

	resp, report := do(t, app, http.MethodGet, "/api/v1/routes/"+id+"/weather", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stops := report["stops"].([]any)
	require.Len(t, stops, 3)

	origin := stops[0].(map[string]any)
	assert.Equal(t, "origin", origin["role"])
	assert.Equal(t, "San Francisco, CA", origin["location"].(map[string]any)["name"])
	assert.Contains(t, origin["current"], "temperature")
	assert.Len(t, origin["hourly"], 3)
	assert.NotNil(t, origin["alerts"])

	dest := stops[2].(map[string]any)
	assert.Equal(t, "destination", dest["role"])
	assert.Equal(t, "Los Angeles, CA", dest["location"].(map[string]any)["name"])

	resp, report = do(t, app, http.MethodGet, "/api/v1/routes/"+id+"/weather?hours=6", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, report["stops"].([]any)[1].(map[string]any)["hourly"], 6)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/routes/"+id+"/weather?hours=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/routes/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, app, http.MethodGet, "/api/v1/routes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, http.MethodGet, "/api/v1/routes/"+id+"/weather", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommuteRouteWeatherErrors(t *testing.T) {
	app, _ := newTestApp(t, providers.NewMockSource(1, weather.UnitsImperial))

	resp, created := do(t, app, http.MethodPost, "/api/v1/routes", map[string]any{
		"routeName": "Island", "origin": "Miami", "destination": "Atlantis",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/v1/routes/"+created["routeId"].(string)+"/weather", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["message"], "Atlantis")

	app, _ = newTestApp(t, nil)
	resp, created = do(t, app, http.MethodPost, "/api/v1/routes", map[string]any{
		"routeName": "Work", "origin": "Miami", "destination": "Chicago",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/v1/routes/"+created["routeId"].(string)+"/weather", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, weather.ErrForecastUnavailable.Error(), body["message"])
}

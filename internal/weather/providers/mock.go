package providers

import (
	"context"
	"math/rand"
	"time"

	"github.com/i474232898/activity-weather/internal/weather"
)

const (
	mockBaseTempF      = 72
	mockBuckets        = 40
	mockBucketInterval = 3 * time.Hour
)

var mockCodes = []int{800, 801, 802, 804, 300, 500, 211}

// MockSource produces synthetic provider payloads so the service can run
// without an API key. Output is deterministic for a given seed and clock hour.
type MockSource struct {
	seed  int64
	units weather.Units
	now   func() time.Time
}

func NewMockSource(seed int64, units weather.Units) *MockSource {
	if units == "" {
		units = weather.UnitsImperial
	}
	return &MockSource{seed: seed, units: units, now: time.Now}
}

func (m *MockSource) Name() string {
	return "mock"
}

func (m *MockSource) FetchCurrent(ctx context.Context, loc weather.Location) (*weather.CurrentPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vis := 16093.4
	deg := 315.0
	return &weather.CurrentPayload{
		Dt:   m.now().Unix(),
		Name: loc.Name,
		Main: &weather.MainBlock{
			Temp:      m.temp(72),
			FeelsLike: m.temp(75),
			Humidity:  65,
			Pressure:  1013,
		},
		Wind:       &weather.WindBlock{Speed: m.wind(8), Deg: &deg},
		Visibility: &vis,
		Weather: []weather.ConditionBlock{
			{ID: 802, Main: "Clouds", Description: "Partly cloudy with good visibility", Icon: "02d"},
		},
	}, nil
}

func (m *MockSource) FetchForecast(ctx context.Context, loc weather.Location) (*weather.ForecastPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := m.now().UTC().Truncate(mockBucketInterval).Add(mockBucketInterval)
	r := rand.New(rand.NewSource(m.seed + start.Unix()))

	list := make([]weather.ForecastBucket, 0, mockBuckets)
	for i := 0; i < mockBuckets; i++ {
		ts := start.Add(time.Duration(i) * mockBucketInterval)
		code := mockCodes[r.Intn(len(mockCodes))]
		vis := 10000.0
		deg := r.Float64() * 360
		pop := r.Float64()

		b := weather.ForecastBucket{
			Dt:    ts.Unix(),
			DtTxt: ts.Format("2006-01-02 15:04:05"),
			Main: &weather.MainBlock{
				Temp:      m.temp(mockBaseTempF + r.Float64()*10 - 5),
				FeelsLike: m.temp(mockBaseTempF + r.Float64()*10 - 3),
				Humidity:  50 + r.Float64()*30,
				Pressure:  1005 + r.Float64()*15,
			},
			Wind:       &weather.WindBlock{Speed: m.wind(5 + r.Float64()*10), Deg: &deg},
			Visibility: &vis,
			Pop:        &pop,
			Weather:    []weather.ConditionBlock{{ID: code, Description: describe(code)}},
		}
		if code < 700 {
			b.Rain = &weather.PrecipBlock{ThreeH: r.Float64() * 3}
		}
		list = append(list, b)
	}

	return &weather.ForecastPayload{
		List: list,
		City: weather.CityBlock{Name: loc.Name},
	}, nil
}

// FetchUV lets the mock double as a UV source.
func (m *MockSource) FetchUV(ctx context.Context, loc weather.Location) (float64, error) {
	return 5, ctx.Err()
}

func (m *MockSource) temp(f float64) float64 {
	if m.units == weather.UnitsMetric {
		return (f - 32) * 5 / 9
	}
	return f
}

func (m *MockSource) wind(mph float64) float64 {
	if m.units == weather.UnitsMetric {
		return mph / 2.23694
	}
	return mph
}

func describe(code int) string {
	switch weather.MapCondition(code) {
	case weather.ConditionSunny:
		return "clear sky"
	case weather.ConditionCloudy:
		return "overcast clouds"
	case weather.ConditionDrizzle:
		return "light intensity drizzle"
	case weather.ConditionRain:
		return "light rain"
	case weather.ConditionThunderstorm:
		return "thunderstorm"
	default:
		return "scattered clouds"
	}
}

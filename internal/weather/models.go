package weather

import (
	"fmt"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionSunny        Condition = "sunny"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRain         Condition = "rain"
	ConditionDrizzle      Condition = "rain-light"
	ConditionSnow         Condition = "snow"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionAtmosphere   Condition = "atmosphere"
)

// Conditions lists every canonical condition.
var Conditions = []Condition{
	ConditionSunny,
	ConditionPartlyCloudy,
	ConditionCloudy,
	ConditionRain,
	ConditionDrizzle,
	ConditionSnow,
	ConditionThunderstorm,
	ConditionAtmosphere,
}

// Horizon identifies one of the forecast ranges the service fetches.
type Horizon string

const (
	HorizonCurrent Horizon = "current"
	HorizonHourly  Horizon = "hourly"
	HorizonDaily   Horizon = "daily"
)

// Location represents a logical place for which we track weather.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Lat, l.Lon)
}

// Observation is the canonical weather record produced by the normalizer.
// Temperatures are °F, wind mph, visibility miles, pressure inHg.
type Observation struct {
	Timestamp     time.Time `json:"timestamp"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feelsLike"`
	Humidity      int       `json:"humidity"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection string    `json:"windDirection,omitempty"`
	Visibility    float64   `json:"visibility"`
	UVIndex       float64   `json:"uvIndex"`
	Pressure      float64   `json:"pressure"`
	Condition     Condition `json:"condition"`
	Description   string    `json:"description"`

	// Set on hourly and daily records only.
	PrecipitationChance float64 `json:"precipitationChance"`

	// Daily records only.
	TempHigh *float64 `json:"tempHigh,omitempty"`
	TempLow  *float64 `json:"tempLow,omitempty"`
}

// Snapshot is a batch of observations for one horizon as fetched at a point in time.
type Snapshot struct {
	Location     Location      `json:"location"`
	Horizon      Horizon       `json:"horizon"`
	FetchedAt    time.Time     `json:"fetchedAt"`
	Source       string        `json:"source"`
	Observations []Observation `json:"observations"`
}

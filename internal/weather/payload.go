package weather

// Provider payloads follow the OpenWeather 2.5 response shape. Blocks that may be
// missing from a response are pointers so the normalizer can tell absent from zero.

// CurrentPayload is the raw response of the current-conditions endpoint.
type CurrentPayload struct {
	Dt         int64            `json:"dt"`
	Timezone   int              `json:"timezone"`
	Name       string           `json:"name"`
	Main       *MainBlock       `json:"main"`
	Wind       *WindBlock       `json:"wind"`
	Visibility *float64         `json:"visibility"`
	Weather    []ConditionBlock `json:"weather"`
	Rain       *PrecipBlock     `json:"rain"`
	Snow       *PrecipBlock     `json:"snow"`
}

// ForecastPayload is the raw response of the 3-hour bucket forecast endpoint.
type ForecastPayload struct {
	List []ForecastBucket `json:"list"`
	City CityBlock        `json:"city"`
}

// ForecastBucket is one 3-hour slot of a forecast.
type ForecastBucket struct {
	Dt         int64            `json:"dt"`
	DtTxt      string           `json:"dt_txt"`
	Main       *MainBlock       `json:"main"`
	Wind       *WindBlock       `json:"wind"`
	Visibility *float64         `json:"visibility"`
	Pop        *float64         `json:"pop"`
	Weather    []ConditionBlock `json:"weather"`
	Rain       *PrecipBlock     `json:"rain"`
	Snow       *PrecipBlock     `json:"snow"`
}

type MainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type WindBlock struct {
	Speed float64  `json:"speed"`
	Deg   *float64 `json:"deg"`
}

type ConditionBlock struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// PrecipBlock carries accumulated precipitation in millimetres.
type PrecipBlock struct {
	OneH   float64 `json:"1h"`
	ThreeH float64 `json:"3h"`
}

type CityBlock struct {
	Name     string `json:"name"`
	Timezone int    `json:"timezone"`
}

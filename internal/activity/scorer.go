package activity

import (
	"encoding/json"

	"github.com/i474232898/activity-weather/internal/weather"
)

const (
	maxScore        = 100
	idealScore      = 80
	acceptableScore = 60
)

// Result is the suitability of one observation for one profile.
type Result struct {
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Ideal reports whether the score is at least 80.
func (r Result) Ideal() bool { return r.Score >= idealScore }

// Acceptable reports whether the score is at least 60.
func (r Result) Acceptable() bool { return r.Score >= acceptableScore }

func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		plain
		Ideal      bool `json:"ideal"`
		Acceptable bool `json:"acceptable"`
	}{plain(r), r.Ideal(), r.Acceptable()})
}

// rule is one penalised constraint. violated is only consulted when the
// constraint is set on the profile.
type rule struct {
	bound    func(PreferredConditions) *float64
	violated func(obs weather.Observation, bound float64) bool
	penalty  int
	message  string
}

// Evaluation order is significant: recommendations keep this order.
var rules = []rule{
	{
		bound:    func(p PreferredConditions) *float64 { return p.TempMin },
		violated: func(o weather.Observation, b float64) bool { return o.Temperature < b },
		penalty:  20,
		message:  "Temperature is below your preferred range",
	},
	{
		bound:    func(p PreferredConditions) *float64 { return p.TempMax },
		violated: func(o weather.Observation, b float64) bool { return o.Temperature > b },
		penalty:  20,
		message:  "Temperature is above your preferred range",
	},
	{
		bound:    func(p PreferredConditions) *float64 { return p.MaxWindSpeed },
		violated: func(o weather.Observation, b float64) bool { return o.WindSpeed > b },
		penalty:  15,
		message:  "Wind speed is higher than preferred",
	},
	{
		bound:    func(p PreferredConditions) *float64 { return p.MaxPrecipitation },
		violated: func(o weather.Observation, b float64) bool { return o.PrecipitationChance > b },
		penalty:  25,
		message:  "Precipitation chance is higher than preferred",
	},
	{
		bound:    func(p PreferredConditions) *float64 { return p.MaxUV },
		violated: func(o weather.Observation, b float64) bool { return o.UVIndex > b },
		penalty:  10,
		message:  "UV index is higher than preferred",
	},
}

// Score rates how well obs matches the profile's preferred conditions.
// It starts at 100 and subtracts a fixed penalty per violated constraint,
// never going below 0.
func Score(obs weather.Observation, profile Profile) Result {
	score := maxScore
	recommendations := []string{}

	for _, r := range rules {
		bound := r.bound(profile.PreferredConditions)
		if bound == nil || !r.violated(obs, *bound) {
			continue
		}
		score -= r.penalty
		recommendations = append(recommendations, r.message)
	}

	if score < 0 {
		score = 0
	}
	return Result{Score: score, Recommendations: recommendations}
}

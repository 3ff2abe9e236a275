package activity

import (
	"sort"

	"github.com/i474232898/activity-weather/internal/weather"
)

// Rating is the display label for a score.
type Rating string

const (
	RatingIdeal Rating = "ideal"
	RatingGood  Rating = "good"
	RatingPoor  Rating = "poor"
)

// Rate labels a score: ideal from 80, good from 60, poor below.
func Rate(score int) Rating {
	switch {
	case score >= idealScore:
		return RatingIdeal
	case score >= acceptableScore:
		return RatingGood
	default:
		return RatingPoor
	}
}

// Recommendation pairs a profile with its result against one observation.
type Recommendation struct {
	Profile Profile `json:"profile"`
	Result  Result  `json:"analysis"`
	Rating  Rating  `json:"rating"`
}

// Rank scores every profile against obs, best first. Ties keep the input order.
func Rank(obs weather.Observation, profiles []Profile) []Recommendation {
	out := make([]Recommendation, 0, len(profiles))
	for _, p := range profiles {
		res := Score(obs, p)
		out = append(out, Recommendation{Profile: p, Result: res, Rating: Rate(res.Score)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Score > out[j].Result.Score
	})
	return out
}

// ScoredObservation is a forecast entry with its suitability for a profile.
type ScoredObservation struct {
	Observation weather.Observation `json:"observation"`
	Result      Result              `json:"analysis"`
	Rating      Rating              `json:"rating"`
}

func scoreAll(obs []weather.Observation, profile Profile, keep func(weather.Observation) bool) []ScoredObservation {
	out := make([]ScoredObservation, 0, len(obs))
	for _, o := range obs {
		if keep != nil && !keep(o) {
			continue
		}
		res := Score(o, profile)
		out = append(out, ScoredObservation{Observation: o, Result: res, Rating: Rate(res.Score)})
	}
	return out
}

// BestHours scores the hourly observations that fall inside the profile's
// preferred time of day and returns the best limit of them. Hours are taken
// in the observation's own zone. Equal scores stay chronological.
func BestHours(hourly []weather.Observation, profile Profile, limit int) []ScoredObservation {
	start, end := profile.PreferredConditions.PreferredTime.hourWindow()
	scored := scoreAll(hourly, profile, func(o weather.Observation) bool {
		h := o.Timestamp.Hour()
		return h >= start && h < end
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Result.Score > scored[j].Result.Score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// DayPlan splits a daily forecast into days worth planning around and risky ones.
type DayPlan struct {
	Best  []ScoredObservation `json:"bestDates"`
	Risky []ScoredObservation `json:"riskDates"`
}

// BestDays scores each day against the profile. Acceptable days are returned
// best first; the rest stay in chronological order.
func BestDays(daily []weather.Observation, profile Profile) DayPlan {
	plan := DayPlan{
		Best:  []ScoredObservation{},
		Risky: []ScoredObservation{},
	}
	for _, s := range scoreAll(daily, profile, nil) {
		if s.Result.Acceptable() {
			plan.Best = append(plan.Best, s)
		} else {
			plan.Risky = append(plan.Risky, s)
		}
	}
	sort.SliceStable(plan.Best, func(i, j int) bool {
		return plan.Best[i].Result.Score > plan.Best[j].Result.Score
	})
	return plan
}

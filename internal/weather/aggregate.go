package weather

import (
	"math"
	"time"
)

// aggregateDay folds one date's buckets into a single daily observation.
// The condition comes from the earliest bucket; precipitation is a percentage
// approximated from accumulated millimetres and capped at 100.
func (n *Normalizer) aggregateDay(date string, zone *time.Location, buckets []datedBucket) Observation {
	var first Observation
	high := math.Inf(-1)
	low := math.Inf(1)
	var sumTemp, sumFeels, sumWind, sumHumidity, sumPressure, sumVis, precipMM float64
	for i, b := range buckets {
		obs := n.bucketObservation(b)
		if i == 0 {
			first = obs
		}
		high = math.Max(high, obs.Temperature)
		low = math.Min(low, obs.Temperature)
		sumTemp += obs.Temperature
		sumFeels += obs.FeelsLike
		sumWind += obs.WindSpeed
		sumHumidity += float64(obs.Humidity)
		sumPressure += obs.Pressure
		sumVis += obs.Visibility
		precipMM += bucketPrecipMM(b.ForecastBucket)
	}

	count := float64(len(buckets))
	day, err := time.ParseInLocation(dateLayout, date, zone)
	if err != nil {
		day = first.Timestamp
	}

	return Observation{
		Timestamp:           day,
		Temperature:         sumTemp / count,
		FeelsLike:           sumFeels / count,
		Humidity:            int(math.Round(sumHumidity / count)),
		WindSpeed:           sumWind / count,
		WindDirection:       first.WindDirection,
		Visibility:          sumVis / count,
		Pressure:            sumPressure / count,
		Condition:           first.Condition,
		Description:         first.Description,
		PrecipitationChance: math.Min(100, precipMM*100/24),
		TempHigh:            &high,
		TempLow:             &low,
	}
}

func bucketPrecipMM(b ForecastBucket) float64 {
	var mm float64
	if b.Rain != nil {
		mm += b.Rain.ThreeH
	}
	if b.Snow != nil {
		mm += b.Snow.ThreeH
	}
	return mm
}

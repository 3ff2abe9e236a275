package weather

import "math"

const (
	metersPerMile = 1609.34
	inHgPerHpa    = 0.02953
	mphPerMS      = 2.23694
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// MapCondition buckets a provider weather code into a canonical condition.
// Codes outside every known range fall back to partly-cloudy.
func MapCondition(code int) Condition {
	switch {
	case code >= 200 && code < 300:
		return ConditionThunderstorm
	case code >= 300 && code < 400:
		return ConditionDrizzle
	case code >= 500 && code < 600:
		return ConditionRain
	case code >= 600 && code < 700:
		return ConditionSnow
	case code >= 700 && code < 800:
		return ConditionAtmosphere
	case code == 800:
		return ConditionSunny
	case code == 801 || code == 802:
		return ConditionPartlyCloudy
	case code == 803 || code == 804:
		return ConditionCloudy
	default:
		return ConditionPartlyCloudy
	}
}

// CompassPoint converts a bearing in degrees to a 16-point compass label.
func CompassPoint(degrees float64) string {
	idx := int(math.Round(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// MetersToMiles converts a visibility distance.
func MetersToMiles(m float64) float64 {
	return m / metersPerMile
}

// HpaToInHg converts a pressure reading.
func HpaToInHg(hpa float64) float64 {
	return hpa * inHgPerHpa
}

// CelsiusToFahrenheit converts a temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// MSToMPH converts a wind speed.
func MSToMPH(ms float64) float64 {
	return ms * mphPerMS
}

package weather

import "fmt"

// AlertLevel grades an advisory.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

const (
	highUVThreshold      = 8
	highWindThresholdMPH = 25
	lowVisibilityMiles   = 1
)

// Alert is an advisory derived from a single observation.
type Alert struct {
	Level   AlertLevel `json:"type"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// Alerts derives advisories for an observation.
func Alerts(obs Observation) []Alert {
	var alerts []Alert
	if obs.UVIndex >= highUVThreshold {
		alerts = append(alerts, Alert{
			Level:   AlertInfo,
			Title:   "UV Index High",
			Message: fmt.Sprintf("UV index is %.0f. Consider sun protection for outdoor activities.", obs.UVIndex),
		})
	}
	if obs.WindSpeed >= highWindThresholdMPH {
		alerts = append(alerts, Alert{
			Level:   AlertWarning,
			Title:   "High Wind",
			Message: fmt.Sprintf("Winds around %.0f mph%s.", obs.WindSpeed, fromDirection(obs.WindDirection)),
		})
	}
	if obs.Condition == ConditionThunderstorm {
		alerts = append(alerts, Alert{
			Level:   AlertDanger,
			Title:   "Thunderstorm",
			Message: "Thunderstorms in the area. Avoid exposed outdoor activities.",
		})
	}
	// Zero means the provider omitted visibility.
	if obs.Visibility > 0 && obs.Visibility < lowVisibilityMiles {
		alerts = append(alerts, Alert{
			Level:   AlertWarning,
			Title:   "Low Visibility",
			Message: fmt.Sprintf("Visibility is down to %.1f miles.", obs.Visibility),
		})
	}
	return alerts
}

func fromDirection(dir string) string {
	if dir == "" {
		return ""
	}
	return " from the " + dir
}

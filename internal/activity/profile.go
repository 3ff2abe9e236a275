package activity

// PreferredTime is the part of the day an activity is usually done in.
type PreferredTime string

const (
	TimeAny       PreferredTime = "any"
	TimeMorning   PreferredTime = "morning"
	TimeAfternoon PreferredTime = "afternoon"
	TimeEvening   PreferredTime = "evening"
)

// hourWindow returns the [start, end) local hours covered by t.
func (t PreferredTime) hourWindow() (int, int) {
	switch t {
	case TimeMorning:
		return 6, 12
	case TimeAfternoon:
		return 12, 17
	case TimeEvening:
		return 17, 22
	default:
		return 0, 24
	}
}

// PreferredConditions is the weather envelope a user wants for an activity.
// A nil bound is unconstrained; zero is a real, enforced bound.
type PreferredConditions struct {
	TempMin          *float64      `json:"tempMin,omitempty" yaml:"tempMin"`
	TempMax          *float64      `json:"tempMax,omitempty" yaml:"tempMax"`
	MaxWindSpeed     *float64      `json:"maxWindSpeed,omitempty" yaml:"maxWindSpeed" validate:"omitempty,gte=0"`
	MaxPrecipitation *float64      `json:"maxPrecipitation,omitempty" yaml:"maxPrecipitation" validate:"omitempty,gte=0,lte=100"`
	MaxUV            *float64      `json:"maxUV,omitempty" yaml:"maxUV" validate:"omitempty,gte=0"`
	PreferredTime    PreferredTime `json:"preferredTime,omitempty" yaml:"preferredTime" validate:"omitempty,oneof=any morning afternoon evening"`
}

// Merge returns c with every bound set in o applied over it.
// Unset fields in o leave c unchanged.
func (c PreferredConditions) Merge(o PreferredConditions) PreferredConditions {
	for _, f := range []struct{ dst, src **float64 }{
		{&c.TempMin, &o.TempMin},
		{&c.TempMax, &o.TempMax},
		{&c.MaxWindSpeed, &o.MaxWindSpeed},
		{&c.MaxPrecipitation, &o.MaxPrecipitation},
		{&c.MaxUV, &o.MaxUV},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if o.PreferredTime != "" {
		c.PreferredTime = o.PreferredTime
	}
	return c
}

// Profile is a user-defined activity with its preferred conditions.
type Profile struct {
	ProfileID           string              `json:"profileId" yaml:"profileId"`
	ActivityType        string              `json:"activityType" yaml:"activityType" validate:"required,max=64"`
	PreferredConditions PreferredConditions `json:"preferredConditions" yaml:"preferredConditions"`
}

// Float returns a pointer to v, for building PreferredConditions literals.
func Float(v float64) *float64 {
	return &v
}

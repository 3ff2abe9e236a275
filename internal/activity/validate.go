package activity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid activity profile")

var validate = validator.New()

// ValidateProfile checks field bounds and that tempMin does not exceed tempMax.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.ActivityType) == "" {
		return fmt.Errorf("%w: activityType is required", ErrInvalidProfile)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	pc := p.PreferredConditions
	if pc.TempMin != nil && pc.TempMax != nil && *pc.TempMin > *pc.TempMax {
		return fmt.Errorf("%w: tempMin %.1f is above tempMax %.1f", ErrInvalidProfile, *pc.TempMin, *pc.TempMax)
	}
	return nil
}

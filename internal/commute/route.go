package commute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRoute is returned when a route fails validation.
var ErrInvalidRoute = errors.New("invalid commute route")

var validate = validator.New()

// Route is a saved trip between two free-text places, optionally via
// intermediate stops.
type Route struct {
	RouteID     string   `json:"routeId" yaml:"routeId"`
	RouteName   string   `json:"routeName" yaml:"routeName" validate:"required,max=80"`
	Origin      string   `json:"origin" yaml:"origin" validate:"required,max=120"`
	Destination string   `json:"destination" yaml:"destination" validate:"required,max=120"`
	Waypoints   []string `json:"waypoints" yaml:"waypoints" validate:"max=8,dive,required,max=120"`
}

// Clean trims every field and drops blank waypoints.
func (r Route) Clean() Route {
	r.RouteName = strings.TrimSpace(r.RouteName)
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)

	waypoints := make([]string, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		if w = strings.TrimSpace(w); w != "" {
			waypoints = append(waypoints, w)
		}
	}
	r.Waypoints = waypoints
	return r
}

// ValidateRoute checks that r names both ends of the trip.
func ValidateRoute(r Route) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRoute, err)
	}
	return nil
}

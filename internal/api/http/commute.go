package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/activity-weather/internal/commute"
	"github.com/i474232898/activity-weather/internal/store"
)

// routeRequest is the body accepted when saving a route.
type routeRequest struct {
	RouteName   string   `json:"routeName"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Waypoints   []string `json:"waypoints"`
}

func (r routeRequest) toRoute() commute.Route {
	return commute.Route{
		RouteName:   r.RouteName,
		Origin:      r.Origin,
		Destination: r.Destination,
		Waypoints:   r.Waypoints,
	}
}

func registerCommuteRoutes(router fiber.Router, deps Deps) {
	planner := commute.NewPlanner(deps.Resolver, deps.Weather, deps.Logger)
	routes := router.Group("/routes")

	routes.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"routes": deps.Routes.List()})
	})

	routes.Post("/", func(c *fiber.Ctx) error {
		var req routeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid route body")
		}
		created, err := deps.Routes.Create(req.toRoute())
		if err != nil {
			return routeError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	routes.Get("/:id", func(c *fiber.Ctx) error {
		r, err := deps.Routes.Get(c.Params("id"))
		if err != nil {
			return routeError(err)
		}
		return c.JSON(r)
	})

	routes.Delete("/:id", func(c *fiber.Ctx) error {
		if err := deps.Routes.Delete(c.Params("id")); err != nil {
			return routeError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	routes.Get("/:id/weather", func(c *fiber.Ctx) error {
		r, err := deps.Routes.Get(c.Params("id"))
		if err != nil {
			return routeError(err)
		}
		hours := c.QueryInt("hours", commute.DefaultHours)
		if hours < 1 || hours > 24 {
			return fiber.NewError(fiber.StatusBadRequest, "hours must be between 1 and 24")
		}
		report, err := planner.Weather(c.UserContext(), r, hours)
		if err != nil {
			return routeError(err)
		}
		return c.JSON(report)
	})
}

func routeError(err error) error {
	switch {
	case errors.Is(err, store.ErrRouteNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, commute.ErrInvalidRoute):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, commute.ErrUnresolvedPlace):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, commute.ErrLookupFailed):
		return fiber.NewError(fiber.StatusBadGateway, "location search failed")
	default:
		return weatherError(err)
	}
}

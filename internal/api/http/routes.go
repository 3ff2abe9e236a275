package httpapi

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/activity-weather/internal/activity"
	"github.com/i474232898/activity-weather/internal/geo"
	"github.com/i474232898/activity-weather/internal/store"
	"github.com/i474232898/activity-weather/internal/weather"
)

var validate = validator.New()

// Deps are the collaborators the HTTP handlers need.
type Deps struct {
	Weather         *weather.Service
	Profiles        *store.ProfileStore
	Routes          *store.RouteStore
	Resolver        *geo.Resolver
	DefaultLocation weather.Location
	Logger          *slog.Logger
}

// ErrorHandler renders every handler error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		obs, err := deps.Weather.Current(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{"location": loc, "current": obs})
	})

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		hours, err := deps.Weather.Hourly(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{"location": loc, "hourly": hours})
	})

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		days, err := deps.Weather.Daily(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{"location": loc, "daily": days})
	})

	v1.Get("/weather/alerts", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		obs, err := deps.Weather.Current(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		alerts := weather.Alerts(obs)
		if alerts == nil {
			alerts = []weather.Alert{}
		}
		return c.JSON(fiber.Map{"location": loc, "alerts": alerts})
	})

	// Forces a refetch of every horizon, bypassing the cache.
	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		if err := deps.Weather.Warm(c.UserContext(), loc); err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{"location": loc, "refreshed": true})
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		history, err := deps.Weather.History(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}
		return c.JSON(fiber.Map{
			"location":     loc,
			"from":         req.From,
			"to":           req.To,
			"observations": history,
		})
	})

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		results, err := deps.Resolver.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "location search failed")
		}
		return c.JSON(fiber.Map{"results": results})
	})

	v1.Get("/recommendations", func(c *fiber.Ctx) error {
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		obs, err := deps.Weather.Current(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{
			"location":        loc,
			"current":         obs,
			"recommendations": activity.Rank(obs, deps.Profiles.List()),
		})
	})

	registerProfileRoutes(v1, deps)
	registerCommuteRoutes(v1, deps)
}

// weatherError maps service errors onto HTTP status codes.
func weatherError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
	case errors.Is(err, weather.ErrForecastUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, weather.ErrForecastUnavailable.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// location reads lat/lon from the query, falling back to the default location
// when both are absent.
func (d Deps) location(c *fiber.Ctx) (weather.Location, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return d.DefaultLocation, nil
	}
	if latStr == "" || lonStr == "" {
		return weather.Location{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon must be provided together")
	}

	var q locationQuery
	var err error
	if q.Lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		return weather.Location{}, fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	if q.Lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return weather.Location{}, fiber.NewError(fiber.StatusBadRequest, "invalid lon")
	}
	if err := validate.Struct(q); err != nil {
		return weather.Location{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return weather.Location{Name: c.Query("name"), Lat: q.Lat, Lon: q.Lon}, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

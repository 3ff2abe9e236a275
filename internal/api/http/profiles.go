package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/activity-weather/internal/activity"
	"github.com/i474232898/activity-weather/internal/store"
)

const defaultBestHours = 3

// profileRequest is the body accepted by create and update.
type profileRequest struct {
	ActivityType        string                       `json:"activityType"`
	PreferredConditions activity.PreferredConditions `json:"preferredConditions"`
}

func (r profileRequest) toProfile() activity.Profile {
	return activity.Profile{
		ActivityType:        r.ActivityType,
		PreferredConditions: r.PreferredConditions,
	}
}

// profilePatch is the body accepted by PATCH; omitted fields keep their value.
type profilePatch struct {
	ActivityType        *string                      `json:"activityType"`
	PreferredConditions activity.PreferredConditions `json:"preferredConditions"`
}

func (r profilePatch) apply(p activity.Profile) activity.Profile {
	if r.ActivityType != nil {
		p.ActivityType = *r.ActivityType
	}
	p.PreferredConditions = p.PreferredConditions.Merge(r.PreferredConditions)
	return p
}

func registerProfileRoutes(router fiber.Router, deps Deps) {
	profiles := router.Group("/profiles")

	profiles.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"profiles": deps.Profiles.List()})
	})

	profiles.Post("/", func(c *fiber.Ctx) error {
		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid profile body")
		}
		created, err := deps.Profiles.Create(req.toProfile())
		if err != nil {
			return profileError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	profiles.Get("/:id", func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Get(c.Params("id"))
		if err != nil {
			return profileError(err)
		}
		return c.JSON(p)
	})

	// PUT replaces the whole profile; PATCH merges.
	profiles.Put("/:id", func(c *fiber.Ctx) error {
		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid profile body")
		}
		updated, err := deps.Profiles.Update(c.Params("id"), req.toProfile())
		if err != nil {
			return profileError(err)
		}
		return c.JSON(updated)
	})

	profiles.Patch("/:id", func(c *fiber.Ctx) error {
		var req profilePatch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid profile body")
		}
		updated, err := deps.Profiles.Patch(c.Params("id"), req.apply)
		if err != nil {
			return profileError(err)
		}
		return c.JSON(updated)
	})

	profiles.Delete("/:id", func(c *fiber.Ctx) error {
		if err := deps.Profiles.Delete(c.Params("id")); err != nil {
			return profileError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	profiles.Get("/:id/best-hours", func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Get(c.Params("id"))
		if err != nil {
			return profileError(err)
		}
		limit := c.QueryInt("limit", defaultBestHours)
		if limit < 1 || limit > 24 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 24")
		}
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		hours, err := deps.Weather.Hourly(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{
			"profile": p,
			"hours":   activity.BestHours(hours, p, limit),
		})
	})

	profiles.Get("/:id/best-days", func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Get(c.Params("id"))
		if err != nil {
			return profileError(err)
		}
		loc, err := deps.location(c)
		if err != nil {
			return err
		}
		days, err := deps.Weather.Daily(c.UserContext(), loc)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(fiber.Map{
			"profile": p,
			"plan":    activity.BestDays(days, p),
		})
	})
}

func profileError(err error) error {
	switch {
	case errors.Is(err, store.ErrProfileNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, activity.ErrInvalidProfile):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "profile operation failed")
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/activity-weather/internal/api/http"
	"github.com/i474232898/activity-weather/internal/config"
	"github.com/i474232898/activity-weather/internal/geo"
	"github.com/i474232898/activity-weather/internal/scheduler"
	"github.com/i474232898/activity-weather/internal/store"
	"github.com/i474232898/activity-weather/internal/weather"
	"github.com/i474232898/activity-weather/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg := config.NewLogger(cfg.LogLevel)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge, cfg.StoreMaxLocations)

	units := weather.Units(cfg.Units)
	source, uv, err := providers.NewSource(httpClient, providers.Config{
		Mode:      providers.Mode(cfg.ProviderMode),
		APIKey:    cfg.OpenWeatherAPIKey,
		BaseURL:   cfg.OpenWeatherBaseURL,
		Units:     units,
		UVEnabled: cfg.UVEnabled,
		UVBaseURL: cfg.OpenMeteoBaseURL,
		Seed:      cfg.MockSeed,
	})
	if err != nil {
		log.Fatalf("failed to build weather source: %v", err)
	}
	lg.Info("weather source ready", "source", source.Name(), "units", units, "uv", uv != nil)

	normalizer := weather.NewNormalizer(weather.NormalizerConfig{Units: units}, lg)
	service := weather.NewService(weather.Config{
		CurrentTTL: cfg.CurrentRefresh,
		HourlyTTL:  cfg.HourlyRefresh,
		DailyTTL:   cfg.DailyRefresh,
	}, memStore, source, uv, normalizer, lg)

	profiles := store.NewProfileStore()
	if cfg.ProfilesFile != "" {
		n, err := store.SeedProfiles(profiles, cfg.ProfilesFile)
		if err != nil {
			log.Fatalf("failed to seed profiles: %v", err)
		}
		lg.Info("seeded activity profiles", "count", n, "file", cfg.ProfilesFile)
	}

	// Scheduler that keeps every horizon fresh for configured locations.
	sched := scheduler.New(cfg.Locations, scheduler.Intervals{
		Current: cfg.CurrentRefresh,
		Hourly:  cfg.HourlyRefresh,
		Daily:   cfg.DailyRefresh,
	}, service, lg)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "activity-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "activity-weather",
			"source":  source.Name(),
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather:         service,
		Profiles:        profiles,
		Routes:          store.NewRouteStore(),
		Resolver:        geo.NewResolver(cfg.GeocoderAPIKey, lg),
		DefaultLocation: cfg.DefaultLocation(),
		Logger:          lg,
	})

	go func() {
		lg.Info("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("error during shutdown", "error", err)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "github.com/alissonpef/Hydraulic-Monitoring-System/internal/api/http"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/config"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/geo"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/metrics"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/scheduler"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank/feeds"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Shared HTTP client for the Firebase feed.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	feed, err := feeds.New(cfg.Feed, httpClient)
	if err != nil {
		log.Fatal().Err(err).Str("feed", cfg.Feed.Type).Msg("failed to build feed")
	}

	rig := tank.DefaultRig()
	rig.BuoyancyRadiusM = cfg.BuoyancyRadius

	m := metrics.New()
	opts := []tank.Option{tank.WithObserver(m)}
	if cfg.GeocoderAPIKey != "" {
		opts = append(opts, tank.WithLocator(geo.NewLocator(cfg.GeocoderAPIKey)))
		log.Info().Msg("reverse geocoding enabled")
	}
	service := tank.NewService(rig, cfg.Feed.Marker, opts...)

	app := fiber.New(fiber.Config{
		AppName:               "hydro-monitor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(m.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "hydro-monitor",
			"feed":    feed.Name(),
			"marker":  service.Marker(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpapi.RegisterRoutes(app, service)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := service.Run(ctx, feed, scheduler.New(tank.TickPeriod)); err != nil {
			log.Error().Err(err).Msg("monitoring stopped with error")
			stop()
		}
	}()

	go func() {
		log.Info().Str("port", cfg.Port).Str("feed", feed.Name()).Str("marker", cfg.Feed.Marker).Msg("http server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	<-runDone
	log.Info().Msg("stopped")
}

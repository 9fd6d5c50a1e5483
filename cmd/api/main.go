package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rippl-backend/internal/analytics"
	"rippl-backend/internal/app"
	"rippl-backend/internal/config"
	"rippl-backend/internal/db"
	"rippl-backend/internal/logging"
	"rippl-backend/internal/seed"
	"rippl-backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rippl-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := logging.SetupOTelSDK(ctx, os.Stdout, cfg.MetricInterval)
	if err != nil {
		return fmt.Errorf("failed to setup OTel SDK: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "OTel shutdown error: %v\n", err)
		}
	}()

	if cfg.UsingDevSecret() {
		logging.Warn(ctx, "JWT_SECRET not set, using development secret")
	}

	data, err := seed.Load()
	if err != nil {
		return err
	}
	state := app.New(data)
	logging.Info(ctx, "seed loaded", "tasks", len(data.Tasks), "volunteer", data.User.Name)

	var events *analytics.Recorder
	if cfg.AnalyticsEnabled {
		database, err := db.Connect(ctx, cfg.DBDriver, cfg.ConnString())
		if err != nil {
			// analytics is optional; the marketplace keeps running without it
			logging.Warn(ctx, "analytics database unavailable", "driver", cfg.DBDriver, "err", err)
		} else {
			defer database.Close()
			events = analytics.NewRecorder(database, cfg.DBDriver)
			if err := events.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("analytics schema: %w", err)
			}
			logging.Info(ctx, "analytics connected", "driver", cfg.DBDriver)
		}
	}

	srv := server.New(state, server.Options{
		Addr:        cfg.HTTPAddr,
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Events:      events,
	})
	return srv.Run(ctx)
}

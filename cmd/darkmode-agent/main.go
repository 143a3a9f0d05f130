package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mimimiku778/auto-darkmode/internal/appearance"
	"github.com/mimimiku778/auto-darkmode/pkg/config"
	"github.com/mimimiku778/auto-darkmode/pkg/mqtt"
)

// runTimeout bounds a single evaluation cycle, gsettings and MQTT included.
const runTimeout = 30 * time.Second

func main() {
	// Load configuration with hierarchy: defaults → location file → env →
	// flags. Env and flags run first so the file only fills what they left
	// unset.
	cfg := config.NewConfig()
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()
	if err := cfg.LoadLocationFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging
	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Starting darkmode agent",
		"service_name", cfg.ServiceName,
		"latitude", cfg.Latitude,
		"longitude", cfg.Longitude,
		"publish_events", cfg.PublishEvents,
		"log_level", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, runTimeout)
	defer timeoutCancel()

	store := appearance.NewGSettings(logger)

	var publisher mqtt.Client
	if cfg.PublishEvents {
		publisher = mqtt.NewClient(cfg, logger)
		if err := publisher.Connect(ctx); err != nil {
			// A broker outage should not block the mode switch itself.
			logger.Warn("MQTT unavailable, continuing without event publishing", "error", err)
			publisher = nil
		} else {
			defer publisher.Disconnect()
		}
	}

	agent := appearance.NewAgent(cfg, store, publisher, logger)
	if err := agent.Run(ctx); err != nil {
		logger.Error("Evaluation cycle failed", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-backend/internal/api/http"
	"github.com/i474232898/weather-backend/internal/config"
	"github.com/i474232898/weather-backend/internal/scheduler"
	"github.com/i474232898/weather-backend/internal/weather"
	"github.com/i474232898/weather-backend/internal/weather/providers"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "weather-backend",
		Short:         "Solar-aware weather forecast backend",
		Long:          "Serves a 7-day forecast with estimated solar energy and a weekly summary built from Open-Meteo data.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer()
			},
		},
		newForecastCmd(),
		newSummaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// logOutput receives the application's structured logs.
var logOutput io.Writer = os.Stdout

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads configuration, installs the default logger and builds the service.
func setup() (*config.AppConfig, weather.Provider, *weather.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	slog.SetDefault(newLogger(logOutput, cfg.LogLevel))

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenMeteoProvider(httpClient, cfg.OpenMeteoBaseURL, providers.DefaultBreakerConfig)
	return cfg, provider, weather.NewService(provider, cfg.Params()), nil
}

func runServer() error {
	cfg, provider, service, err := setup()
	if err != nil {
		return err
	}

	var probe httpapi.ProbeReporter
	if cfg.ProbeInterval > 0 {
		sched := scheduler.New(provider, cfg.Params(), cfg.ProbeLatitude, cfg.ProbeLongitude, cfg.ProbeInterval, cfg.HTTPTimeout)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
		probe = sched
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-backend",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}?${queryParams}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,OPTIONS",
	}))

	httpapi.RegisterRoutes(app, service, probe)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("server starting", "port", cfg.Port, "upstream", cfg.OpenMeteoBaseURL)
	return serve(ctx, app, ":"+cfg.Port)
}

// serve listens on addr until ctx is cancelled or the listener fails.
func serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		slog.Error("fiber server stopped", "err", err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "err", err)
	}
	slog.Info("server stopped")
	return nil
}

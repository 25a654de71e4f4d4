package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-backend/internal/common"
	"github.com/i474232898/weather-backend/internal/weather"
)

const (
	defaultDailyParameters  = "weather_code,temperature_2m_min,temperature_2m_max,sunshine_duration,rain_sum"
	defaultHourlyParameters = "surface_pressure"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Upstream Open-Meteo settings.
	OpenMeteoBaseURL string `validate:"required,url"`
	DailyParameters  string `validate:"required"`
	HourlyParameters string
	Timezone         string `validate:"required"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// AllowedOrigins lists the hosts allowed by CORS.
	AllowedOrigins []string

	// ProbeInterval enables the upstream probe when > 0.
	ProbeInterval  time.Duration `validate:"gte=0"`
	ProbeLatitude  float64       `validate:"latitude"`
	ProbeLongitude float64       `validate:"longitude"`

	LogLevel slog.Level
}

// Params returns the upstream selectors for the weather service.
func (c *AppConfig) Params() weather.Params {
	return weather.Params{
		Daily:    c.DailyParameters,
		Hourly:   c.HourlyParameters,
		Timezone: c.Timezone,
	}
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:             getenvDefault("PORT", "8080"),
		OpenMeteoBaseURL: getenvDefault("OPEN_METEO_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		DailyParameters:  common.NormalizeList(getenvDefault("OPEN_METEO_DAILY_PARAMETERS", defaultDailyParameters)),
		HourlyParameters: common.NormalizeList(getenvDefault("OPEN_METEO_HOURLY_PARAMETERS", defaultHourlyParameters)),
		Timezone:         getenvDefault("OPEN_METEO_TIMEZONE", "auto"),
		AllowedOrigins:   common.SplitList(getenvDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "0s"); err != nil {
		return nil, err
	}
	if cfg.ProbeLatitude, err = getenvFloat("PROBE_LATITUDE", 52.2298); err != nil {
		return nil, err
	}
	if cfg.ProbeLongitude, err = getenvFloat("PROBE_LONGITUDE", 21.0118); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLevel(getenvDefault("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

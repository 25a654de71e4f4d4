package weather

import (
	"context"
	"fmt"
	"log/slog"
)

// Params holds the upstream selectors used for every query.
type Params struct {
	Daily    string
	Hourly   string
	Timezone string
}

// Service derives forecast views from a single upstream provider.
type Service struct {
	provider Provider
	params   Params
}

// NewService creates a new Service.
func NewService(provider Provider, params Params) *Service {
	return &Service{
		provider: provider,
		params:   params,
	}
}

// Get7DayForecast returns one DailyForecast per upstream day, in upstream order.
func (s *Service) Get7DayForecast(ctx context.Context, lat, lon float64) ([]DailyForecast, error) {
	resp, err := s.fetch(ctx, lat, lon, "")
	if err != nil {
		return nil, err
	}
	return BuildForecast(resp.Daily)
}

// GetWeekSummary returns averages and extremes over the whole upstream window.
func (s *Service) GetWeekSummary(ctx context.Context, lat, lon float64) (WeatherSummary, error) {
	resp, err := s.fetch(ctx, lat, lon, s.params.Hourly)
	if err != nil {
		return WeatherSummary{}, err
	}
	return Summarize(resp)
}

func (s *Service) fetch(ctx context.Context, lat, lon float64, hourly string) (*RawResponse, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no weather provider configured")
	}

	slog.DebugContext(ctx, "fetching forecast",
		"provider", s.provider.Name(),
		"lat", lat,
		"lon", lon,
		"hourly", hourly != "",
	)

	resp, err := s.provider.Fetch(ctx, Request{
		Latitude:  lat,
		Longitude: lon,
		Daily:     s.params.Daily,
		Hourly:    hourly,
		Timezone:  s.params.Timezone,
	})
	if err != nil {
		slog.WarnContext(ctx, "provider fetch failed", "provider", s.provider.Name(), "err", err)
		return nil, err
	}
	if resp == nil || resp.Daily == nil {
		return nil, NewDataUnavailable("Failed to fetch weather data from the external API (empty response).", nil)
	}
	return resp, nil
}

// DailyUnits describes the units of DailyForecast fields.
func (s *Service) DailyUnits() DailyUnits {
	return DailyUnits{
		Date:            "YYYY-MM-DD",
		WeatherCode:     "wmo code",
		MinTemperature:  "°C",
		MaxTemperature:  "°C",
		EstimatedEnergy: "kWh",
	}
}

// WeeklySummaryUnits describes the units of WeatherSummary fields.
func (s *Service) WeeklySummaryUnits() WeeklySummaryUnits {
	return WeeklySummaryUnits{
		AverageSurfacePressure:  "hPa",
		AverageSunshineDuration: "s",
		MinTemperature:          "°C",
		MaxTemperature:          "°C",
	}
}

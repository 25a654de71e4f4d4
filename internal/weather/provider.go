package weather

import (
	"context"
)

// Request describes a single upstream forecast query.
type Request struct {
	Latitude  float64
	Longitude float64
	// Daily and Hourly are comma-separated parameter names.
	// An empty Hourly omits the hourly section.
	Daily    string
	Hourly   string
	Timezone string
}

// Provider abstracts a weather data source (e.g. Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) (*RawResponse, error)
}

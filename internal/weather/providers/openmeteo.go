package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-backend/internal/weather"
)

const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

// openMeteoError is the body Open-Meteo sends with 4xx answers.
type openMeteoError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// NewOpenMeteoProvider builds a provider for the forecast endpoint at baseURL.
// An empty baseURL selects the public Open-Meteo API.
func NewOpenMeteoProvider(client *http.Client, baseURL string, breaker BreakerConfig) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  newRestClient(client),
		circuit: newCircuitBreaker("openmeteo", breaker),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// QueryParams returns the query string values sent for req.
func QueryParams(req weather.Request) map[string]string {
	params := map[string]string{
		"latitude":  formatCoordinate(req.Latitude),
		"longitude": formatCoordinate(req.Longitude),
		"daily":     req.Daily,
		"timezone":  req.Timezone,
	}
	if req.Hourly != "" {
		params["hourly"] = req.Hourly
	}
	return params
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, req weather.Request) (*weather.RawResponse, error) {
	var (
		payload  openMeteoPayload
		apiError openMeteoError
	)

	resp, err := executeWithBreaker(p.circuit, func() (*resty.Response, error) {
		return p.client.R().
			SetContext(ctx).
			SetQueryParams(QueryParams(req)).
			SetResult(&payload).
			SetError(&apiError).
			Get(p.baseURL)
	})
	if err != nil {
		switch {
		case isBreakerOpen(err):
			return nil, weather.NewDataUnavailable(
				"The Open-Meteo API is temporarily unavailable, please try again later.", err)
		case errors.Is(err, errServerError):
			return nil, weather.NewDataUnavailable(
				"The Open-Meteo API failed to serve weather data ("+err.Error()+").", err)
		case errors.Is(err, errDecode):
			return nil, weather.NewDataUnavailable(
				"Failed to parse weather data from the external API.", err)
		default:
			return nil, weather.NewDataUnavailable(
				"Connection error with the Open-Meteo external API: "+err.Error(), err)
		}
	}

	if resp.IsError() {
		msg := fmt.Sprintf("The Open-Meteo API responded with status %d.", resp.StatusCode())
		if apiError.Reason != "" {
			msg = fmt.Sprintf("The Open-Meteo API responded with status %d: %s", resp.StatusCode(), apiError.Reason)
		}
		return nil, weather.NewDataUnavailable(msg, fmt.Errorf("openmeteo: status %d", resp.StatusCode()))
	}

	if payload.Daily == nil {
		return nil, weather.NewDataUnavailable(
			"Failed to fetch weather data from the external API (empty response).", nil)
	}

	raw, err := payload.toRaw()
	if err != nil {
		return nil, weather.NewDataUnavailable(
			"Weather data from the external API is incomplete (missing daily values).", err)
	}
	return raw, nil
}

// openMeteoPayload mirrors the forecast body. Series elements are pointers
// because Open-Meteo sends null for values it cannot compute.
type openMeteoPayload struct {
	Daily *struct {
		Time             []string   `json:"time"`
		WeatherCode      []*int     `json:"weather_code"`
		Temperature2mMin []*float64 `json:"temperature_2m_min"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
		SunshineDuration []*float64 `json:"sunshine_duration"`
		RainSum          []*float64 `json:"rain_sum"`
	} `json:"daily"`
	Hourly *struct {
		SurfacePressure []*float64 `json:"surface_pressure"`
	} `json:"hourly"`
}

// toRaw rejects null daily values; null hourly readings are dropped.
func (p *openMeteoPayload) toRaw() (*weather.RawResponse, error) {
	d := p.Daily
	daily := &weather.DailyData{Time: d.Time}

	var err error
	if daily.WeatherCode, err = deref("weather_code", d.WeatherCode); err != nil {
		return nil, err
	}
	if daily.Temperature2mMin, err = deref("temperature_2m_min", d.Temperature2mMin); err != nil {
		return nil, err
	}
	if daily.Temperature2mMax, err = deref("temperature_2m_max", d.Temperature2mMax); err != nil {
		return nil, err
	}
	if daily.SunshineDuration, err = deref("sunshine_duration", d.SunshineDuration); err != nil {
		return nil, err
	}
	if daily.RainSum, err = deref("rain_sum", d.RainSum); err != nil {
		return nil, err
	}

	raw := &weather.RawResponse{Daily: daily}
	if p.Hourly != nil {
		pressures := make([]float64, 0, len(p.Hourly.SurfacePressure))
		for _, v := range p.Hourly.SurfacePressure {
			if v != nil {
				pressures = append(pressures, *v)
			}
		}
		raw.Hourly = &weather.HourlyData{SurfacePressure: pressures}
	}
	return raw, nil
}

func deref[T any](name string, values []*T) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		if v == nil {
			return nil, fmt.Errorf("daily series %s has null at index %d", name, i)
		}
		out[i] = *v
	}
	return out, nil
}

// formatCoordinate renders v with six decimals and a '.' separator.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

var _ weather.Provider = (*OpenMeteoProvider)(nil)

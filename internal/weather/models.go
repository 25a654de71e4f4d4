package weather

import "fmt"

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionFog     Condition = "fog"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
)

// ConditionFromCode maps a WMO weather interpretation code to a Condition.
func ConditionFromCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

// RawResponse is the upstream forecast payload.
// Hourly is nil when no hourly parameters were requested.
type RawResponse struct {
	Daily  *DailyData  `json:"daily"`
	Hourly *HourlyData `json:"hourly"`
}

// DailyData holds parallel per-day series; index i refers to the same day in every slice.
type DailyData struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	SunshineDuration []float64 `json:"sunshine_duration"` // seconds
	RainSum          []float64 `json:"rain_sum"`          // mm
}

// Len returns the number of days.
func (d *DailyData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Time)
}

// Validate reports an error when the series are not all Len long.
func (d *DailyData) Validate() error {
	if d == nil {
		return nil
	}
	n := len(d.Time)
	for _, s := range []struct {
		name string
		len  int
	}{
		{"weather_code", len(d.WeatherCode)},
		{"temperature_2m_min", len(d.Temperature2mMin)},
		{"temperature_2m_max", len(d.Temperature2mMax)},
		{"sunshine_duration", len(d.SunshineDuration)},
		{"rain_sum", len(d.RainSum)},
	} {
		if s.len != n {
			return fmt.Errorf("daily series %s has %d entries, time has %d", s.name, s.len, n)
		}
	}
	return nil
}

type HourlyData struct {
	SurfacePressure []float64 `json:"surface_pressure"` // hPa
}

// DailyForecast is a single day of the multi-day forecast.
type DailyForecast struct {
	Date            string  `json:"date"`
	WeatherCode     int     `json:"weatherCode"`
	MinTemperature  float64 `json:"minTemperature"`
	MaxTemperature  float64 `json:"maxTemperature"`
	EstimatedEnergy float64 `json:"estimatedEnergy"` // kWh
}

// WeatherSummary aggregates a whole forecast window.
type WeatherSummary struct {
	AverageSurfacePressure  float64 `json:"averageSurfacePressure"`
	AverageSunshineDuration float64 `json:"averageSunshineDuration"`
	MinTemperature          float64 `json:"minTemperature"`
	MaxTemperature          float64 `json:"maxTemperature"`
	WeatherSummary          string  `json:"weatherSummary"`
}

type DailyUnits struct {
	Date            string `json:"date"`
	WeatherCode     string `json:"weatherCode"`
	MinTemperature  string `json:"minTemperature"`
	MaxTemperature  string `json:"maxTemperature"`
	EstimatedEnergy string `json:"estimatedEnergy"`
}

type WeeklySummaryUnits struct {
	AverageSurfacePressure  string `json:"averageSurfacePressure"`
	AverageSunshineDuration string `json:"averageSunshineDuration"`
	MinTemperature          string `json:"minTemperature"`
	MaxTemperature          string `json:"maxTemperature"`
}

package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/weather-backend/internal/weather"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ParseAndValidate parses raw as a decimal number and checks it lies in [min, max].
// Failures are *weather.InvalidInputError values naming label.
func ParseAndValidate(raw, label string, min, max float64) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) {
		return 0, weather.NewInvalidInput(fmt.Sprintf("%s must be a decimal number.", label))
	}

	if value < min || value > max {
		return 0, weather.NewInvalidInput(fmt.Sprintf("%s must be in range [%s, %s].",
			label, formatBound(min), formatBound(max)))
	}

	return value, nil
}

// Latitude validates a latitude in [-90, 90].
func Latitude(raw string) (float64, error) {
	return ParseAndValidate(raw, "latitude", MinLatitude, MaxLatitude)
}

// Longitude validates a longitude in [-180, 180].
func Longitude(raw string) (float64, error) {
	return ParseAndValidate(raw, "longitude", MinLongitude, MaxLongitude)
}

// Coordinates validates both values, latitude first.
func Coordinates(rawLat, rawLon string) (lat, lon float64, err error) {
	if lat, err = Latitude(rawLat); err != nil {
		return 0, 0, err
	}
	if lon, err = Longitude(rawLon); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

package weather

import "math"

const (
	SolarPanelPowerKW = 2.5
	PanelEfficiency   = 0.20

	// rainyDaysThreshold is the number of rainy days a window must exceed to be "Rainy".
	rainyDaysThreshold = 3

	SummaryRainy    = "Rainy"
	SummaryNotRainy = "Not rainy"

	malformedDailyMessage = "Weather data from the external API is malformed (daily series differ in length)."
)

// Round rounds value half away from zero at the given number of decimal places.
func Round(value float64, places int) (float64, error) {
	if places < 0 {
		return 0, ErrNegativePlaces
	}
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor, nil
}

// EstimateEnergy returns the expected panel output in kWh for a day with the
// given sunshine duration in seconds, rounded to three decimals.
func EstimateEnergy(sunshineSeconds float64) float64 {
	sunshineHours := sunshineSeconds / 3600
	energy, _ := Round(SolarPanelPowerKW*sunshineHours*PanelEfficiency, 3)
	return energy
}

// BuildForecast turns the daily series into one DailyForecast per day,
// preserving provider order.
func BuildForecast(daily *DailyData) ([]DailyForecast, error) {
	if err := daily.Validate(); err != nil {
		return nil, NewDataUnavailable(malformedDailyMessage, err)
	}
	n := daily.Len()

	forecasts := make([]DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		forecasts = append(forecasts, DailyForecast{
			Date:            daily.Time[i],
			WeatherCode:     daily.WeatherCode[i],
			MinTemperature:  daily.Temperature2mMin[i],
			MaxTemperature:  daily.Temperature2mMax[i],
			EstimatedEnergy: EstimateEnergy(daily.SunshineDuration[i]),
		})
	}
	return forecasts, nil
}

// Summarize aggregates a full response into a WeatherSummary.
// A missing or empty hourly section yields an average pressure of 0.
func Summarize(resp *RawResponse) (WeatherSummary, error) {
	daily := resp.Daily
	if err := daily.Validate(); err != nil {
		return WeatherSummary{}, NewDataUnavailable(malformedDailyMessage, err)
	}
	n := daily.Len()
	if n == 0 {
		return WeatherSummary{}, NewDataUnavailable("The external API returned no daily weather data.", nil)
	}

	var pressures []float64
	if resp.Hourly != nil {
		pressures = resp.Hourly.SurfacePressure
	}
	avgPressure, err := Round(mean(pressures), 4)
	if err != nil {
		return WeatherSummary{}, err
	}

	var sunshineTotal float64
	minTemp := daily.Temperature2mMin[0]
	maxTemp := daily.Temperature2mMax[0]
	rainyDays := 0
	for i := 0; i < n; i++ {
		sunshineTotal += daily.SunshineDuration[i]
		minTemp = math.Min(minTemp, daily.Temperature2mMin[i])
		maxTemp = math.Max(maxTemp, daily.Temperature2mMax[i])
		if daily.RainSum[i] > 0 {
			rainyDays++
		}
	}

	avgSunshine, err := Round(sunshineTotal/float64(n), 2)
	if err != nil {
		return WeatherSummary{}, err
	}

	summary := SummaryNotRainy
	if rainyDays > rainyDaysThreshold {
		summary = SummaryRainy
	}

	return WeatherSummary{
		AverageSurfacePressure:  avgPressure,
		AverageSunshineDuration: avgSunshine,
		MinTemperature:          minTemp,
		MaxTemperature:          maxTemp,
		WeatherSummary:          summary,
	}, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

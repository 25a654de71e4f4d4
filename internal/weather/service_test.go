package weather

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

type stubProvider struct {
	resp     *RawResponse
	err      error
	requests []Request
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Fetch(_ context.Context, req Request) (*RawResponse, error) {
	p.requests = append(p.requests, req)
	return p.resp, p.err
}

var testParams = Params{
	Daily:    "weather_code,temperature_2m_min,temperature_2m_max,sunshine_duration,rain_sum",
	Hourly:   "surface_pressure",
	Timezone: "auto",
}

func sampleResponse() *RawResponse {
	return &RawResponse{
		Daily: &DailyData{
			Time:             []string{"2024-11-20", "2024-11-21", "2024-11-22"},
			WeatherCode:      []int{1, 2, 1},
			Temperature2mMin: []float64{5.0, 6.0, 7.0},
			Temperature2mMax: []float64{15.0, 16.0, 17.0},
			SunshineDuration: []float64{36000, 30000, 42000},
			RainSum:          []float64{0.0, 1.0, 0.0},
		},
		Hourly: &HourlyData{
			SurfacePressure: []float64{1013, 1015, 1017},
		},
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGet7DayForecast(t *testing.T) {
	p := &stubProvider{resp: sampleResponse()}
	svc := NewService(p, testParams)

	forecasts, err := svc.Get7DayForecast(context.Background(), 52.2298, 21.0118)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forecasts) != 3 {
		t.Fatalf("expected 3 days, got %d", len(forecasts))
	}

	wantDates := []string{"2024-11-20", "2024-11-21", "2024-11-22"}
	wantCodes := []int{1, 2, 1}
	wantMin := []float64{5, 6, 7}
	wantMax := []float64{15, 16, 17}
	wantEnergy := []float64{5.0, 4.167, 5.834}

	for i, f := range forecasts {
		if f.Date != wantDates[i] {
			t.Errorf("day %d: expected date %s, got %s", i, wantDates[i], f.Date)
		}
		if f.WeatherCode != wantCodes[i] {
			t.Errorf("day %d: expected code %d, got %d", i, wantCodes[i], f.WeatherCode)
		}
		if f.MinTemperature != wantMin[i] || f.MaxTemperature != wantMax[i] {
			t.Errorf("day %d: unexpected temperatures %v/%v", i, f.MinTemperature, f.MaxTemperature)
		}
		if !almostEqual(f.EstimatedEnergy, wantEnergy[i], 0.01) {
			t.Errorf("day %d: expected energy ~%v, got %v", i, wantEnergy[i], f.EstimatedEnergy)
		}
	}

	if len(p.requests) != 1 {
		t.Fatalf("expected 1 upstream request, got %d", len(p.requests))
	}
	req := p.requests[0]
	if req.Hourly != "" {
		t.Errorf("expected empty hourly selector, got %q", req.Hourly)
	}
	if req.Daily != testParams.Daily || req.Timezone != "auto" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestGet7DayForecastIgnoresMissingHourly(t *testing.T) {
	resp := sampleResponse()
	resp.Hourly = nil
	svc := NewService(&stubProvider{resp: resp}, testParams)

	forecasts, err := svc.Get7DayForecast(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forecasts) != 3 {
		t.Fatalf("expected 3 days, got %d", len(forecasts))
	}
}

func TestGet7DayForecastPreservesOrder(t *testing.T) {
	resp := sampleResponse()
	resp.Daily.Time = []string{"2024-11-22", "2024-11-20", "2024-11-21"}
	svc := NewService(&stubProvider{resp: resp}, testParams)

	forecasts, err := svc.Get7DayForecast(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, f := range forecasts {
		if f.Date != resp.Daily.Time[i] {
			t.Fatalf("order changed at %d: got %s", i, f.Date)
		}
	}
}

func TestGet7DayForecastProviderError(t *testing.T) {
	upstream := NewDataUnavailable("Failed to fetch weather data from the external API.", nil)
	svc := NewService(&stubProvider{err: upstream}, testParams)

	_, err := svc.Get7DayForecast(context.Background(), 52.2, 21.0)
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestGet7DayForecastEmptyResponse(t *testing.T) {
	svc := NewService(&stubProvider{resp: &RawResponse{}}, testParams)

	_, err := svc.Get7DayForecast(context.Background(), 52.2, 21.0)
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestGet7DayForecastMisalignedSeries(t *testing.T) {
	resp := sampleResponse()
	resp.Daily.RainSum = resp.Daily.RainSum[:2]
	svc := NewService(&stubProvider{resp: resp}, testParams)

	_, err := svc.Get7DayForecast(context.Background(), 0, 0)
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestGetWeekSummary(t *testing.T) {
	p := &stubProvider{resp: sampleResponse()}
	svc := NewService(p, testParams)

	summary, err := svc.GetWeekSummary(context.Background(), 52.2298, 21.0118)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AverageSurfacePressure != 1015.0 {
		t.Errorf("expected pressure 1015.0, got %v", summary.AverageSurfacePressure)
	}
	if summary.AverageSunshineDuration != 36000.0 {
		t.Errorf("expected sunshine 36000.0, got %v", summary.AverageSunshineDuration)
	}
	if summary.MinTemperature != 5.0 {
		t.Errorf("expected min 5.0, got %v", summary.MinTemperature)
	}
	if summary.MaxTemperature != 17.0 {
		t.Errorf("expected max 17.0, got %v", summary.MaxTemperature)
	}
	if summary.WeatherSummary != SummaryNotRainy {
		t.Errorf("expected %q, got %q", SummaryNotRainy, summary.WeatherSummary)
	}

	if got := p.requests[0].Hourly; got != "surface_pressure" {
		t.Errorf("expected hourly selector surface_pressure, got %q", got)
	}
}

func TestGetWeekSummaryRainy(t *testing.T) {
	resp := sampleResponse()
	resp.Daily = &DailyData{
		Time:             []string{"d1", "d2", "d3", "d4", "d5"},
		WeatherCode:      []int{61, 61, 61, 61, 0},
		Temperature2mMin: []float64{1, 2, 3, 4, 5},
		Temperature2mMax: []float64{6, 7, 8, 9, 10},
		SunshineDuration: []float64{0, 0, 0, 0, 0},
		RainSum:          []float64{0.1, 2, 3, 4, 0},
	}
	svc := NewService(&stubProvider{resp: resp}, testParams)

	summary, err := svc.GetWeekSummary(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.WeatherSummary != SummaryRainy {
		t.Errorf("expected %q, got %q", SummaryRainy, summary.WeatherSummary)
	}
}

func TestGetWeekSummaryExactlyThreeRainyDays(t *testing.T) {
	resp := sampleResponse()
	resp.Daily.RainSum = []float64{1, 1, 1}
	svc := NewService(&stubProvider{resp: resp}, testParams)

	summary, err := svc.GetWeekSummary(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.WeatherSummary != SummaryNotRainy {
		t.Errorf("expected %q, got %q", SummaryNotRainy, summary.WeatherSummary)
	}
}

func TestGetWeekSummaryNegativeTemperatures(t *testing.T) {
	resp := sampleResponse()
	resp.Daily.Temperature2mMin = []float64{-12, -15, -9}
	resp.Daily.Temperature2mMax = []float64{-4, -6, -2}
	svc := NewService(&stubProvider{resp: resp}, testParams)

	summary, err := svc.GetWeekSummary(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.MinTemperature != -15 {
		t.Errorf("expected min -15, got %v", summary.MinTemperature)
	}
	if summary.MaxTemperature != -2 {
		t.Errorf("expected max -2, got %v", summary.MaxTemperature)
	}
}

func TestGetWeekSummaryWithoutHourly(t *testing.T) {
	resp := sampleResponse()
	resp.Hourly = nil
	svc := NewService(&stubProvider{resp: resp}, testParams)

	summary, err := svc.GetWeekSummary(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AverageSurfacePressure != 0 {
		t.Errorf("expected pressure 0, got %v", summary.AverageSurfacePressure)
	}
}

func TestGetWeekSummaryNoDays(t *testing.T) {
	resp := sampleResponse()
	resp.Daily = &DailyData{}
	svc := NewService(&stubProvider{resp: resp}, testParams)

	_, err := svc.GetWeekSummary(context.Background(), 0, 0)
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		value  float64
		places int
		want   float64
	}{
		{2.5555, 2, 2.56},
		{2.5544, 3, 2.554},
		{-2.5, 0, -3},
		{1015.00004, 4, 1015.0},
	}
	for _, tc := range cases {
		got, err := Round(tc.value, tc.places)
		if err != nil {
			t.Fatalf("Round(%v, %d): unexpected error: %v", tc.value, tc.places, err)
		}
		if got != tc.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tc.value, tc.places, got, tc.want)
		}
	}

	if _, err := Round(1.0, -1); !errors.Is(err, ErrNegativePlaces) {
		t.Errorf("expected ErrNegativePlaces, got %v", err)
	}
}

func TestUnits(t *testing.T) {
	svc := NewService(nil, testParams)

	du := svc.DailyUnits()
	if du.Date != "YYYY-MM-DD" || du.WeatherCode != "wmo code" || du.EstimatedEnergy != "kWh" {
		t.Errorf("unexpected daily units %+v", du)
	}
	if du.MinTemperature != "°C" || du.MaxTemperature != "°C" {
		t.Errorf("unexpected temperature units %+v", du)
	}

	wu := svc.WeeklySummaryUnits()
	if wu.AverageSurfacePressure != "hPa" || wu.AverageSunshineDuration != "s" {
		t.Errorf("unexpected weekly units %+v", wu)
	}
	if wu.MinTemperature != "°C" || wu.MaxTemperature != "°C" {
		t.Errorf("unexpected temperature units %+v", wu)
	}
}

func TestConditionFromCode(t *testing.T) {
	cases := map[int]Condition{
		0:  ConditionClear,
		2:  ConditionCloudy,
		45: ConditionFog,
		63: ConditionRain,
		81: ConditionRain,
		73: ConditionSnow,
		95: ConditionStorm,
		42: ConditionUnknown,
	}
	for code, want := range cases {
		if got := ConditionFromCode(code); got != want {
			t.Errorf("ConditionFromCode(%d) = %s, want %s", code, got, want)
		}
	}
}

func TestDailyDataValidate(t *testing.T) {
	if err := sampleResponse().Daily.Validate(); err != nil {
		t.Fatalf("expected aligned series to validate, got %v", err)
	}

	var nilDaily *DailyData
	if err := nilDaily.Validate(); err != nil {
		t.Errorf("expected nil daily data to validate, got %v", err)
	}

	daily := sampleResponse().Daily
	daily.RainSum = daily.RainSum[:1]
	err := daily.Validate()
	if err == nil {
		t.Fatal("expected error for short rain_sum series")
	}
	if !strings.Contains(err.Error(), "rain_sum") {
		t.Errorf("expected error to name the series, got %v", err)
	}
	if daily.Len() != len(daily.Time) {
		t.Errorf("expected Len to follow the time axis, got %d", daily.Len())
	}
}

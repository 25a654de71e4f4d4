package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-backend/internal/validation"
	"github.com/i474232898/weather-backend/internal/weather"
)

type queryFlags struct {
	latitude  string
	longitude string
	asJSON    bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.latitude, "latitude", "", "latitude in decimal degrees (-90..90)")
	cmd.Flags().StringVar(&f.longitude, "longitude", "", "longitude in decimal degrees (-180..180)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the JSON envelope served by the API")
	_ = cmd.MarkFlagRequired("latitude")
	_ = cmd.MarkFlagRequired("longitude")
}

func newForecastCmd() *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print the daily forecast with estimated solar energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := validation.Coordinates(flags.latitude, flags.longitude)
			if err != nil {
				return err
			}
			_, _, service, err := setup()
			if err != nil {
				return err
			}

			days, err := service.Get7DayForecast(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.asJSON {
				return writeJSON(out, map[string]any{
					"days":        days,
					"daily_units": service.DailyUnits(),
				})
			}
			return writeForecastTable(out, days, service.DailyUnits())
		},
	}
	flags.register(cmd)
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the weekly weather summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := validation.Coordinates(flags.latitude, flags.longitude)
			if err != nil {
				return err
			}
			_, _, service, err := setup()
			if err != nil {
				return err
			}

			summary, err := service.GetWeekSummary(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.asJSON {
				return writeJSON(out, map[string]any{
					"weekly_summary":       summary,
					"weekly_summary_units": service.WeeklySummaryUnits(),
				})
			}
			return writeSummary(out, summary, service.WeeklySummaryUnits())
		},
	}
	flags.register(cmd)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeForecastTable(w io.Writer, days []weather.DailyForecast, units weather.DailyUnits) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DATE\tCONDITION\tMIN (%s)\tMAX (%s)\tENERGY (%s)\n",
		units.MinTemperature, units.MaxTemperature, units.EstimatedEnergy)
	for _, d := range days {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.3f\n",
			d.Date, weather.ConditionFromCode(d.WeatherCode), d.MinTemperature, d.MaxTemperature, d.EstimatedEnergy)
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, s weather.WeatherSummary, units weather.WeeklySummaryUnits) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Average surface pressure\t%.4f %s\n", s.AverageSurfacePressure, units.AverageSurfacePressure)
	fmt.Fprintf(tw, "Average sunshine duration\t%.2f %s\n", s.AverageSunshineDuration, units.AverageSunshineDuration)
	fmt.Fprintf(tw, "Min temperature\t%.1f %s\n", s.MinTemperature, units.MinTemperature)
	fmt.Fprintf(tw, "Max temperature\t%.1f %s\n", s.MaxTemperature, units.MaxTemperature)
	fmt.Fprintf(tw, "Summary\t%s\n", s.WeatherSummary)
	return tw.Flush()
}

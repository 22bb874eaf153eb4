package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// conditionsCmd represents the conditions command
var conditionsCmd = &cobra.Command{
	Use:   "conditions <mountain-id>",
	Short: "Fuse weather and telemetry sources for one mountain",
	Long: `Conditions queries the snow telemetry, gridded forecast, hourly model,
and freezing-level sources for one mountain in parallel and prints the
fused snapshot. Sources that fail are listed as unavailable; missing
measurements print as "-".

Example:
  shredders conditions baker
  shredders conditions crystal --json`,
	Args: cobra.ExactArgs(1),
	RunE: runConditions,
}

func init() {
	rootCmd.AddCommand(conditionsCmd)
}

func runConditions(cmd *cobra.Command, args []string) error {
	eng, logger, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	snap, err := eng.Conditions(ctx, args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Printf("Conditions for %s at %s\n\n", snap.MountainID, snap.TakenAt.Format("2006-01-02 15:04 MST"))
	fmt.Printf("  Snowfall 24h:    %s in\n", fmtMeasure(snap.Snowfall24h))
	fmt.Printf("  Snowfall 48h:    %s in\n", fmtMeasure(snap.Snowfall48h))
	fmt.Printf("  Upcoming 48h:    %s in\n", fmtMeasure(snap.UpcomingSnow48h))
	fmt.Printf("  Temperature:     %s F\n", fmtMeasure(snap.Temperature))
	fmt.Printf("  Wind:            %s mph (gust %s)\n", fmtMeasure(snap.WindSpeed), fmtMeasure(snap.WindGust))
	fmt.Printf("  Humidity:        %s %%\n", fmtMeasure(snap.Humidity))
	fmt.Printf("  Visibility:      %s mi\n", fmtMeasure(snap.VisibilityMiles))
	fmt.Printf("  Sky cover:       %s %%\n", fmtMeasure(snap.SkyCoverPercent))
	fmt.Printf("  Precip chance:   %s %%\n", fmtMeasure(snap.PrecipProbabilityPercent))
	fmt.Printf("  Freezing level:  %s ft\n", fmtMeasure(snap.FreezingLevelFt))

	fmt.Printf("\nSources: %s\n", fmtSources(snap.Sources))
	return nil
}

func fmtMeasure(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtSources(s model.SourceAvailability) string {
	mark := func(name string, ok bool) string {
		if ok {
			return name
		}
		return name + " (unavailable)"
	}
	return fmt.Sprintf("%s, %s, %s, %s, %s",
		mark("telemetry", s.Telemetry),
		mark("forecast", s.ForecastBasic),
		mark("extended", s.ForecastExtended),
		mark("hourly", s.HourlyForecast),
		mark("freezing-level", s.IndependentForecast))
}

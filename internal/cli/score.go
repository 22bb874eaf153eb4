package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

var withReport bool

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [mountain-id]",
	Short: "Compute powder scores",
	Long: `Score fuses current conditions and computes the 0-10 powder score.
With no argument every enabled mountain is scored; with a mountain id
only that one is, with the per-factor breakdown shown.

Weather sources that fail drop their factors out of the score; the
remaining factor weights are rescaled so the score stays on 0-10.

Example:
  shredders score
  shredders score baker
  shredders score --report`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&withReport, "report", false, "also generate a narrative powder report (requires OPENAI_API_KEY)")
}

func runScore(cmd *cobra.Command, args []string) error {
	eng, logger, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if len(args) == 1 {
		powder, err := eng.Score(ctx, args[0])
		if err != nil {
			return err
		}
		return printSingleScore(powder)
	}

	scores, err := eng.ScoreAll(ctx)
	if err != nil {
		return fmt.Errorf("score run failed: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(scores); err != nil {
			return err
		}
	} else {
		printScoreTable(scores)
	}

	if withReport {
		if !eng.ReportEnabled() {
			return fmt.Errorf("OPENAI_API_KEY not set; cannot generate report")
		}
		narrative, err := eng.PowderReport(ctx, scores)
		if err != nil {
			return fmt.Errorf("report generation failed: %w", err)
		}
		fmt.Printf("\n%s\n", narrative)
	}
	return nil
}

func printSingleScore(powder *model.PowderScore) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(powder)
	}

	fmt.Printf("%s: %.1f/10 - %s\n\n", powder.MountainID, powder.Score, powder.Verdict)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FACTOR\tWEIGHT\tCONTRIB\tDETAIL")
	for _, f := range powder.Factors {
		fmt.Fprintf(w, "%s\t%.2f\t%+.2f\t%s\n", f.Name, f.Weight, f.Contribution, f.Description)
	}
	return w.Flush()
}

func printScoreTable(scores []model.PowderScore) {
	sorted := make([]model.PowderScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MOUNTAIN\tSCORE\tVERDICT")
	for _, s := range sorted {
		fmt.Fprintf(w, "%s\t%.1f\t%s\n", s.MountainID, s.Score, s.Verdict)
	}
	_ = w.Flush()
}

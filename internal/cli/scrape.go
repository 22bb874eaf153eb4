package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape lift and run status for all enabled mountains",
	Long: `Scrape runs every enabled mountain's source adapter concurrently and
prints the run summary. A mountain whose site is down, slow, or has
changed its markup shows up as failed; the rest still report.

Example:
  shredders scrape
  shredders scrape --json
  shredders scrape --store-dir ~/.shredders/data`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	eng, logger, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	summary, err := eng.RunScrapes(ctx)
	if err != nil {
		return fmt.Errorf("scrape run failed: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MOUNTAIN\tOPEN\tLIFTS\tRUNS\tSTATUS")
	for _, res := range summary.Results {
		if !res.Success {
			fmt.Fprintf(w, "%s\t-\t-\t-\tFAILED: %s\n", res.MountainID, res.Error)
			continue
		}
		open := "closed"
		if res.IsOpen {
			open = "open"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d/%d\tok (%dms)\n",
			res.MountainID, open,
			res.LiftsOpen, res.LiftsTotal,
			res.RunsOpen, res.RunsTotal,
			res.DurationMs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d mountains: %d succeeded, %d failed (%.1fs)\n",
		summary.TotalMountains, summary.SuccessfulCount, summary.FailedCount,
		summary.FinishedAt.Sub(summary.StartedAt).Seconds())
	return nil
}

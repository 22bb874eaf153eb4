package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kevincorvallis/shredders-sub008/internal/registry"
)

// mountainsCmd represents the mountains command
var mountainsCmd = &cobra.Command{
	Use:   "mountains",
	Short: "List the configured mountains and their scrape strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		var reg *registry.Registry
		var err error
		if cfg.RegistryFile != "" {
			reg, err = registry.Load(cfg.RegistryFile)
			if err != nil {
				return fmt.Errorf("load registry: %w", err)
			}
		} else {
			reg = registry.New()
		}

		mountains := reg.List()
		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(mountains)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTRATEGY\tSTATION\tENABLED")
		for _, m := range mountains {
			station := m.Station
			if station == "" {
				station = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", m.ID, m.DisplayName, m.Strategy, station, m.Enabled)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(mountainsCmd)
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kevincorvallis/shredders-sub008/internal/engine"
	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

var (
	cfgFile      string
	verbose      bool
	jsonOut      bool
	registryFile string
	storeDir     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shredders",
	Short: "Shredders - Washington ski conditions scraper and powder scorer",
	Long: `Shredders collects lift and run status from resort websites, fuses
snow telemetry and forecast data from public weather providers, and
computes a 0-10 powder score per mountain.

Resort sites break their markup without notice; a mountain whose
source has drifted is reported as failed, never as stale numbers.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("shredders v1.0.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.shredders/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	rootCmd.PersistentFlags().StringVar(&registryFile, "registry", "", "mountain registry overrides (YAML)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store-dir", "", "persist results to this directory instead of memory")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("registry_file", rootCmd.PersistentFlags().Lookup("registry"))
	_ = viper.BindPFlag("store.dir", rootCmd.PersistentFlags().Lookup("store-dir"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and SHREDDERS_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.shredders")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SHREDDERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration: defaults, then the config
// file and SHREDDERS_* environment, then flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := viper.GetInt64("http.max_body_bytes"); v > 0 {
		cfg.HTTP.MaxBodyBytes = v
	}
	if viper.IsSet("http.insecure_tls") {
		cfg.HTTP.InsecureTLS = viper.GetBool("http.insecure_tls")
	}
	if v := viper.GetDuration("scrape.per_mountain_timeout"); v > 0 {
		cfg.Scrape.PerMountainTimeout = v
	}
	if v := viper.GetInt("scrape.workers"); v > 0 {
		cfg.Scrape.Workers = v
	}
	if viper.IsSet("scrape.respect_robots") {
		cfg.Scrape.RespectRobots = viper.GetBool("scrape.respect_robots")
	}
	if v := viper.GetFloat64("scrape.rate_per_domain"); v > 0 {
		cfg.Scrape.RatePerDomain = v
	}
	if v := viper.GetDuration("weather.cache_ttl"); v > 0 {
		cfg.Weather.CacheTTL = v
	}
	if v := viper.GetString("weather.telemetry_url"); v != "" {
		cfg.Weather.TelemetryURL = v
	}
	if v := viper.GetString("weather.grid_url"); v != "" {
		cfg.Weather.GridURL = v
	}
	if v := viper.GetString("weather.forecast_model_url"); v != "" {
		cfg.Weather.ForecastModel = v
	}

	cfg.RegistryFile = viper.GetString("registry_file")
	cfg.Output.Verbose = viper.GetBool("output.verbose")
	cfg.Output.JSON = viper.GetBool("output.json")

	if dir := viper.GetString("store.dir"); dir != "" {
		cfg.Store.Kind = "disk"
		cfg.Store.Dir = dir
	}

	cfg.Report.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := viper.GetString("report.model"); v != "" {
		cfg.Report.Model = v
	}

	return cfg
}

// newLogger builds the process logger; verbose switches to development output
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	if cfg.Output.Verbose {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// buildEngine wires an Engine for a subcommand run
func buildEngine() (*engine.Engine, *zap.Logger, error) {
	cfg := buildConfig()
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	eng, err := engine.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return eng, logger, nil
}

// commandTimeout bounds one CLI invocation end to end
const commandTimeout = 5 * time.Minute

package model

import "time"

// Config is the engine-wide configuration, assembled from defaults, the config
// file, SHREDDERS_* environment variables, and CLI flags.
type Config struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http"`
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Weather WeatherConfig `json:"weather" yaml:"weather"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	Output  OutputConfig  `json:"output" yaml:"output"`

	// RegistryFile optionally overrides or extends the built-in mountain
	// registry with a YAML file of MountainSourceConfig entries.
	RegistryFile string `json:"registry_file,omitempty" yaml:"registry_file,omitempty"`
}

// HTTPConfig controls outbound HTTP behavior shared by all fetchers
type HTTPConfig struct {
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent    string        `json:"user_agent" yaml:"user_agent"`
	MaxBodyBytes int64         `json:"max_body_bytes" yaml:"max_body_bytes"`
	InsecureTLS  bool          `json:"insecure_tls" yaml:"insecure_tls"`
	HTTPProxy    string        `json:"http_proxy,omitempty" yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `json:"https_proxy,omitempty" yaml:"https_proxy,omitempty"`
	NoProxy      string        `json:"no_proxy,omitempty" yaml:"no_proxy,omitempty"`
}

// ScrapeConfig controls the lift/run scrape orchestrator
type ScrapeConfig struct {
	// PerMountainTimeout bounds one mountain's scrape; exceeding it records a
	// failed ScrapeResult instead of blocking sibling scrapes.
	PerMountainTimeout time.Duration `json:"per_mountain_timeout" yaml:"per_mountain_timeout"`
	Workers            int           `json:"workers" yaml:"workers"`
	RespectRobots      bool          `json:"respect_robots" yaml:"respect_robots"`
	RatePerDomain      float64       `json:"rate_per_domain" yaml:"rate_per_domain"` // requests/sec
	RateBurst          int           `json:"rate_burst" yaml:"rate_burst"`
}

// WeatherConfig controls the weather/telemetry provider clients
type WeatherConfig struct {
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	MaxRetries    int           `json:"max_retries" yaml:"max_retries"`
	RetryDelay    time.Duration `json:"retry_delay" yaml:"retry_delay"`
	CacheTTL      time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	TelemetryURL  string        `json:"telemetry_url" yaml:"telemetry_url"`
	GridURL       string        `json:"grid_url" yaml:"grid_url"`
	ForecastModel string        `json:"forecast_model_url" yaml:"forecast_model_url"`
}

// StoreConfig selects the repository implementation
type StoreConfig struct {
	Kind string `json:"kind" yaml:"kind"` // "memory" or "disk"
	Dir  string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// ReportConfig configures the optional LLM powder report.
// Disabled unless an API key is provided; never affects scoring.
type ReportConfig struct {
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey    string `json:"-" yaml:"-"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `json:"verbose" yaml:"verbose"`
	JSON    bool `json:"json" yaml:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Shredders/1.0 (+https://github.com/kevincorvallis/shredders-sub008)",
			MaxBodyBytes: 2_000_000,
		},
		Scrape: ScrapeConfig{
			PerMountainTimeout: 30 * time.Second,
			Workers:            8,
			RespectRobots:      true,
			RatePerDomain:      2.0,
			RateBurst:          4,
		},
		Weather: WeatherConfig{
			Timeout:       15 * time.Second,
			MaxRetries:    2,
			RetryDelay:    500 * time.Millisecond,
			CacheTTL:      10 * time.Minute,
			TelemetryURL:  "https://api.snowtel.nwac.us/v1",
			GridURL:       "https://api.weather.gov",
			ForecastModel: "https://api.open-meteo.com/v1",
		},
		Store: StoreConfig{
			Kind: "memory",
		},
		Report: ReportConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 600,
		},
	}
}

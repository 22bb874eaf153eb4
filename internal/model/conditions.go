package model

import "time"

// SourceAvailability records which weather/telemetry sources answered during a
// fusion pass. Flags must be consistent with which snapshot fields are populated.
type SourceAvailability struct {
	Telemetry           bool `json:"telemetry"`
	ForecastBasic       bool `json:"forecast_basic"`
	ForecastExtended    bool `json:"forecast_extended"`
	HourlyForecast      bool `json:"hourly_forecast"`
	IndependentForecast bool `json:"independent_forecast"`
}

// ConditionsSnapshot is the fused weather/snow state for one mountain at one
// point in time. Every measurement is a pointer: nil means the source did not
// report it, which is distinct from a measured zero.
type ConditionsSnapshot struct {
	MountainID string    `json:"mountain_id"`
	TakenAt    time.Time `json:"taken_at"`

	Snowfall24h *float64 `json:"snowfall_24h,omitempty"` // inches
	Snowfall48h *float64 `json:"snowfall_48h,omitempty"` // inches

	Temperature *float64 `json:"temperature,omitempty"` // degrees F
	WindSpeed   *float64 `json:"wind_speed,omitempty"`  // mph
	WindGust    *float64 `json:"wind_gust,omitempty"`   // mph

	Humidity                 *float64 `json:"humidity,omitempty"`           // percent, 0-100
	VisibilityMiles          *float64 `json:"visibility_miles,omitempty"`   // miles
	SkyCoverPercent          *float64 `json:"sky_cover_percent,omitempty"`  // percent, 0-100
	PrecipProbabilityPercent *float64 `json:"precip_probability,omitempty"` // percent, 0-100

	UpcomingSnow48h *float64 `json:"upcoming_snow_48h,omitempty"` // inches, derived
	FreezingLevelFt *float64 `json:"freezing_level_ft,omitempty"` // feet

	Sources SourceAvailability `json:"sources"`
}

// Float returns a pointer to v, for building snapshots and test fixtures
func Float(v float64) *float64 { return &v }

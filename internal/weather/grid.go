package weather

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// The weather-grid provider is keyed by forecast cell (office/x/y). The basic
// endpoint returns narrative periods; the gridded endpoint returns raw series
// in SI units that need converting. Both come from the same provider but fail
// independently, so they are separate adapters with separate availability.

// BasicForecast holds the coarse forecast fields used for temperature, wind,
// and the fallback upcoming-snow estimate
type BasicForecast struct {
	TemperatureF    *float64
	WindSpeedMph    *float64
	SnowEstimate48h *float64 // inches, parsed from period narratives
}

// BasicForecastSource fetches the coarse multi-period forecast for a grid cell
type BasicForecastSource interface {
	Forecast(ctx context.Context, grid model.GridPoint) (*BasicForecast, error)
}

// ExtendedReading holds the richer gridded fields
type ExtendedReading struct {
	WindGustMph          *float64
	HumidityPct          *float64
	VisibilityMiles      *float64
	SkyCoverPct          *float64
	PrecipProbabilityPct *float64
}

// ExtendedSource fetches the gridded (extended) data for a grid cell
type ExtendedSource interface {
	Gridded(ctx context.Context, grid model.GridPoint) (*ExtendedReading, error)
}

// GridAdapter implements both the basic and extended weather-grid endpoints
type GridAdapter struct {
	client  *Client
	baseURL string
}

// NewGridAdapter creates an adapter for the weather-grid API
func NewGridAdapter(client *Client, baseURL string) *GridAdapter {
	return &GridAdapter{client: client, baseURL: baseURL}
}

type forecastResponse struct {
	Properties struct {
		Periods []struct {
			StartTime        time.Time `json:"startTime"`
			EndTime          time.Time `json:"endTime"`
			Temperature      *float64  `json:"temperature"` // nil when the period omits it
			WindSpeed        string    `json:"windSpeed"`   // e.g. "5 to 10 mph"
			DetailedForecast string    `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

var (
	snowRangeRe  = regexp.MustCompile(`(?i)snow accumulation of (\d+) to (\d+) inches`)
	snowSingleRe = regexp.MustCompile(`(?i)snow accumulation of (?:around )?(\d+) inch`)
	windNumberRe = regexp.MustCompile(`(\d+)`)
)

// Forecast fetches the period forecast and distills the next 48 hours.
// The snow estimate sums the accumulation wording of every period that starts
// inside the window; a forecast with no snow wording is a measured zero.
func (a *GridAdapter) Forecast(ctx context.Context, grid model.GridPoint) (*BasicForecast, error) {
	url := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast", a.baseURL, grid.Office, grid.X, grid.Y)
	var resp forecastResponse
	if err := a.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("grid forecast %s/%d,%d: %w", grid.Office, grid.X, grid.Y, err)
	}

	periods := resp.Properties.Periods
	if len(periods) == 0 {
		return nil, fmt.Errorf("grid forecast %s/%d,%d: no periods in response", grid.Office, grid.X, grid.Y)
	}

	out := &BasicForecast{
		TemperatureF: periods[0].Temperature,
	}
	if mph, ok := parseWindSpeed(periods[0].WindSpeed); ok {
		out.WindSpeedMph = model.Float(mph)
	}

	cutoff := periods[0].StartTime.Add(48 * time.Hour)
	total := 0.0
	for _, p := range periods {
		if p.StartTime.After(cutoff) {
			break
		}
		total += parseSnowAccumulation(p.DetailedForecast)
	}
	out.SnowEstimate48h = model.Float(total)

	return out, nil
}

// parseWindSpeed reads the top of a "5 to 10 mph" style range
func parseWindSpeed(s string) (float64, bool) {
	matches := windNumberRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(matches[len(matches)-1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseSnowAccumulation extracts inches from forecast narrative, taking the
// midpoint of "X to Y inches" ranges
func parseSnowAccumulation(narrative string) float64 {
	if groups := snowRangeRe.FindStringSubmatch(narrative); groups != nil {
		lo, _ := strconv.ParseFloat(groups[1], 64)
		hi, _ := strconv.ParseFloat(groups[2], 64)
		return (lo + hi) / 2
	}
	if groups := snowSingleRe.FindStringSubmatch(narrative); groups != nil {
		n, _ := strconv.ParseFloat(groups[1], 64)
		return n
	}
	return 0
}

type griddedResponse struct {
	Properties struct {
		WindGust                   griddedSeries `json:"windGust"`
		RelativeHumidity           griddedSeries `json:"relativeHumidity"`
		Visibility                 griddedSeries `json:"visibility"`
		SkyCover                   griddedSeries `json:"skyCover"`
		ProbabilityOfPrecipitation griddedSeries `json:"probabilityOfPrecipitation"`
	} `json:"properties"`
}

type griddedSeries struct {
	UOM    string `json:"uom"`
	Values []struct {
		Value *float64 `json:"value"`
	} `json:"values"`
}

// first returns the series' current value, nil when the provider omitted it
func (s griddedSeries) first() *float64 {
	if len(s.Values) == 0 {
		return nil
	}
	return s.Values[0].Value
}

// Gridded fetches the raw grid cell data and converts SI units to the
// snapshot's imperial ones (km/h to mph, meters to miles).
func (a *GridAdapter) Gridded(ctx context.Context, grid model.GridPoint) (*ExtendedReading, error) {
	url := fmt.Sprintf("%s/gridpoints/%s/%d,%d", a.baseURL, grid.Office, grid.X, grid.Y)
	var resp griddedResponse
	if err := a.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("gridded data %s/%d,%d: %w", grid.Office, grid.X, grid.Y, err)
	}

	out := &ExtendedReading{
		HumidityPct:          resp.Properties.RelativeHumidity.first(),
		SkyCoverPct:          resp.Properties.SkyCover.first(),
		PrecipProbabilityPct: resp.Properties.ProbabilityOfPrecipitation.first(),
	}
	if gust := resp.Properties.WindGust.first(); gust != nil {
		out.WindGustMph = model.Float(*gust * 0.621371) // km/h
	}
	if vis := resp.Properties.Visibility.first(); vis != nil {
		out.VisibilityMiles = model.Float(*vis / 1609.34) // meters
	}

	if out.WindGustMph == nil && out.HumidityPct == nil && out.VisibilityMiles == nil &&
		out.SkyCoverPct == nil && out.PrecipProbabilityPct == nil {
		return nil, fmt.Errorf("gridded data %s/%d,%d: all series empty", grid.Office, grid.X, grid.Y)
	}

	return out, nil
}

package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// The independent forecast model fills the two gaps the grid provider leaves:
// hourly snowfall amounts (for refining the upcoming-snow estimate) and
// freezing-level altitude (for rain-vs-snow risk at a given elevation).

// HourlyRecord is one hour of forecast used to refine upcoming-snow
type HourlyRecord struct {
	Time                 time.Time
	TemperatureF         float64
	PrecipProbabilityPct *float64
	SnowfallIn           *float64
}

// HourlySource fetches the next ~48 hourly records for a location
type HourlySource interface {
	Hourly48h(ctx context.Context, lat, lng float64) ([]HourlyRecord, error)
}

// FreezingLevelSource fetches the freezing-level altitude for a location
type FreezingLevelSource interface {
	FreezingLevelFt(ctx context.Context, lat, lng float64) (*float64, error)
}

// ForecastModelAdapter reads the independent forecast model's API
type ForecastModelAdapter struct {
	client  *Client
	baseURL string
}

// NewForecastModelAdapter creates an adapter against the model's base URL
func NewForecastModelAdapter(client *Client, baseURL string) *ForecastModelAdapter {
	return &ForecastModelAdapter{client: client, baseURL: baseURL}
}

type hourlyResponse struct {
	Hourly struct {
		Time                     []string   `json:"time"`
		Temperature2M            []float64  `json:"temperature_2m"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		Snowfall                 []*float64 `json:"snowfall"`
	} `json:"hourly"`
}

// Hourly48h fetches the next 48 hourly records in imperial units
func (a *ForecastModelAdapter) Hourly48h(ctx context.Context, lat, lng float64) ([]HourlyRecord, error) {
	url := fmt.Sprintf(
		"%s/forecast?latitude=%.4f&longitude=%.4f&hourly=temperature_2m,precipitation_probability,snowfall&temperature_unit=fahrenheit&precipitation_unit=inch&forecast_hours=48",
		a.baseURL, lat, lng)

	var resp hourlyResponse
	if err := a.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("hourly forecast (%.3f,%.3f): %w", lat, lng, err)
	}
	if len(resp.Hourly.Time) == 0 || len(resp.Hourly.Temperature2M) != len(resp.Hourly.Time) {
		return nil, fmt.Errorf("hourly forecast (%.3f,%.3f): empty or misaligned series", lat, lng)
	}

	records := make([]HourlyRecord, 0, len(resp.Hourly.Time))
	for i, raw := range resp.Hourly.Time {
		ts, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			// some deployments return full RFC3339
			ts, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				continue
			}
		}
		rec := HourlyRecord{Time: ts, TemperatureF: resp.Hourly.Temperature2M[i]}
		if i < len(resp.Hourly.PrecipitationProbability) {
			rec.PrecipProbabilityPct = resp.Hourly.PrecipitationProbability[i]
		}
		if i < len(resp.Hourly.Snowfall) {
			rec.SnowfallIn = resp.Hourly.Snowfall[i]
		}
		records = append(records, rec)
	}

	return records, nil
}

type freezingResponse struct {
	Hourly struct {
		Time                []string   `json:"time"`
		FreezingLevelHeight []*float64 `json:"freezing_level_height"` // meters
	} `json:"hourly"`
}

const metersToFeet = 3.28084

// FreezingLevelFt returns the average freezing level over the next 24 hours,
// in feet. Averaging smooths hour-to-hour model noise that would otherwise
// flap the rain-risk factor.
func (a *ForecastModelAdapter) FreezingLevelFt(ctx context.Context, lat, lng float64) (*float64, error) {
	url := fmt.Sprintf(
		"%s/forecast?latitude=%.4f&longitude=%.4f&hourly=freezing_level_height&forecast_hours=24",
		a.baseURL, lat, lng)

	var resp freezingResponse
	if err := a.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("freezing level (%.3f,%.3f): %w", lat, lng, err)
	}

	sum, count := 0.0, 0
	for _, v := range resp.Hourly.FreezingLevelHeight {
		if v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("freezing level (%.3f,%.3f): no values in response", lat, lng)
	}

	return model.Float(sum / float64(count) * metersToFeet), nil
}

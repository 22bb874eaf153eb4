package weather

import (
	"context"
	"fmt"
)

// TelemetryReading is what a snow-telemetry station reports. Fields the
// station omits stay nil; a quiet sensor is not a zero measurement.
type TelemetryReading struct {
	Snowfall24h *float64 // inches
	Snowfall48h *float64 // inches
	GroundTempF *float64
}

// TelemetrySource reads the current snapshot from one telemetry station
type TelemetrySource interface {
	Current(ctx context.Context, stationID string) (*TelemetryReading, error)
}

// TelemetryAdapter reads the regional snow-telemetry network's station API
type TelemetryAdapter struct {
	client  *Client
	baseURL string
}

// NewTelemetryAdapter creates a telemetry adapter against the given base URL
func NewTelemetryAdapter(client *Client, baseURL string) *TelemetryAdapter {
	return &TelemetryAdapter{client: client, baseURL: baseURL}
}

type telemetryResponse struct {
	StationID     string   `json:"station_id"`
	Snowfall24hIn *float64 `json:"snowfall_24h_in"`
	Snowfall48hIn *float64 `json:"snowfall_48h_in"`
	GroundTempF   *float64 `json:"ground_temp_f"`
}

// Current fetches the station's latest observation
func (a *TelemetryAdapter) Current(ctx context.Context, stationID string) (*TelemetryReading, error) {
	if stationID == "" {
		return nil, fmt.Errorf("no telemetry station configured")
	}

	url := fmt.Sprintf("%s/stations/%s/current", a.baseURL, stationID)
	var resp telemetryResponse
	if err := a.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("telemetry station %s: %w", stationID, err)
	}

	return &TelemetryReading{
		Snowfall24h: resp.Snowfall24hIn,
		Snowfall48h: resp.Snowfall48hIn,
		GroundTempF: resp.GroundTempF,
	}, nil
}

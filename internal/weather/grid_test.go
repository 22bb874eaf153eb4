package weather

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

var testGrid = model.GridPoint{Office: "SEW", X: 150, Y: 80}

func TestGridAdapter_Forecast(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Hour)
	period := func(offset time.Duration, temp float64, wind, detail string) string {
		start := now.Add(offset)
		return `{"startTime":"` + start.Format(time.RFC3339) + `","endTime":"` + start.Add(12*time.Hour).Format(time.RFC3339) +
			`","temperature":` + formatFloat(temp) + `,"windSpeed":"` + wind + `","detailedForecast":"` + detail + `"}`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gridpoints/SEW/150,80/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body := `{"properties":{"periods":[` +
			period(0, 28, "5 to 10 mph", "Snow. New snow accumulation of 4 to 8 inches possible.") + `,` +
			period(12*time.Hour, 25, "10 mph", "Snow accumulation of around 3 inches.") + `,` +
			period(72*time.Hour, 30, "5 mph", "Snow accumulation of 10 to 20 inches possible.") +
			`]}}`
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := NewGridAdapter(newTestClient(nil), server.URL)
	forecast, err := adapter.Forecast(context.Background(), testGrid)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if forecast.TemperatureF == nil || *forecast.TemperatureF != 28 {
		t.Errorf("temperature = %v, want 28", forecast.TemperatureF)
	}
	if forecast.WindSpeedMph == nil || *forecast.WindSpeedMph != 10 {
		t.Errorf("wind = %v, want 10", forecast.WindSpeedMph)
	}
	// 4-8 midpoint (6) plus around-3 (3); the 72h period is past the window
	if forecast.SnowEstimate48h == nil || *forecast.SnowEstimate48h != 9 {
		t.Errorf("snow estimate = %v, want 9", forecast.SnowEstimate48h)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func TestGridAdapter_ForecastNoPeriods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{"periods":[]}}`))
	}))
	defer server.Close()

	adapter := NewGridAdapter(newTestClient(nil), server.URL)
	if _, err := adapter.Forecast(context.Background(), testGrid); err == nil {
		t.Fatal("expected error for empty periods")
	}
}

func TestGridAdapter_Gridded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gridpoints/SEW/150,80" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"properties":{
			"windGust":{"uom":"wmoUnit:km_h-1","values":[{"value":40}]},
			"relativeHumidity":{"uom":"wmoUnit:percent","values":[{"value":75}]},
			"visibility":{"uom":"wmoUnit:m","values":[{"value":8046.7}]},
			"skyCover":{"uom":"wmoUnit:percent","values":[{"value":90}]},
			"probabilityOfPrecipitation":{"uom":"wmoUnit:percent","values":[{"value":60}]}
		}}`))
	}))
	defer server.Close()

	adapter := NewGridAdapter(newTestClient(nil), server.URL)
	reading, err := adapter.Gridded(context.Background(), testGrid)
	if err != nil {
		t.Fatalf("Gridded failed: %v", err)
	}

	if reading.WindGustMph == nil || math.Abs(*reading.WindGustMph-24.85484) > 0.001 {
		t.Errorf("gust = %v, want ~24.85 mph", reading.WindGustMph)
	}
	if reading.VisibilityMiles == nil || math.Abs(*reading.VisibilityMiles-5.0) > 0.01 {
		t.Errorf("visibility = %v, want ~5 mi", reading.VisibilityMiles)
	}
	if reading.HumidityPct == nil || *reading.HumidityPct != 75 {
		t.Errorf("humidity = %v, want 75", reading.HumidityPct)
	}
	if reading.SkyCoverPct == nil || *reading.SkyCoverPct != 90 {
		t.Errorf("sky cover = %v, want 90", reading.SkyCoverPct)
	}
	if reading.PrecipProbabilityPct == nil || *reading.PrecipProbabilityPct != 60 {
		t.Errorf("precip = %v, want 60", reading.PrecipProbabilityPct)
	}
}

func TestGridAdapter_GriddedAllEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{}}`))
	}))
	defer server.Close()

	adapter := NewGridAdapter(newTestClient(nil), server.URL)
	if _, err := adapter.Gridded(context.Background(), testGrid); err == nil {
		t.Fatal("expected error when every series is empty")
	}
}

func TestParseWindSpeed(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"5 to 10 mph", 10, true},
		{"10 mph", 10, true},
		{"calm", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseWindSpeed(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseWindSpeed(%q) = (%f, %v), want (%f, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSnowAccumulation(t *testing.T) {
	tests := []struct {
		narrative string
		want      float64
	}{
		{"New snow accumulation of 4 to 8 inches possible.", 6},
		{"Snow accumulation of around 2 inches.", 2},
		{"Snow accumulation of 1 inch possible.", 1},
		{"Sunny, with a high near 45.", 0},
	}
	for _, tt := range tests {
		if got := parseSnowAccumulation(tt.narrative); got != tt.want {
			t.Errorf("parseSnowAccumulation(%q) = %f, want %f", tt.narrative, got, tt.want)
		}
	}
}

func TestGridAdapter_ForecastMissingTemperature(t *testing.T) {
	// A period without a temperature field must come back nil, not a
	// fabricated zero-degree reading.
	now := time.Now().UTC().Truncate(time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `{"properties":{"periods":[{"startTime":"` + now.Format(time.RFC3339) +
			`","endTime":"` + now.Add(12*time.Hour).Format(time.RFC3339) +
			`","windSpeed":"5 to 10 mph","detailedForecast":"Mostly cloudy."}]}}`
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := NewGridAdapter(newTestClient(nil), server.URL)
	forecast, err := adapter.Forecast(context.Background(), testGrid)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if forecast.TemperatureF != nil {
		t.Errorf("temperature = %v, want nil for an absent field", *forecast.TemperatureF)
	}
	if forecast.WindSpeedMph == nil || *forecast.WindSpeedMph != 10 {
		t.Errorf("wind = %v, want 10", forecast.WindSpeedMph)
	}
	if forecast.SnowEstimate48h == nil || *forecast.SnowEstimate48h != 0 {
		t.Errorf("snow estimate = %v, want measured zero", forecast.SnowEstimate48h)
	}
}

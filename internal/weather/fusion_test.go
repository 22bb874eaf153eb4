package weather

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

type stubTelemetry struct {
	reading *TelemetryReading
	err     error
}

func (s *stubTelemetry) Current(ctx context.Context, stationID string) (*TelemetryReading, error) {
	return s.reading, s.err
}

type stubBasic struct {
	forecast *BasicForecast
	err      error
}

func (s *stubBasic) Forecast(ctx context.Context, grid model.GridPoint) (*BasicForecast, error) {
	return s.forecast, s.err
}

type stubExtended struct {
	reading *ExtendedReading
	err     error
}

func (s *stubExtended) Gridded(ctx context.Context, grid model.GridPoint) (*ExtendedReading, error) {
	return s.reading, s.err
}

type stubHourly struct {
	records []HourlyRecord
	err     error
}

func (s *stubHourly) Hourly48h(ctx context.Context, lat, lng float64) ([]HourlyRecord, error) {
	return s.records, s.err
}

type stubFreezing struct {
	level *float64
	err   error
}

func (s *stubFreezing) FreezingLevelFt(ctx context.Context, lat, lng float64) (*float64, error) {
	return s.level, s.err
}

var errDown = errors.New("provider down")

func fullSources() (*stubTelemetry, *stubBasic, *stubExtended, *stubHourly, *stubFreezing) {
	return &stubTelemetry{reading: &TelemetryReading{
			Snowfall24h: model.Float(11),
			Snowfall48h: model.Float(18),
		}},
		&stubBasic{forecast: &BasicForecast{
			TemperatureF:    model.Float(28),
			WindSpeedMph:    model.Float(8),
			SnowEstimate48h: model.Float(5),
		}},
		&stubExtended{reading: &ExtendedReading{
			WindGustMph:          model.Float(20),
			HumidityPct:          model.Float(70),
			VisibilityMiles:      model.Float(6),
			SkyCoverPct:          model.Float(40),
			PrecipProbabilityPct: model.Float(55),
		}},
		&stubHourly{records: []HourlyRecord{
			{TemperatureF: 30, PrecipProbabilityPct: model.Float(80), SnowfallIn: model.Float(0.5)},
			{TemperatureF: 29, PrecipProbabilityPct: model.Float(70), SnowfallIn: model.Float(0.7)},
			{TemperatureF: 40, PrecipProbabilityPct: model.Float(90), SnowfallIn: model.Float(1.0)}, // too warm
			{TemperatureF: 28, PrecipProbabilityPct: model.Float(20), SnowfallIn: model.Float(1.0)}, // too dry
		}},
		&stubFreezing{level: model.Float(2500)}
}

func testMountain() model.MountainSourceConfig {
	return model.MountainSourceConfig{
		ID:      "baker",
		Lat:     48.8573,
		Lng:     -121.6659,
		Station: "MB-HEATHER",
		Grid:    model.GridPoint{Office: "SEW", X: 150, Y: 80},
	}
}

func TestFusion_AllSourcesAnswer(t *testing.T) {
	tel, basic, ext, hourly, freezing := fullSources()
	f := NewFusion(tel, basic, ext, hourly, freezing, zap.NewNop())

	snap := f.Fuse(context.Background(), testMountain())

	if !snap.Sources.Telemetry || !snap.Sources.ForecastBasic || !snap.Sources.ForecastExtended ||
		!snap.Sources.HourlyForecast || !snap.Sources.IndependentForecast {
		t.Errorf("expected all sources available, got %+v", snap.Sources)
	}
	if snap.Snowfall24h == nil || *snap.Snowfall24h != 11 {
		t.Errorf("snowfall 24h = %v", snap.Snowfall24h)
	}
	if snap.Temperature == nil || *snap.Temperature != 28 {
		t.Errorf("temperature = %v", snap.Temperature)
	}
	if snap.WindGust == nil || *snap.WindGust != 20 {
		t.Errorf("gust = %v", snap.WindGust)
	}
	if snap.FreezingLevelFt == nil || *snap.FreezingLevelFt != 2500 {
		t.Errorf("freezing level = %v", snap.FreezingLevelFt)
	}

	// Hourly sum counts only the cold-and-likely hours: 0.5 + 0.7
	if snap.UpcomingSnow48h == nil || math.Abs(*snap.UpcomingSnow48h-1.2) > 1e-9 {
		t.Errorf("upcoming snow = %v, want 1.2", snap.UpcomingSnow48h)
	}
}

func TestFusion_PartialFailure(t *testing.T) {
	tel, basic, ext, hourly, freezing := fullSources()
	tel.reading, tel.err = nil, errDown
	ext.reading, ext.err = nil, errDown

	f := NewFusion(tel, basic, ext, hourly, freezing, zap.NewNop())
	snap := f.Fuse(context.Background(), testMountain())

	if snap.Sources.Telemetry || snap.Sources.ForecastExtended {
		t.Errorf("failed sources should be flagged unavailable: %+v", snap.Sources)
	}
	if snap.Snowfall24h != nil || snap.WindGust != nil {
		t.Error("failed sources must not leave values behind")
	}
	if !snap.Sources.ForecastBasic || snap.Temperature == nil {
		t.Error("surviving sources should still populate the snapshot")
	}
}

func TestFusion_AllFail(t *testing.T) {
	f := NewFusion(
		&stubTelemetry{err: errDown},
		&stubBasic{err: errDown},
		&stubExtended{err: errDown},
		&stubHourly{err: errDown},
		&stubFreezing{err: errDown},
		zap.NewNop())

	snap := f.Fuse(context.Background(), testMountain())

	if snap == nil {
		t.Fatal("fusion must not fail outright")
	}
	if snap.MountainID != "baker" {
		t.Errorf("mountain id = %s", snap.MountainID)
	}
	empty := model.SourceAvailability{}
	if snap.Sources != empty {
		t.Errorf("expected no sources available, got %+v", snap.Sources)
	}
	if snap.UpcomingSnow48h != nil {
		t.Error("upcoming snow should be absent when nothing answered")
	}
}

func TestUpcomingSnow_Priority(t *testing.T) {
	basic := &BasicForecast{SnowEstimate48h: model.Float(5)}

	// Hourly answered: its sum wins even when zero
	quiet := []HourlyRecord{{TemperatureF: 45, PrecipProbabilityPct: model.Float(10), SnowfallIn: model.Float(0)}}
	got := upcomingSnow(true, quiet, basic)
	if got == nil || *got != 0 {
		t.Errorf("hourly zero should beat the basic estimate, got %v", got)
	}

	// Hourly failed: fall back to the basic forecast
	got = upcomingSnow(false, nil, basic)
	if got == nil || *got != 5 {
		t.Errorf("expected basic fallback of 5, got %v", got)
	}

	// Neither answered
	if got = upcomingSnow(false, nil, nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

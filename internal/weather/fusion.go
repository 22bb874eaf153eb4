package weather

import (
	"context"
	"sync"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"go.uber.org/zap"
)

// Thresholds for counting a forecast hour toward upcoming snow: cold enough to
// fall as snow and likely enough to bother.
const (
	hourlySnowMaxTempF    = 35.0
	hourlySnowMinPrecipPP = 30.0
)

// Fusion queries all weather/telemetry adapters for one mountain in parallel
// and merges whatever subset answers into a ConditionsSnapshot. A source that
// fails simply clears its availability flag; fusion itself never fails.
type Fusion struct {
	telemetry TelemetrySource
	basic     BasicForecastSource
	extended  ExtendedSource
	hourly    HourlySource
	freezing  FreezingLevelSource
	logger    *zap.Logger
}

// NewFusion wires the fusion layer over its five sources
func NewFusion(telemetry TelemetrySource, basic BasicForecastSource, extended ExtendedSource,
	hourly HourlySource, freezing FreezingLevelSource, logger *zap.Logger) *Fusion {
	return &Fusion{
		telemetry: telemetry,
		basic:     basic,
		extended:  extended,
		hourly:    hourly,
		freezing:  freezing,
		logger:    logger,
	}
}

// Fuse builds the fused snapshot for one mountain. Each adapter runs in its
// own goroutine writing to its own slot; the merge happens only after all have
// settled, so no locking is needed.
func (f *Fusion) Fuse(ctx context.Context, cfg model.MountainSourceConfig) *model.ConditionsSnapshot {
	var (
		wg sync.WaitGroup

		telemetry *TelemetryReading
		basic     *BasicForecast
		extended  *ExtendedReading
		hourly    []HourlyRecord
		hourlyOK  bool
		freezing  *float64
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		reading, err := f.telemetry.Current(ctx, cfg.Station)
		if err != nil {
			f.debugUnavailable(cfg.ID, "telemetry", err)
			return
		}
		telemetry = reading
	}()
	go func() {
		defer wg.Done()
		forecast, err := f.basic.Forecast(ctx, cfg.Grid)
		if err != nil {
			f.debugUnavailable(cfg.ID, "forecast_basic", err)
			return
		}
		basic = forecast
	}()
	go func() {
		defer wg.Done()
		reading, err := f.extended.Gridded(ctx, cfg.Grid)
		if err != nil {
			f.debugUnavailable(cfg.ID, "forecast_extended", err)
			return
		}
		extended = reading
	}()
	go func() {
		defer wg.Done()
		records, err := f.hourly.Hourly48h(ctx, cfg.Lat, cfg.Lng)
		if err != nil {
			f.debugUnavailable(cfg.ID, "hourly_forecast", err)
			return
		}
		hourly, hourlyOK = records, true
	}()
	go func() {
		defer wg.Done()
		level, err := f.freezing.FreezingLevelFt(ctx, cfg.Lat, cfg.Lng)
		if err != nil {
			f.debugUnavailable(cfg.ID, "independent_forecast", err)
			return
		}
		freezing = level
	}()
	wg.Wait()

	snap := &model.ConditionsSnapshot{
		MountainID: cfg.ID,
		TakenAt:    time.Now().UTC(),
	}

	if telemetry != nil {
		snap.Sources.Telemetry = true
		snap.Snowfall24h = telemetry.Snowfall24h
		snap.Snowfall48h = telemetry.Snowfall48h
	}
	if basic != nil {
		snap.Sources.ForecastBasic = true
		snap.Temperature = basic.TemperatureF
		snap.WindSpeed = basic.WindSpeedMph
	}
	if extended != nil {
		snap.Sources.ForecastExtended = true
		snap.WindGust = extended.WindGustMph
		snap.Humidity = extended.HumidityPct
		snap.VisibilityMiles = extended.VisibilityMiles
		snap.SkyCoverPercent = extended.SkyCoverPct
		snap.PrecipProbabilityPercent = extended.PrecipProbabilityPct
	}
	if hourlyOK {
		snap.Sources.HourlyForecast = true
	}
	if freezing != nil {
		snap.Sources.IndependentForecast = true
		snap.FreezingLevelFt = freezing
	}

	snap.UpcomingSnow48h = upcomingSnow(hourlyOK, hourly, basic)

	return snap
}

// upcomingSnow applies the priority rule: hourly-derived estimate when the
// hourly adapter answered, the basic forecast's estimate otherwise, absent
// when neither did.
func upcomingSnow(hourlyOK bool, hourly []HourlyRecord, basic *BasicForecast) *float64 {
	if hourlyOK {
		total := 0.0
		for _, rec := range hourly {
			if rec.SnowfallIn == nil || rec.PrecipProbabilityPct == nil {
				continue
			}
			if rec.TemperatureF <= hourlySnowMaxTempF && *rec.PrecipProbabilityPct > hourlySnowMinPrecipPP {
				total += *rec.SnowfallIn
			}
		}
		return model.Float(total)
	}
	if basic != nil {
		return basic.SnowEstimate48h
	}
	return nil
}

func (f *Fusion) debugUnavailable(mountainID, source string, err error) {
	f.logger.Debug("weather source unavailable",
		zap.String("mountain", mountainID),
		zap.String("source", source),
		zap.Error(err))
}

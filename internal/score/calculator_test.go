package score

import (
	"math"
	"testing"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

var bakerElevation = model.Elevation{BaseFt: 3500, SummitFt: 5089}

// deepPowderSnapshot is a storm-cycle day: heavy recent snow, ideal
// temperature, light wind, snow still falling, freezing level below the base.
func deepPowderSnapshot() model.ConditionsSnapshot {
	return model.ConditionsSnapshot{
		MountainID:               "baker",
		TakenAt:                  time.Now().UTC(),
		Snowfall24h:              model.Float(14),
		Snowfall48h:              model.Float(24),
		Temperature:              model.Float(28),
		WindSpeed:                model.Float(5),
		WindGust:                 model.Float(10),
		Humidity:                 model.Float(70),
		VisibilityMiles:          model.Float(6),
		SkyCoverPercent:          model.Float(40),
		PrecipProbabilityPercent: model.Float(55),
		UpcomingSnow48h:          model.Float(8),
		FreezingLevelFt:          model.Float(2000),
		Sources: model.SourceAvailability{
			Telemetry:           true,
			ForecastBasic:       true,
			ForecastExtended:    true,
			HourlyForecast:      true,
			IndependentForecast: true,
		},
	}
}

// springSlushSnapshot is a marginal mid-tier day
func springSlushSnapshot() model.ConditionsSnapshot {
	return model.ConditionsSnapshot{
		MountainID:               "snoqualmie",
		TakenAt:                  time.Now().UTC(),
		Snowfall24h:              model.Float(4),
		Snowfall48h:              model.Float(5),
		Temperature:              model.Float(38),
		WindSpeed:                model.Float(15),
		WindGust:                 model.Float(30),
		Humidity:                 model.Float(40),
		VisibilityMiles:          model.Float(3),
		SkyCoverPercent:          model.Float(80),
		PrecipProbabilityPercent: model.Float(20),
		UpcomingSnow48h:          model.Float(4),
		FreezingLevelFt:          model.Float(4500),
		Sources: model.SourceAvailability{
			Telemetry:           true,
			ForecastBasic:       true,
			ForecastExtended:    true,
			HourlyForecast:      true,
			IndependentForecast: true,
		},
	}
}

func TestCalculate_DeepPowderDay(t *testing.T) {
	calc := NewCalculator()
	powder := calc.Calculate("baker", deepPowderSnapshot(), bakerElevation)

	if powder.Band != model.BandSendIt {
		t.Errorf("band = %s, score %.2f, want send_it", powder.Band, powder.Score)
	}
	if powder.Score < 9.0 || powder.Score > 10.0 {
		t.Errorf("score = %.3f, want deep in the send-it range", powder.Score)
	}
	if len(powder.Factors) != 8 {
		t.Errorf("expected all 8 factors applied, got %d", len(powder.Factors))
	}
}

func TestCalculate_MidTierDay(t *testing.T) {
	calc := NewCalculator()
	powder := calc.Calculate("snoqualmie", springSlushSnapshot(), model.Elevation{BaseFt: 4000, SummitFt: 5400})

	if powder.Band != model.BandDecent {
		t.Errorf("band = %s, score %.2f, want decent", powder.Band, powder.Score)
	}
}

func TestCalculate_ContributionsSumToScore(t *testing.T) {
	calc := NewCalculator()
	for _, snap := range []model.ConditionsSnapshot{deepPowderSnapshot(), springSlushSnapshot()} {
		powder := calc.Calculate(snap.MountainID, snap, bakerElevation)

		sum := 0.0
		weightSum := 0.0
		for _, f := range powder.Factors {
			sum += f.Contribution
			weightSum += f.Weight
		}
		if math.Abs(sum-powder.Score) > 1e-9 {
			t.Errorf("%s: contributions sum %.6f != score %.6f", snap.MountainID, sum, powder.Score)
		}
		if math.Abs(weightSum-1.0) > 1e-6 {
			t.Errorf("%s: weights sum to %.6f, want 1.0", snap.MountainID, weightSum)
		}
	}
}

func TestCalculate_RenormalizesMissingFactors(t *testing.T) {
	// Only the basic and extended forecasts answered: no telemetry, no
	// upcoming snow, no freezing level.
	snap := model.ConditionsSnapshot{
		MountainID:               "stevens",
		Temperature:              model.Float(30),
		WindSpeed:                model.Float(5),
		Humidity:                 model.Float(70),
		VisibilityMiles:          model.Float(6),
		SkyCoverPercent:          model.Float(10),
		PrecipProbabilityPercent: model.Float(10),
		Sources: model.SourceAvailability{
			ForecastBasic:    true,
			ForecastExtended: true,
		},
	}

	calc := NewCalculator()
	powder := calc.Calculate("stevens", snap, bakerElevation)

	if len(powder.Factors) != 4 {
		t.Fatalf("expected 4 applied factors, got %d", len(powder.Factors))
	}
	weightSum := 0.0
	for _, f := range powder.Factors {
		weightSum += f.Weight
		if f.Name == "fresh_snow_24h" || f.Name == "snow_line" {
			t.Errorf("factor %s should be absent", f.Name)
		}
	}
	if math.Abs(weightSum-1.0) > 1e-6 {
		t.Errorf("renormalized weights sum to %.6f, want 1.0", weightSum)
	}

	// Clear weather with decent temps should not be dragged down by the
	// missing snow factors.
	if powder.Score < 8 {
		t.Errorf("score = %.2f, missing factors must not count as zeroes", powder.Score)
	}
}

func TestCalculate_EmptySnapshot(t *testing.T) {
	calc := NewCalculator()
	powder := calc.Calculate("ghost", model.ConditionsSnapshot{MountainID: "ghost"}, bakerElevation)

	if powder.Score != 0 {
		t.Errorf("score = %.2f, want 0", powder.Score)
	}
	if len(powder.Factors) != 0 {
		t.Errorf("expected no factors, got %d", len(powder.Factors))
	}
	if powder.Verdict != "No conditions data available" {
		t.Errorf("verdict = %q", powder.Verdict)
	}
}

func TestCalculate_Bounded(t *testing.T) {
	extremes := []model.ConditionsSnapshot{
		{
			MountainID:      "hot",
			Snowfall24h:     model.Float(0),
			Snowfall48h:     model.Float(0),
			Temperature:     model.Float(60),
			WindSpeed:       model.Float(80),
			UpcomingSnow48h: model.Float(0),
			FreezingLevelFt: model.Float(10000),
			VisibilityMiles: model.Float(0.1),
			Sources: model.SourceAvailability{
				Telemetry: true, ForecastBasic: true, ForecastExtended: true,
				HourlyForecast: true, IndependentForecast: true,
			},
		},
		{
			MountainID:      "nuking",
			Snowfall24h:     model.Float(60),
			Snowfall48h:     model.Float(100),
			Temperature:     model.Float(30),
			WindSpeed:       model.Float(0),
			UpcomingSnow48h: model.Float(50),
			FreezingLevelFt: model.Float(0),
			VisibilityMiles: model.Float(100),
			Sources: model.SourceAvailability{
				Telemetry: true, ForecastBasic: true, ForecastExtended: true,
				HourlyForecast: true, IndependentForecast: true,
			},
		},
	}

	calc := NewCalculator()
	for _, snap := range extremes {
		powder := calc.Calculate(snap.MountainID, snap, bakerElevation)
		if powder.Score < 0 || powder.Score > 10 {
			t.Errorf("%s: score %.2f out of bounds", snap.MountainID, powder.Score)
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator()
	snap := deepPowderSnapshot()

	first := calc.Calculate("baker", snap, bakerElevation)
	second := calc.Calculate("baker", snap, bakerElevation)
	if first.Score != second.Score {
		t.Errorf("same snapshot scored differently: %.6f vs %.6f", first.Score, second.Score)
	}
}

func TestSubTemperature(t *testing.T) {
	tests := []struct {
		temp float64
		want float64
	}{
		{28, 10},
		{32, 10},
		{30, 10},
		{18, 10 - 10*0.3},
		{42, 10 - 10*0.5},
		{60, 0},
	}
	for _, tt := range tests {
		snap := model.ConditionsSnapshot{Temperature: model.Float(tt.temp)}
		got, _, ok := subTemperature(snap)
		if !ok || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("subTemperature(%.0f) = %.2f, want %.2f", tt.temp, got, tt.want)
		}
	}
}

func TestSubWind_GustDominates(t *testing.T) {
	snap := model.ConditionsSnapshot{
		WindSpeed: model.Float(5),
		WindGust:  model.Float(40),
	}
	got, _, ok := subWind(snap)
	if !ok {
		t.Fatal("expected wind factor to apply")
	}
	// effective wind = max(5, 40*0.8) = 32; 10 - 22*0.25 = 4.5
	if math.Abs(got-4.5) > 1e-9 {
		t.Errorf("subWind = %.2f, want 4.5", got)
	}
}

func TestSubSnowline(t *testing.T) {
	elev := model.Elevation{BaseFt: 4000}
	tests := []struct {
		freezing float64
		want     float64
	}{
		{2500, 10}, // well below base
		{3000, 10}, // exactly at the safe margin
		{6000, 0},  // at the rain margin
		{4500, 5},  // midpoint of the transition
	}
	for _, tt := range tests {
		snap := model.ConditionsSnapshot{FreezingLevelFt: model.Float(tt.freezing)}
		got, _, ok := subSnowline(snap, elev)
		if !ok || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("subSnowline(%.0f) = %.2f, want %.2f", tt.freezing, got, tt.want)
		}
	}
}

func TestSubAtmospheric_SnowExpectedSkipsSkyPenalty(t *testing.T) {
	overcastStorm := model.ConditionsSnapshot{
		SkyCoverPercent:          model.Float(100),
		PrecipProbabilityPercent: model.Float(80),
		Temperature:              model.Float(25),
	}
	stormSub, _, _ := subAtmospheric(overcastStorm)

	overcastDry := model.ConditionsSnapshot{
		SkyCoverPercent:          model.Float(100),
		PrecipProbabilityPercent: model.Float(10),
		Temperature:              model.Float(25),
	}
	drySub, _, _ := subAtmospheric(overcastDry)

	if stormSub <= drySub {
		t.Errorf("overcast during a storm (%.2f) should outscore dry overcast (%.2f)", stormSub, drySub)
	}
}

func TestSubAtmospheric_RainRisk(t *testing.T) {
	warmWet := model.ConditionsSnapshot{
		PrecipProbabilityPercent: model.Float(80),
		Temperature:              model.Float(40),
	}
	warmSub, _, _ := subAtmospheric(warmWet)

	coldWet := model.ConditionsSnapshot{
		PrecipProbabilityPercent: model.Float(80),
		Temperature:              model.Float(25),
	}
	coldSub, _, _ := subAtmospheric(coldWet)

	if warmSub >= coldSub {
		t.Errorf("warm rain risk (%.2f) should score below cold snow (%.2f)", warmSub, coldSub)
	}
}

func TestSubFreshRequiresTelemetry(t *testing.T) {
	// A snowfall value without the telemetry flag set is inconsistent input;
	// the factor refuses to apply rather than trust it.
	snap := model.ConditionsSnapshot{Snowfall24h: model.Float(10)}
	if _, _, ok := subFresh24(snap); ok {
		t.Error("fresh snow factor applied without telemetry availability")
	}

	snap.Sources.Telemetry = true
	if _, _, ok := subFresh24(snap); !ok {
		t.Error("fresh snow factor should apply with telemetry available")
	}
}

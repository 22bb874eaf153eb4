package score

import (
	"fmt"
	"math"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// Normalization constants. Each factor maps its raw measurement onto a 0-10
// sub-score before weighting.
const (
	fresh24SaturationIn  = 10.0 // 10" in 24h is a full-score powder day
	recent48SaturationIn = 30.0
	upcomingSaturationIn = 10.0

	tempIdealLowF  = 28.0
	tempIdealHighF = 32.0
	tempColdSlope  = 0.3 // points lost per degree below the ideal band
	tempWarmSlope  = 0.5 // warmer hurts faster: wet, unstable snow

	gustFactor        = 0.8
	lightWindMph      = 10.0
	windSlopePerMph   = 0.25 // zero score by 50 mph effective
	humidityIdealLow  = 60.0
	humidityIdealHigh = 80.0
	humiditySlope     = 0.2

	// Freezing level relative to base elevation: all-snow regime below the
	// low margin, full rain risk above the high margin, linear between.
	snowlineSafeMarginFt = 1000.0
	snowlineRainMarginFt = 2000.0

	// Precipitation probability above this counts as "snow is expected", which
	// stops cloud cover from being penalized. The upstream material never
	// pinned this; 50% is the documented choice here.
	snowExpectedPrecipPct = 50.0

	// Precip probability below this is treated as a quiet, stable sky.
	quietPrecipPct = 30.0
	// Above this temperature, high precip probability signals rain risk.
	rainRiskTempF = 35.0
)

func clampSub(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

func linearSaturation(v, saturation float64) float64 {
	return clampSub(v / saturation * 10)
}

func subFresh24(snap model.ConditionsSnapshot) (float64, string, bool) {
	if !snap.Sources.Telemetry || snap.Snowfall24h == nil {
		return 0, "", false
	}
	v := *snap.Snowfall24h
	return linearSaturation(v, fresh24SaturationIn), fmt.Sprintf("%.1f\" in the last 24 hours", v), true
}

func subRecent48(snap model.ConditionsSnapshot) (float64, string, bool) {
	if !snap.Sources.Telemetry || snap.Snowfall48h == nil {
		return 0, "", false
	}
	v := *snap.Snowfall48h
	return linearSaturation(v, recent48SaturationIn), fmt.Sprintf("%.1f\" in the last 48 hours", v), true
}

func subTemperature(snap model.ConditionsSnapshot) (float64, string, bool) {
	if snap.Temperature == nil {
		return 0, "", false
	}
	t := *snap.Temperature
	var sub float64
	switch {
	case t >= tempIdealLowF && t <= tempIdealHighF:
		sub = 10
	case t < tempIdealLowF:
		sub = clampSub(10 - (tempIdealLowF-t)*tempColdSlope)
	default:
		sub = clampSub(10 - (t-tempIdealHighF)*tempWarmSlope)
	}
	return sub, fmt.Sprintf("%.0f°F", t), true
}

// effectiveWind blends sustained speed with gusts; gusts matter almost as much
// as sustained wind for lift holds and wind-affected snow.
func effectiveWind(snap model.ConditionsSnapshot) float64 {
	eff := *snap.WindSpeed
	if snap.WindGust != nil {
		eff = math.Max(eff, *snap.WindGust*gustFactor)
	}
	return eff
}

func subWind(snap model.ConditionsSnapshot) (float64, string, bool) {
	if snap.WindSpeed == nil {
		return 0, "", false
	}
	eff := effectiveWind(snap)
	sub := 10.0
	if eff > lightWindMph {
		sub = clampSub(10 - (eff-lightWindMph)*windSlopePerMph)
	}
	return sub, fmt.Sprintf("%.0f mph effective wind", eff), true
}

func subUpcoming(snap model.ConditionsSnapshot) (float64, string, bool) {
	if snap.UpcomingSnow48h == nil {
		return 0, "", false
	}
	v := *snap.UpcomingSnow48h
	return linearSaturation(v, upcomingSaturationIn), fmt.Sprintf("%.1f\" expected in the next 48 hours", v), true
}

func subSnowline(snap model.ConditionsSnapshot, elev model.Elevation) (float64, string, bool) {
	if snap.FreezingLevelFt == nil {
		return 0, "", false
	}
	fl := *snap.FreezingLevelFt
	var sub float64
	switch {
	case fl <= elev.BaseFt-snowlineSafeMarginFt:
		sub = 10
	case fl >= elev.BaseFt+snowlineRainMarginFt:
		sub = 0
	default:
		span := snowlineSafeMarginFt + snowlineRainMarginFt
		sub = clampSub((elev.BaseFt + snowlineRainMarginFt - fl) / span * 10)
	}
	desc := fmt.Sprintf("freezing level %.0f ft vs %.0f ft base", fl, elev.BaseFt)
	return sub, desc, true
}

func subVisibility(snap model.ConditionsSnapshot) (float64, string, bool) {
	if snap.VisibilityMiles == nil {
		return 0, "", false
	}
	v := *snap.VisibilityMiles
	var sub float64
	switch {
	case v >= 5:
		sub = 10
	case v >= 2:
		sub = 7
	case v >= 0.5:
		sub = 4
	default:
		sub = 2
	}
	return sub, fmt.Sprintf("%.1f mi visibility", v), true
}

// subAtmospheric blends sky cover, humidity, and precipitation probability.
// Cloud cover is not penalized when snow is expected; precip probability is
// rewarded when it means snow and penalized when it means rain.
func subAtmospheric(snap model.ConditionsSnapshot) (float64, string, bool) {
	if snap.SkyCoverPercent == nil && snap.Humidity == nil && snap.PrecipProbabilityPercent == nil {
		return 0, "", false
	}

	snowExpected := snap.PrecipProbabilityPercent != nil &&
		*snap.PrecipProbabilityPercent > snowExpectedPrecipPct

	var parts []float64
	if snap.SkyCoverPercent != nil {
		if snowExpected {
			parts = append(parts, 10)
		} else {
			parts = append(parts, clampSub(10-*snap.SkyCoverPercent/10))
		}
	}
	if snap.Humidity != nil {
		h := *snap.Humidity
		switch {
		case h >= humidityIdealLow && h <= humidityIdealHigh:
			parts = append(parts, 10)
		case h < humidityIdealLow:
			parts = append(parts, clampSub(10-(humidityIdealLow-h)*humiditySlope))
		default:
			parts = append(parts, clampSub(10-(h-humidityIdealHigh)*humiditySlope))
		}
	}
	if snap.PrecipProbabilityPercent != nil {
		p := *snap.PrecipProbabilityPercent
		cold := snap.Temperature != nil && *snap.Temperature <= rainRiskTempF
		switch {
		case p <= quietPrecipPct:
			parts = append(parts, 6)
		case cold:
			parts = append(parts, clampSub(5+p/20))
		case snap.Temperature == nil:
			parts = append(parts, 5)
		default:
			parts = append(parts, clampSub(5-p/20))
		}
	}

	sum := 0.0
	for _, p := range parts {
		sum += p
	}
	sub := sum / float64(len(parts))
	return sub, fmt.Sprintf("sky/humidity/precip composite of %d inputs", len(parts)), true
}

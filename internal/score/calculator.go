package score

import (
	"math"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// Calculator turns a fused conditions snapshot plus elevation metadata into a
// 0-10 powder score with a transparent per-factor breakdown. It is a pure,
// stateless transform: same snapshot in, same score out.
type Calculator struct{}

// NewCalculator creates a calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// factorSpec binds a factor's name and base weight to its normalization.
// Base weights sum to 1.0 when every factor's inputs are present.
type factorSpec struct {
	name       string
	baseWeight float64
	compute    func(snap model.ConditionsSnapshot, elev model.Elevation) (sub float64, desc string, ok bool)
}

func wrap(fn func(model.ConditionsSnapshot) (float64, string, bool)) func(model.ConditionsSnapshot, model.Elevation) (float64, string, bool) {
	return func(snap model.ConditionsSnapshot, _ model.Elevation) (float64, string, bool) {
		return fn(snap)
	}
}

var factorSpecs = []factorSpec{
	{"fresh_snow_24h", 0.25, wrap(subFresh24)},
	{"recent_snow_48h", 0.12, wrap(subRecent48)},
	{"temperature", 0.10, wrap(subTemperature)},
	{"wind", 0.08, wrap(subWind)},
	{"upcoming_snow_48h", 0.15, wrap(subUpcoming)},
	{"snow_line", 0.18, subSnowline},
	{"visibility", 0.07, wrap(subVisibility)},
	{"atmospheric", 0.05, wrap(subAtmospheric)},
}

type appliedFactor struct {
	spec factorSpec
	sub  float64
	desc string
}

// Calculate computes the powder score. Factors whose inputs are absent are
// excluded entirely and the remaining weights renormalized proportionally, so
// missing data narrows the factor set instead of silently dragging the score
// toward zero.
func (c *Calculator) Calculate(mountainID string, snap model.ConditionsSnapshot, elev model.Elevation) model.PowderScore {
	var applied []appliedFactor
	totalWeight := 0.0

	for _, spec := range factorSpecs {
		sub, desc, ok := spec.compute(snap, elev)
		if !ok {
			continue
		}
		applied = append(applied, appliedFactor{spec: spec, sub: sub, desc: desc})
		totalWeight += spec.baseWeight
	}

	result := model.PowderScore{
		MountainID: mountainID,
		ComputedAt: time.Now().UTC(),
	}

	if len(applied) == 0 || totalWeight == 0 {
		result.Band = model.BandForScore(0)
		result.Verdict = "No conditions data available"
		return result
	}

	score := 0.0
	for _, f := range applied {
		weight := f.spec.baseWeight / totalWeight
		contribution := f.sub * weight
		score += contribution
		result.Factors = append(result.Factors, model.ScoreFactor{
			Name:         f.spec.name,
			Weight:       weight,
			Contribution: contribution,
			Description:  f.desc,
			IsPositive:   f.sub >= 5,
		})
	}

	result.Score = math.Max(0, math.Min(10, score))
	result.Band = model.BandForScore(result.Score)
	result.Verdict = result.Band.DefaultVerdict()
	return result
}

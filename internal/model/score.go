package model

import "time"

// VerdictBand classifies a powder score so callers can render their own wording
type VerdictBand string

const (
	BandSendIt   VerdictBand = "send_it"  // score >= 8
	BandGood     VerdictBand = "good"     // 6 <= score < 8
	BandDecent   VerdictBand = "decent"   // 4 <= score < 6
	BandWait     VerdictBand = "wait"     // 2 <= score < 4
	BandMarginal VerdictBand = "marginal" // score < 2
)

// BandForScore maps a 0-10 score onto its verdict band
func BandForScore(score float64) VerdictBand {
	switch {
	case score >= 8:
		return BandSendIt
	case score >= 6:
		return BandGood
	case score >= 4:
		return BandDecent
	case score >= 2:
		return BandWait
	default:
		return BandMarginal
	}
}

// DefaultVerdict returns the stock wording for a band. Presentation layers may
// substitute their own copy; the band itself is the contract.
func (b VerdictBand) DefaultVerdict() string {
	switch b {
	case BandSendIt:
		return "Send it - all-time conditions"
	case BandGood:
		return "Good conditions"
	case BandDecent:
		return "Decent day, stick to groomed runs"
	case BandWait:
		return "Consider waiting for a refresh"
	default:
		return "Marginal conditions"
	}
}

// ScoreFactor is one weighted, normalized input to the powder score.
// Weight is the renormalized fraction of the applied factor set (sums to 1.0)
// and Contribution is weight * normalized sub-score, already on the 0-10 scale.
type ScoreFactor struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description"`
	IsPositive   bool    `json:"is_positive"`
}

// PowderScore is the calculator's output: a 0-10 score, a verdict, and the
// ordered per-factor breakdown that produced it.
type PowderScore struct {
	MountainID string        `json:"mountain_id"`
	Score      float64       `json:"score"`
	Verdict    string        `json:"verdict"`
	Band       VerdictBand   `json:"band"`
	Factors    []ScoreFactor `json:"factors"`
	ComputedAt time.Time     `json:"computed_at"`
}

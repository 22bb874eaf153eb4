package model

import (
	"fmt"
	"time"
)

// ScrapeResult is the outcome of one source adapter invocation.
// When Success is false the status fields are undefined and Error explains
// what went wrong; results are immutable once produced.
type ScrapeResult struct {
	MountainID  string    `json:"mountain_id"`
	Success     bool      `json:"success"`
	IsOpen      bool      `json:"is_open"`
	LiftsOpen   int       `json:"lifts_open"`
	LiftsTotal  int       `json:"lifts_total"`
	RunsOpen    int       `json:"runs_open"`
	RunsTotal   int       `json:"runs_total"`
	PercentOpen *float64  `json:"percent_open,omitempty"`
	Message     string    `json:"message,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at"`
	DurationMs  int64     `json:"duration_ms"`
	Error       string    `json:"error,omitempty"`
}

// Validate checks the structural invariants of a scrape result
func (r ScrapeResult) Validate() error {
	if r.MountainID == "" {
		return fmt.Errorf("scrape result missing mountain id")
	}
	if !r.Success {
		if r.Error == "" {
			return fmt.Errorf("%s: failed result must carry an error", r.MountainID)
		}
		return nil
	}
	if r.LiftsOpen < 0 || r.RunsOpen < 0 {
		return fmt.Errorf("%s: negative open counts", r.MountainID)
	}
	if r.LiftsOpen > r.LiftsTotal {
		return fmt.Errorf("%s: lifts open %d exceeds total %d", r.MountainID, r.LiftsOpen, r.LiftsTotal)
	}
	if r.RunsOpen > r.RunsTotal {
		return fmt.Errorf("%s: runs open %d exceeds total %d", r.MountainID, r.RunsOpen, r.RunsTotal)
	}
	return nil
}

// FailedScrape builds a failure result for a mountain
func FailedScrape(mountainID string, started time.Time, errMsg string) ScrapeResult {
	return ScrapeResult{
		MountainID: mountainID,
		Success:    false,
		ScrapedAt:  started,
		DurationMs: time.Since(started).Milliseconds(),
		Error:      errMsg,
	}
}

// RunSummary aggregates one orchestration pass over all enabled mountains.
// Results keep the registry's insertion order for display stability.
type RunSummary struct {
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
	TotalMountains  int            `json:"total_mountains"`
	SuccessfulCount int            `json:"successful_count"`
	FailedCount     int            `json:"failed_count"`
	Results         []ScrapeResult `json:"results"`
}

// Validate checks that the summary counts are consistent
func (s RunSummary) Validate() error {
	if s.SuccessfulCount+s.FailedCount != s.TotalMountains {
		return fmt.Errorf("summary counts inconsistent: %d + %d != %d",
			s.SuccessfulCount, s.FailedCount, s.TotalMountains)
	}
	if len(s.Results) != s.TotalMountains {
		return fmt.Errorf("summary holds %d results for %d mountains", len(s.Results), s.TotalMountains)
	}
	return nil
}

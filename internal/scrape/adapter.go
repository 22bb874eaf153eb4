package scrape

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// Adapter normalizes one kind of external source into a canonical ScrapeResult.
// Implementations are pure functions of their inputs plus network I/O; network
// and parse failures come back as failed results, never as panics that could
// abort sibling scrapes.
type Adapter interface {
	Kind() model.StrategyKind
	Extract(ctx context.Context, cfg model.MountainSourceConfig) model.ScrapeResult
}

// NewAdapters builds the full strategy-kind dispatch table over one fetcher
func NewAdapters(fetcher *Fetcher) map[model.StrategyKind]Adapter {
	return map[model.StrategyKind]Adapter{
		model.StrategyStructuredJSON: &JSONAdapter{fetcher: fetcher},
		model.StrategyHTMLSelector:   &HTMLAdapter{fetcher: fetcher},
		model.StrategyAggregator:     &AggregatorAdapter{fetcher: fetcher},
	}
}

// newResult starts a result for an attempt; adapters fill in status fields
func newResult(mountainID string) model.ScrapeResult {
	return model.ScrapeResult{
		MountainID: mountainID,
		ScrapedAt:  time.Now().UTC(),
	}
}

// finish stamps the duration, reconciles count inconsistencies, and derives
// PercentOpen from run counts when the source did not report it directly.
// Sources sometimes report more open than total, or omit the total field
// entirely; the total is raised to the open count so a successful result
// always satisfies open <= total. No percentage is derived from a reconciled
// run count.
func finish(res model.ScrapeResult, started time.Time) model.ScrapeResult {
	res.DurationMs = time.Since(started).Milliseconds()
	if !res.Success {
		return res
	}
	if res.LiftsOpen < 0 {
		res.LiftsOpen = 0
	}
	if res.RunsOpen < 0 {
		res.RunsOpen = 0
	}
	if res.LiftsOpen > res.LiftsTotal {
		res.LiftsTotal = res.LiftsOpen
	}
	runsReconciled := res.RunsOpen > res.RunsTotal
	if runsReconciled {
		res.RunsTotal = res.RunsOpen
	}
	if res.PercentOpen == nil && res.RunsTotal > 0 && !runsReconciled {
		pct := float64(res.RunsOpen) / float64(res.RunsTotal) * 100
		res.PercentOpen = &pct
	}
	return res
}

// parseCount pulls the leading integer out of strings like "12", "12 lifts",
// or "12/38"
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseOpen interprets open/closed wording from status text
func parseOpen(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if strings.Contains(lower, "closed") {
		return false
	}
	return strings.Contains(lower, "open") || lower == "true" || lower == "1" || lower == "yes"
}

func schemaDriftError(source string, detail string) string {
	return fmt.Sprintf("no matching data: %s schema drift (%s)", source, detail)
}

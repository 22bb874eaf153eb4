package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"github.com/kevincorvallis/shredders-sub008/internal/worker"
	"go.uber.org/zap"
)

// Registry is the slice of the strategy registry the orchestrator needs
type Registry interface {
	ListEnabled() []model.MountainSourceConfig
}

// ResultSink receives scrape results and run summaries as they are produced.
// The repository implementations in internal/store satisfy it.
type ResultSink interface {
	SaveScrapeResult(model.ScrapeResult) error
	SaveRunSummary(model.RunSummary) error
}

// Orchestrator executes all enabled mountain scrapes concurrently. Every
// mountain gets its own bounded attempt; one mountain's failure or hang never
// delays or aborts the others, and the run always settles with a complete
// RunSummary.
type Orchestrator struct {
	registry Registry
	adapters map[model.StrategyKind]Adapter
	sink     ResultSink
	timeout  time.Duration
	workers  int
	logger   *zap.Logger
}

// NewOrchestrator wires the orchestrator over a registry, adapter dispatch
// table, and result sink
func NewOrchestrator(reg Registry, adapters map[model.StrategyKind]Adapter, sink ResultSink, cfg model.ScrapeConfig, logger *zap.Logger) *Orchestrator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	timeout := cfg.PerMountainTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		registry: reg,
		adapters: adapters,
		sink:     sink,
		timeout:  timeout,
		workers:  workers,
		logger:   logger,
	}
}

// scrapeJob is one mountain's attempt, run on the worker pool
type scrapeJob struct {
	cfg      model.MountainSourceConfig
	adapters map[model.StrategyKind]Adapter
	timeout  time.Duration
}

type scrapeJobResult struct {
	res model.ScrapeResult
}

func (r *scrapeJobResult) GetError() error {
	if r.res.Success {
		return nil
	}
	return fmt.Errorf("%s: %s", r.res.MountainID, r.res.Error)
}

// Execute runs the mountain's adapter under a timeout guard. An adapter that
// never returns is converted into a timeout failure rather than blocking the
// pool; the abandoned goroutine unwinds on its own once its context dies.
func (j *scrapeJob) Execute(ctx context.Context) worker.Result {
	started := time.Now().UTC()

	adapter, ok := j.adapters[j.cfg.Strategy]
	if !ok {
		return &scrapeJobResult{res: model.FailedScrape(j.cfg.ID, started,
			fmt.Sprintf("config error: unknown strategy kind %q", j.cfg.Strategy))}
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	done := make(chan model.ScrapeResult, 1)
	go func() {
		done <- adapter.Extract(ctx, j.cfg)
	}()

	select {
	case res := <-done:
		return &scrapeJobResult{res: res}
	case <-ctx.Done():
		msg := fmt.Sprintf("timeout after %s", j.timeout)
		if errors.Is(ctx.Err(), context.Canceled) {
			msg = "scrape canceled"
		}
		return &scrapeJobResult{res: model.FailedScrape(j.cfg.ID, started, msg)}
	}
}

// RunAll scrapes every enabled mountain and joins once all attempts have
// settled. Results keep registry order; each result and the final summary are
// persisted through the sink. The only fatal condition is an empty/unreadable
// registry.
func (o *Orchestrator) RunAll(ctx context.Context) (*model.RunSummary, error) {
	if o.registry == nil {
		return nil, fmt.Errorf("scrape registry unavailable")
	}
	configs := o.registry.ListEnabled()

	summary := &model.RunSummary{StartedAt: time.Now().UTC()}

	// The pool runs jobs under the caller's context, so a caller deadline or
	// cancellation reaches every in-flight adapter call.
	pool := worker.NewPool(ctx, o.workers)
	pool.Start()
	for _, cfg := range configs {
		pool.Submit(&scrapeJob{cfg: cfg, adapters: o.adapters, timeout: o.timeout})
	}
	results := pool.Wait()

	// Re-key by mountain so the summary keeps registry order regardless of
	// completion order.
	byID := make(map[string]model.ScrapeResult, len(results))
	for _, r := range results {
		jr := r.(*scrapeJobResult)
		byID[jr.res.MountainID] = jr.res
	}

	for _, cfg := range configs {
		res, ok := byID[cfg.ID]
		if !ok {
			res = model.FailedScrape(cfg.ID, summary.StartedAt, "scrape produced no result")
		}
		if res.Success {
			summary.SuccessfulCount++
			o.logger.Info("scraped mountain",
				zap.String("mountain", cfg.ID),
				zap.Int("lifts_open", res.LiftsOpen),
				zap.Int("runs_open", res.RunsOpen),
				zap.Int64("duration_ms", res.DurationMs))
		} else {
			summary.FailedCount++
			o.logger.Warn("scrape failed",
				zap.String("mountain", cfg.ID),
				zap.String("error", res.Error))
		}
		summary.Results = append(summary.Results, res)

		if o.sink != nil {
			if err := o.sink.SaveScrapeResult(res); err != nil {
				o.logger.Warn("persist scrape result",
					zap.String("mountain", cfg.ID), zap.Error(err))
			}
		}
	}

	summary.TotalMountains = len(configs)
	summary.FinishedAt = time.Now().UTC()

	if o.sink != nil {
		if err := o.sink.SaveRunSummary(*summary); err != nil {
			o.logger.Warn("persist run summary", zap.Error(err))
		}
	}

	return summary, nil
}

// Package engine wires the registry, scrape orchestrator, weather fusion,
// score calculator, repository, and optional report generator into one facade
// the CLI drives.
package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kevincorvallis/shredders-sub008/internal/cache"
	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"github.com/kevincorvallis/shredders-sub008/internal/registry"
	"github.com/kevincorvallis/shredders-sub008/internal/report"
	"github.com/kevincorvallis/shredders-sub008/internal/score"
	"github.com/kevincorvallis/shredders-sub008/internal/scrape"
	"github.com/kevincorvallis/shredders-sub008/internal/store"
	"github.com/kevincorvallis/shredders-sub008/internal/weather"
)

// Engine holds the fully wired system
type Engine struct {
	registry     *registry.Registry
	orchestrator *scrape.Orchestrator
	fusion       *weather.Fusion
	calculator   *score.Calculator
	store        store.Store
	reporter     *report.Generator
	logger       *zap.Logger
	config       *model.Config
}

// New builds an Engine from configuration
func New(cfg *model.Config, logger *zap.Logger) (*Engine, error) {
	var reg *registry.Registry
	var err error
	if cfg.RegistryFile != "" {
		reg, err = registry.Load(cfg.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
	} else {
		reg = registry.New()
	}

	repo, err := store.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	fetcher := scrape.NewFetcher(cfg.HTTP, cfg.Scrape, logger)
	adapters := scrape.NewAdapters(fetcher)
	orchestrator := scrape.NewOrchestrator(reg, adapters, repo, cfg.Scrape, logger)

	// One shared response cache keeps repeated gridpoint and model lookups
	// from hammering the providers within a run. With a disk store the
	// cache is layered so back-to-back CLI invocations reuse responses.
	var weatherCache cache.Cache
	if cfg.Store.Kind == "disk" && cfg.Store.Dir != "" {
		weatherCache = cache.NewLayeredCache(cfg.Weather.CacheTTL, filepath.Join(cfg.Store.Dir, "httpcache"), cfg.Weather.CacheTTL)
	} else {
		weatherCache = cache.NewMemoryCache(cfg.Weather.CacheTTL, cfg.Weather.CacheTTL)
	}

	telemetryClient := weather.NewClient("telemetry", cfg.Weather, cfg.HTTP.UserAgent, weatherCache, logger)
	gridClient := weather.NewClient("grid", cfg.Weather, cfg.HTTP.UserAgent, weatherCache, logger)
	modelClient := weather.NewClient("forecast-model", cfg.Weather, cfg.HTTP.UserAgent, weatherCache, logger)

	telemetry := weather.NewTelemetryAdapter(telemetryClient, cfg.Weather.TelemetryURL)
	grid := weather.NewGridAdapter(gridClient, cfg.Weather.GridURL)
	forecastModel := weather.NewForecastModelAdapter(modelClient, cfg.Weather.ForecastModel)

	fusion := weather.NewFusion(telemetry, grid, grid, forecastModel, forecastModel, logger)

	return &Engine{
		registry:     reg,
		orchestrator: orchestrator,
		fusion:       fusion,
		calculator:   score.NewCalculator(),
		store:        repo,
		reporter:     report.NewGenerator(cfg.Report, logger),
		logger:       logger,
		config:       cfg,
	}, nil
}

// Registry exposes the mountain registry for listing commands
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Store exposes the repository for read commands
func (e *Engine) Store() store.Store {
	return e.store
}

// RunScrapes scrapes every enabled mountain and returns the run summary
func (e *Engine) RunScrapes(ctx context.Context) (*model.RunSummary, error) {
	return e.orchestrator.RunAll(ctx)
}

// Conditions fuses the weather sources for one mountain. The snapshot is
// persisted before returning; a persist failure is logged, not fatal.
func (e *Engine) Conditions(ctx context.Context, mountainID string) (*model.ConditionsSnapshot, error) {
	cfg, ok := e.registry.Get(mountainID)
	if !ok {
		return nil, fmt.Errorf("unknown mountain %q", mountainID)
	}

	snap := e.fusion.Fuse(ctx, cfg)
	if err := e.store.SaveSnapshot(*snap); err != nil {
		e.logger.Warn("persist snapshot", zap.String("mountain", mountainID), zap.Error(err))
	}
	return snap, nil
}

// Score fuses conditions and computes the powder score for one mountain
func (e *Engine) Score(ctx context.Context, mountainID string) (*model.PowderScore, error) {
	cfg, ok := e.registry.Get(mountainID)
	if !ok {
		return nil, fmt.Errorf("unknown mountain %q", mountainID)
	}

	snap := e.fusion.Fuse(ctx, cfg)
	if err := e.store.SaveSnapshot(*snap); err != nil {
		e.logger.Warn("persist snapshot", zap.String("mountain", mountainID), zap.Error(err))
	}

	powder := e.calculator.Calculate(mountainID, *snap, cfg.Elevation)
	if err := e.store.SavePowderScore(powder); err != nil {
		e.logger.Warn("persist score", zap.String("mountain", mountainID), zap.Error(err))
	}
	return &powder, nil
}

// ScoreAll computes powder scores for every enabled mountain in registry
// order. Mountains whose weather sources all fail still score; they just
// score on nothing and land at the bottom.
func (e *Engine) ScoreAll(ctx context.Context) ([]model.PowderScore, error) {
	configs := e.registry.ListEnabled()
	if len(configs) == 0 {
		return nil, fmt.Errorf("no enabled mountains")
	}

	scores := make([]model.PowderScore, 0, len(configs))
	for _, cfg := range configs {
		powder, err := e.Score(ctx, cfg.ID)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *powder)
	}
	return scores, nil
}

// PowderReport generates the optional narrative report. Callers should check
// ReportEnabled first; scoring never depends on this path.
func (e *Engine) PowderReport(ctx context.Context, scores []model.PowderScore) (string, error) {
	return e.reporter.Generate(ctx, scores)
}

// ReportEnabled reports whether narrative generation is configured
func (e *Engine) ReportEnabled() bool {
	return e.reporter.Enabled()
}

package registry

import (
	"fmt"
	"os"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"gopkg.in/yaml.v3"
)

// Registry holds the authoritative mapping from mountain id to its scrape
// strategy and weather metadata. It is assembled once and read-only during a
// run; entries keep insertion order so run summaries render stably.
type Registry struct {
	order   []string
	configs map[string]model.MountainSourceConfig
}

// New builds a registry seeded with the built-in mountain configs
func New() *Registry {
	r := &Registry{configs: make(map[string]model.MountainSourceConfig)}
	for _, cfg := range builtinMountains() {
		r.put(cfg)
	}
	return r
}

// Load builds a registry from the built-ins plus an optional YAML override
// file. Entries in the file replace built-ins with the same id and append
// otherwise. An empty path returns the built-ins unchanged.
func Load(path string) (*Registry, error) {
	r := New()
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	var overrides struct {
		Mountains []model.MountainSourceConfig `yaml:"mountains"`
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}

	for _, cfg := range overrides.Mountains {
		if cfg.ID == "" {
			return nil, fmt.Errorf("registry file: mountain entry missing id")
		}
		if !cfg.Strategy.Valid() {
			return nil, fmt.Errorf("registry file: mountain %q has unknown strategy %q", cfg.ID, cfg.Strategy)
		}
		r.put(cfg)
	}

	return r, nil
}

func (r *Registry) put(cfg model.MountainSourceConfig) {
	if _, exists := r.configs[cfg.ID]; !exists {
		r.order = append(r.order, cfg.ID)
	}
	r.configs[cfg.ID] = cfg
}

// Get returns the config for a mountain id; ok is false for unknown ids
func (r *Registry) Get(id string) (model.MountainSourceConfig, bool) {
	cfg, ok := r.configs[id]
	return cfg, ok
}

// ListEnabled returns the enabled configs in insertion order. Disabled configs
// are skipped by the orchestrator but stay visible through List for audit.
func (r *Registry) ListEnabled() []model.MountainSourceConfig {
	var out []model.MountainSourceConfig
	for _, id := range r.order {
		if cfg := r.configs[id]; cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}

// List returns every config, enabled or not, in insertion order
func (r *Registry) List() []model.MountainSourceConfig {
	out := make([]model.MountainSourceConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.configs[id])
	}
	return out
}

// Len returns the number of registered mountains
func (r *Registry) Len() int {
	return len(r.order)
}

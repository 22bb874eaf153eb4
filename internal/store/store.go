// Package store defines the conditions repository boundary. The engine only
// requires a save/get contract; durable storage beyond these implementations
// is an external concern.
package store

import (
	"errors"
	"fmt"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// ErrNotFound is returned when no record exists for the requested mountain
var ErrNotFound = errors.New("not found")

// Store is the conditions repository contract. Save calls return only once the
// write has been accepted; retention policy belongs to the implementation.
type Store interface {
	SaveScrapeResult(model.ScrapeResult) error
	SaveRunSummary(model.RunSummary) error
	LatestScrape(mountainID string) (*model.ScrapeResult, error)
	SaveSnapshot(model.ConditionsSnapshot) error
	SavePowderScore(model.PowderScore) error
}

// New builds a store from configuration
func New(cfg model.StoreConfig) (Store, error) {
	switch cfg.Kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "disk":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("disk store requires a directory")
		}
		return NewDiskStore(cfg.Dir), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

package store

import (
	"sync"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps the latest record per mountain in process memory. It backs
// the CLI and tests; anything needing durability uses the disk store.
type MemoryStore struct {
	latest *gocache.Cache // latest ScrapeResult / snapshot / score per mountain

	mu   sync.Mutex
	runs []model.RunSummary
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		latest: gocache.New(gocache.NoExpiration, 0),
	}
}

// SaveScrapeResult records the latest scrape for the mountain
func (s *MemoryStore) SaveScrapeResult(res model.ScrapeResult) error {
	s.latest.Set("scrape:"+res.MountainID, res, gocache.NoExpiration)
	return nil
}

// SaveRunSummary appends the summary to the run history
func (s *MemoryStore) SaveRunSummary(summary model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, summary)
	return nil
}

// LatestScrape returns the most recent scrape result for a mountain
func (s *MemoryStore) LatestScrape(mountainID string) (*model.ScrapeResult, error) {
	val, found := s.latest.Get("scrape:" + mountainID)
	if !found {
		return nil, ErrNotFound
	}
	res := val.(model.ScrapeResult)
	return &res, nil
}

// SaveSnapshot records the latest fused snapshot for the mountain
func (s *MemoryStore) SaveSnapshot(snap model.ConditionsSnapshot) error {
	s.latest.Set("snapshot:"+snap.MountainID, snap, gocache.NoExpiration)
	return nil
}

// SavePowderScore records the latest score for the mountain
func (s *MemoryStore) SavePowderScore(score model.PowderScore) error {
	s.latest.Set("score:"+score.MountainID, score, gocache.NoExpiration)
	return nil
}

// RunSummaries returns the recorded run history, oldest first
func (s *MemoryStore) RunSummaries() []model.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.RunSummary, len(s.runs))
	copy(out, s.runs)
	return out
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// DiskStore persists records as JSON files: the latest record per mountain
// under latest/, and every run summary under runs/ keyed by start time, so
// history survives restarts without needing a database.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) write(relPath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	path := filepath.Join(s.dir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	// Write-then-rename keeps readers from seeing half a record.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("finalize record: %w", err)
	}
	return nil
}

// SaveScrapeResult overwrites the mountain's latest scrape on disk
func (s *DiskStore) SaveScrapeResult(res model.ScrapeResult) error {
	return s.write(filepath.Join("latest", res.MountainID+".json"), res)
}

// SaveRunSummary appends the summary to the run history directory
func (s *DiskStore) SaveRunSummary(summary model.RunSummary) error {
	name := summary.StartedAt.UTC().Format("20060102T150405Z") + ".json"
	return s.write(filepath.Join("runs", name), summary)
}

// LatestScrape reads the mountain's latest scrape from disk
func (s *DiskStore) LatestScrape(mountainID string) (*model.ScrapeResult, error) {
	path := filepath.Join(s.dir, "latest", mountainID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record: %w", err)
	}

	var res model.ScrapeResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &res, nil
}

// SaveSnapshot overwrites the mountain's latest fused snapshot
func (s *DiskStore) SaveSnapshot(snap model.ConditionsSnapshot) error {
	return s.write(filepath.Join("snapshots", snap.MountainID+".json"), snap)
}

// SavePowderScore overwrites the mountain's latest score
func (s *DiskStore) SavePowderScore(score model.PowderScore) error {
	return s.write(filepath.Join("scores", score.MountainID+".json"), score)
}

// RunSummaryFiles lists the run history files, oldest first
func (s *DiskStore) RunSummaryFiles() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "runs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list runs: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

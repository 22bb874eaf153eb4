package store

import (
	"errors"
	"testing"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

func sampleResult(id string) model.ScrapeResult {
	return model.ScrapeResult{
		MountainID: id,
		Success:    true,
		IsOpen:     true,
		LiftsOpen:  5,
		LiftsTotal: 10,
		RunsOpen:   30,
		RunsTotal:  57,
		ScrapedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     model.StoreConfig
		wantErr bool
	}{
		{"default memory", model.StoreConfig{}, false},
		{"explicit memory", model.StoreConfig{Kind: "memory"}, false},
		{"disk with dir", model.StoreConfig{Kind: "disk", Dir: t.TempDir()}, false},
		{"disk without dir", model.StoreConfig{Kind: "disk"}, true},
		{"unknown kind", model.StoreConfig{Kind: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
			}
		})
	}
}

// runStoreContract exercises the Store behaviors both implementations share
func runStoreContract(t *testing.T, s Store) {
	t.Helper()

	if _, err := s.LatestScrape("baker"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty store, got %v", err)
	}

	first := sampleResult("baker")
	if err := s.SaveScrapeResult(first); err != nil {
		t.Fatalf("SaveScrapeResult failed: %v", err)
	}

	got, err := s.LatestScrape("baker")
	if err != nil {
		t.Fatalf("LatestScrape failed: %v", err)
	}
	if got.LiftsOpen != 5 || !got.IsOpen {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// A newer result replaces the old one
	second := sampleResult("baker")
	second.LiftsOpen = 8
	if err := s.SaveScrapeResult(second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	got, err = s.LatestScrape("baker")
	if err != nil {
		t.Fatalf("LatestScrape after update failed: %v", err)
	}
	if got.LiftsOpen != 8 {
		t.Errorf("expected latest result, got lifts=%d", got.LiftsOpen)
	}

	// Other mountains stay independent
	if _, err := s.LatestScrape("crystal"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other mountain, got %v", err)
	}

	if err := s.SaveSnapshot(model.ConditionsSnapshot{MountainID: "baker", TakenAt: time.Now().UTC()}); err != nil {
		t.Errorf("SaveSnapshot failed: %v", err)
	}
	if err := s.SavePowderScore(model.PowderScore{MountainID: "baker", Score: 7.5}); err != nil {
		t.Errorf("SavePowderScore failed: %v", err)
	}

	summary := model.RunSummary{
		StartedAt:       time.Now().UTC(),
		FinishedAt:      time.Now().UTC(),
		TotalMountains:  1,
		SuccessfulCount: 1,
		Results:         []model.ScrapeResult{second},
	}
	if err := s.SaveRunSummary(summary); err != nil {
		t.Errorf("SaveRunSummary failed: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestDiskStore(t *testing.T) {
	runStoreContract(t, NewDiskStore(t.TempDir()))
}

func TestMemoryStore_RunSummaries(t *testing.T) {
	s := NewMemoryStore()

	for i := 0; i < 3; i++ {
		summary := model.RunSummary{StartedAt: time.Now().UTC().Add(time.Duration(i) * time.Minute)}
		if err := s.SaveRunSummary(summary); err != nil {
			t.Fatal(err)
		}
	}

	runs := s.RunSummaries()
	if len(runs) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(runs))
	}
	if !runs[0].StartedAt.Before(runs[2].StartedAt) {
		t.Error("summaries not in insertion order")
	}
}

func TestDiskStore_RunSummaryFiles(t *testing.T) {
	s := NewDiskStore(t.TempDir())

	files, err := s.RunSummaryFiles()
	if err != nil {
		t.Fatalf("RunSummaryFiles on empty store failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty history, got %v", files)
	}

	base := time.Date(2026, 1, 10, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		summary := model.RunSummary{StartedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.SaveRunSummary(summary); err != nil {
			t.Fatal(err)
		}
	}

	files, err = s.RunSummaryFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 run files, got %d", len(files))
	}
	if files[0] != "20260110T060000Z.json" {
		t.Errorf("unexpected file name %s", files[0])
	}
}

func TestDiskStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s := NewDiskStore(dir)
	if err := s.SaveScrapeResult(sampleResult("stevens")); err != nil {
		t.Fatal(err)
	}

	reopened := NewDiskStore(dir)
	got, err := reopened.LatestScrape("stevens")
	if err != nil {
		t.Fatalf("LatestScrape after reopen failed: %v", err)
	}
	if got.MountainID != "stevens" {
		t.Errorf("got %+v", got)
	}
}

package engine

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

func TestNew_Defaults(t *testing.T) {
	eng, err := New(model.DefaultConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if eng.Registry().Len() == 0 {
		t.Error("expected built-in registry")
	}
	if eng.ReportEnabled() {
		t.Error("report should be disabled without an API key")
	}
}

func TestNew_BadStore(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Store.Kind = "postgres"

	if _, err := New(cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown store kind")
	}
}

func TestNew_MissingRegistryFile(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.RegistryFile = "/nonexistent/mountains.yaml"

	if _, err := New(cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing registry file")
	}
}

func TestScore_UnknownMountain(t *testing.T) {
	eng, err := New(model.DefaultConfig(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Score(context.Background(), "mount-doom"); err == nil {
		t.Error("expected error for unknown mountain")
	}
	if _, err := eng.Conditions(context.Background(), "mount-doom"); err == nil {
		t.Error("expected error for unknown mountain")
	}
}

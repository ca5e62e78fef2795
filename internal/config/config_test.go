package config

import (
	"testing"
	"time"

	"asinwatch/internal/history"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults should succeed: %v", err)
	}

	if cfg.App.Name != "asinwatch" {
		t.Fatalf("unexpected app name %q", cfg.App.Name)
	}
	if cfg.API.Domain != 1 {
		t.Fatalf("default domain should be 1, got %d", cfg.API.Domain)
	}
	if cfg.Decode.Window != 720*time.Hour {
		t.Fatalf("default window should be 30 days, got %s", cfg.Decode.Window)
	}

	opts := cfg.DecodeOptions()
	if len(opts.RankCandidates) != 2 || opts.RankCandidates[0] != history.SlotMainCategoryRank {
		t.Fatalf("unexpected rank candidates: %v", opts.RankCandidates)
	}
	if len(opts.CurrentPriceCandidates) != 3 || opts.CurrentPriceCandidates[0] != history.SlotAmazonPrice {
		t.Fatalf("unexpected price candidates: %v", opts.CurrentPriceCandidates)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Decode.Window = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero window should fail validation")
	}

	cfg = base()
	cfg.Watch.Interval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero interval should fail validation")
	}

	cfg = base()
	cfg.Export.MaxDataPoints = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero max data points should fail validation")
	}

	cfg = base()
	cfg.Watch.Telegram.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("telegram without credentials should fail validation")
	}
}

func TestSeriesIndexes(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SeriesIndexes() != nil {
		t.Fatal("no configured assignment should return nil")
	}

	cfg.Decode.SeriesIndexes = map[string]int{"amazonPrice": 7}
	indexes := cfg.SeriesIndexes()
	if indexes[history.SlotAmazonPrice] != 7 {
		t.Fatalf("unexpected assignment: %v", indexes)
	}
}

func TestResolveMaxPoints(t *testing.T) {
	cfg := &Config{Export: ExportConfig{MaxDataPoints: 500}}
	if got := cfg.ResolveMaxPoints(0); got != 500 {
		t.Fatalf("expected config default 500, got %d", got)
	}
	if got := cfg.ResolveMaxPoints(9); got != 9 {
		t.Fatalf("expected override 9, got %d", got)
	}
}

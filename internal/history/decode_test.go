package history

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDecodeEmptyCatalog(t *testing.T) {
	report := Decode(SeriesCatalog{}, ProductMeta{ASIN: "B000TEST00"}, DecodeOptions{Now: DecodeTime(1000)})
	if report.CurrentRank != nil || report.CurrentPrice != nil || report.WindowMinPrice != nil {
		t.Fatal("every metric should be absent for an empty catalog")
	}
	if report.Product.ASIN != "B000TEST00" {
		t.Fatal("metadata must pass through unchanged")
	}
}

func TestDecodeAllSentinelCatalog(t *testing.T) {
	catalog := SeriesCatalog{
		SlotMainCategoryRank: {10, -1, 20, -1},
		SlotAmazonPrice:      {10, -1},
	}
	report := Decode(catalog, ProductMeta{}, DecodeOptions{Now: DecodeTime(1000)})
	if report.CurrentRank != nil || report.CurrentPrice != nil || report.WindowMinPrice != nil {
		t.Fatal("all-sentinel series should leave every metric absent")
	}
}

func TestDecodeFullCatalog(t *testing.T) {
	now := DecodeTime(100_000)
	catalog := SeriesCatalog{
		SlotMainCategoryRank: {99_000, 1500, 99_500, 1234},
		SlotAmazonPrice:      {60_000, 2599, 99_000, -1, 99_900, 1999},
		SlotBuyBoxPrice:      {99_000, 1899},
		SlotNewPrice:         {99_000, 1799},
	}

	report := Decode(catalog, ProductMeta{Title: "Widget"}, DecodeOptions{
		Window: 24 * time.Hour,
		Now:    now,
	})

	if report.CurrentRank == nil || !report.CurrentRank.Value.Equal(decimal.NewFromInt(1234)) {
		t.Fatalf("expected current rank 1234, got %+v", report.CurrentRank)
	}
	if report.CurrentRank.Slot != SlotMainCategoryRank {
		t.Fatalf("rank should come from the main category, got %s", report.CurrentRank.Slot)
	}

	if report.CurrentPrice == nil || !report.CurrentPrice.Value.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected current price 19.99, got %+v", report.CurrentPrice)
	}
	if report.CurrentPrice.Slot != SlotAmazonPrice {
		t.Fatalf("amazon price has priority, got %s", report.CurrentPrice.Slot)
	}

	// The 25.99 entry at raw ts 60000 is outside the 24h window, so the
	// window minimum is the 19.99 entry, still from the amazon series.
	if report.WindowMinPrice == nil || !report.WindowMinPrice.Value.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected window minimum 19.99, got %+v", report.WindowMinPrice)
	}
}

func TestDecodeRankFallsBackToSubCategory(t *testing.T) {
	catalog := SeriesCatalog{
		SlotSubCategoryRank: {50, 77},
	}
	report := Decode(catalog, ProductMeta{}, DecodeOptions{Now: DecodeTime(1000)})
	if report.CurrentRank == nil || report.CurrentRank.Slot != SlotSubCategoryRank {
		t.Fatalf("expected sub-category fallback, got %+v", report.CurrentRank)
	}
}

func TestDecodeMetricsDegradeIndependently(t *testing.T) {
	catalog := SeriesCatalog{
		SlotBuyBoxPrice: {500, 2250},
	}
	report := Decode(catalog, ProductMeta{}, DecodeOptions{Now: DecodeTime(1000)})
	if report.CurrentRank != nil {
		t.Fatal("rank should be absent")
	}
	if report.CurrentPrice == nil || report.CurrentPrice.Slot != SlotBuyBoxPrice {
		t.Fatalf("price should still resolve, got %+v", report.CurrentPrice)
	}
	if !report.CurrentPrice.Value.Equal(decimal.RequireFromString("22.50")) {
		t.Fatalf("expected 22.50, got %s", report.CurrentPrice.Value)
	}
}

func TestDecodeCustomCandidateOrder(t *testing.T) {
	catalog := SeriesCatalog{
		SlotAmazonPrice: {10, 1000},
		SlotNewPrice:    {10, 2000},
	}
	report := Decode(catalog, ProductMeta{}, DecodeOptions{
		CurrentPriceCandidates: []Slot{SlotNewPrice, SlotAmazonPrice},
		Now:                    DecodeTime(1000),
	})
	if report.CurrentPrice == nil || report.CurrentPrice.Slot != SlotNewPrice {
		t.Fatalf("caller-supplied order must hold, got %+v", report.CurrentPrice)
	}
}

func TestDecodeWindowStart(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	report := Decode(SeriesCatalog{}, ProductMeta{}, DecodeOptions{Now: now, Window: 48 * time.Hour})
	if !report.WindowStart.Equal(now.Add(-48 * time.Hour)) {
		t.Fatalf("unexpected window start %s", report.WindowStart)
	}
}

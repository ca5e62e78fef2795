package fetcher

import (
	"context"

	"asinwatch/internal/history"
)

// ProductFetcher retrieves one product's history payload from the
// catalog-history API.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, asin string) (*ProductPayload, error)
}

// ProductPayload is the vendor's per-product response: metadata plus the
// csv block of interleaved timestamp/value arrays keyed by numeric index.
type ProductPayload struct {
	ASIN         string              `json:"asin"`
	Title        string              `json:"title"`
	CategoryTree []CategoryNode      `json:"categoryTree"`
	CSV          []history.RawSeries `json:"csv"`
}

// CategoryNode is one entry of the payload's category breadcrumb.
type CategoryNode struct {
	ID   int64  `json:"catId"`
	Name string `json:"name"`
}

// Category returns the deepest category name, or empty when the payload
// carries no tree.
func (p *ProductPayload) Category() string {
	if len(p.CategoryTree) == 0 {
		return ""
	}
	return p.CategoryTree[len(p.CategoryTree)-1].Name
}

// CatalogFromPayload maps the payload's numeric series indices into named
// slots per the supplied assignment. Out-of-range indices and null arrays
// leave the slot missing; the vendor schema evolving never turns into a
// decode error.
func CatalogFromPayload(p *ProductPayload, indexes map[history.Slot]int) history.SeriesCatalog {
	catalog := make(history.SeriesCatalog, len(indexes))
	for slot, idx := range indexes {
		if idx < 0 || idx >= len(p.CSV) {
			continue
		}
		if series := p.CSV[idx]; len(series) > 0 {
			catalog[slot] = series
		}
	}
	return catalog
}

// DefaultSeriesIndexes is the vendor's documented index assignment.
func DefaultSeriesIndexes() map[history.Slot]int {
	return map[history.Slot]int{
		history.SlotAmazonPrice:      0,
		history.SlotNewPrice:         1,
		history.SlotMainCategoryRank: 3,
		history.SlotSubCategoryRank:  4,
		history.SlotBuyBoxPrice:      18,
	}
}

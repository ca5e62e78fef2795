// Package history decodes the raw time-series arrays returned by the
// catalog-history API into current rank, current price, and trailing
// window minimum price figures.
package history

import "iter"

// Slot names one historical metric within a product payload. The vendor
// keys series by numeric array index; the index-to-slot assignment lives
// in configuration so the decoder never sees raw positions.
type Slot string

const (
	SlotMainCategoryRank Slot = "mainCategoryRank"
	SlotSubCategoryRank  Slot = "subCategoryRank"
	SlotAmazonPrice      Slot = "amazonPrice"
	SlotBuyBoxPrice      Slot = "buyBoxPrice"
	SlotNewPrice         Slot = "newPrice"
)

// RawSeries is one metric's history as the vendor ships it: alternating
// timestamp/value entries in ascending chronological order. Timestamps are
// minutes since the vendor epoch, values are integers with -1 meaning
// "no observation". Prices are in minor currency units.
type RawSeries []int64

// SeriesCatalog maps named slots to their raw series for one product.
// Slots with no usable data are simply missing.
type SeriesCatalog map[Slot]RawSeries

// Pairs iterates the series two entries at a time as (timestamp, value).
// A trailing unpaired entry is dropped silently.
func (s RawSeries) Pairs() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		for i := 0; i+1 < len(s); i += 2 {
			if !yield(s[i], s[i+1]) {
				return
			}
		}
	}
}

// ValidValue reports whether a raw entry counts as an observation.
// The vendor writes -1 for "no data"; rank and price are defined only as
// positive integers, so anything non-positive is rejected.
func ValidValue(raw int64) bool {
	return raw > 0
}

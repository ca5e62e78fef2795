package history

import "time"

// DefaultWindow is the trailing interval searched for the minimum price
// when the caller does not configure one.
const DefaultWindow = 30 * 24 * time.Hour

// ProductMeta is passed through the decode unchanged.
type ProductMeta struct {
	ASIN     string
	Title    string
	Category string
}

// DecodeOptions configure one decode. Zero fields fall back to the vendor's
// documented defaults.
type DecodeOptions struct {
	RankCandidates          []Slot
	CurrentPriceCandidates  []Slot
	WindowedPriceCandidates []Slot

	// Window is the trailing interval for the minimum-price search.
	Window time.Duration
	// Now anchors the window. Injected so decoding stays a pure function
	// of its inputs.
	Now time.Time
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if len(o.RankCandidates) == 0 {
		o.RankCandidates = []Slot{SlotMainCategoryRank, SlotSubCategoryRank}
	}
	if len(o.CurrentPriceCandidates) == 0 {
		o.CurrentPriceCandidates = []Slot{SlotAmazonPrice, SlotBuyBoxPrice, SlotNewPrice}
	}
	if len(o.WindowedPriceCandidates) == 0 {
		o.WindowedPriceCandidates = []Slot{SlotAmazonPrice, SlotBuyBoxPrice, SlotNewPrice}
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	return o
}

// DecodedReport aggregates every resolved metric for one product. A nil
// metric means no candidate series held a valid observation; one metric's
// absence never blocks another.
type DecodedReport struct {
	Product        ProductMeta
	CurrentRank    *MetricResult
	CurrentPrice   *MetricResult
	WindowMinPrice *MetricResult
	WindowStart    time.Time
}

// Decode resolves all metrics for one product payload. It never fails:
// missing, empty, or all-sentinel series degrade the affected metric to nil.
func Decode(catalog SeriesCatalog, meta ProductMeta, opts DecodeOptions) DecodedReport {
	opts = opts.withDefaults()
	windowStart := opts.Now.Add(-opts.Window)

	report := DecodedReport{Product: meta, WindowStart: windowStart}

	if res, ok := Resolve(candidates(catalog, opts.RankCandidates), func(s RawSeries) (Observation, bool) {
		return Latest(s, KindRank)
	}); ok {
		report.CurrentRank = &res
	}

	if res, ok := Resolve(candidates(catalog, opts.CurrentPriceCandidates), func(s RawSeries) (Observation, bool) {
		return Latest(s, KindPrice)
	}); ok {
		report.CurrentPrice = &res
	}

	if res, ok := Resolve(candidates(catalog, opts.WindowedPriceCandidates), func(s RawSeries) (Observation, bool) {
		return Minimum(s, KindPrice, windowStart)
	}); ok {
		report.WindowMinPrice = &res
	}

	return report
}

func candidates(catalog SeriesCatalog, slots []Slot) []Candidate {
	out := make([]Candidate, 0, len(slots))
	for _, slot := range slots {
		// Missing slots still enter the list; their nil series simply
		// yields no observation.
		out = append(out, Candidate{Slot: slot, Series: catalog[slot]})
	}
	return out
}

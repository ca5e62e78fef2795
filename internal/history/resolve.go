package history

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candidate pairs a slot name with its raw series for priority resolution.
type Candidate struct {
	Slot   Slot
	Series RawSeries
}

// MetricResult is the outcome of resolving one metric: the decoded value,
// the slot that produced it, and the observation instant.
type MetricResult struct {
	Value decimal.Decimal
	Slot  Slot
	Time  time.Time
}

// Resolve tries candidates in order and returns a result from the first one
// whose extractor yields an observation. First success wins; later
// candidates are never consulted, so precedence is exactly the caller's
// list order.
func Resolve(candidates []Candidate, extract Extractor) (MetricResult, bool) {
	for _, c := range candidates {
		if obs, ok := extract(c.Series); ok {
			return MetricResult{Value: obs.Value, Slot: c.Slot, Time: obs.Time}, true
		}
	}
	return MetricResult{}, false
}

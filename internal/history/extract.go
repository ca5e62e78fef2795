package history

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects how a raw value is decoded into a number.
type Kind int

const (
	// KindRank decodes the raw integer as-is.
	KindRank Kind = iota
	// KindPrice decodes minor currency units into currency units.
	KindPrice
)

func (k Kind) decode(raw int64) decimal.Decimal {
	if k == KindPrice {
		return decimal.New(raw, -2)
	}
	return decimal.NewFromInt(raw)
}

// Observation is one decoded reading: a calendar instant and its value.
type Observation struct {
	Time  time.Time
	Value decimal.Decimal
}

// Extractor derives a single observation from a raw series, or reports
// that the series holds nothing usable.
type Extractor func(RawSeries) (Observation, bool)

// Latest returns the most recent valid observation in the series. It walks
// backwards from the end so the common case of fresh data returns without
// scanning the whole history.
func Latest(s RawSeries, kind Kind) (Observation, bool) {
	for i := len(s)/2*2 - 2; i >= 0; i -= 2 {
		if ValidValue(s[i+1]) {
			return Observation{Time: DecodeTime(s[i]), Value: kind.decode(s[i+1])}, true
		}
	}
	return Observation{}, false
}

// Minimum returns the smallest valid observation in the series, restricted
// to entries at or after windowStart when windowStart is non-zero. Ties keep
// the earliest occurrence. The whole series is always scanned since the
// minimum may sit anywhere.
func Minimum(s RawSeries, kind Kind, windowStart time.Time) (Observation, bool) {
	var (
		best  int64
		bestT int64
		found bool
	)
	for ts, raw := range s.Pairs() {
		if !ValidValue(raw) {
			continue
		}
		if !windowStart.IsZero() && DecodeTime(ts).Before(windowStart) {
			continue
		}
		if !found || raw < best {
			best = raw
			bestT = ts
			found = true
		}
	}
	if !found {
		return Observation{}, false
	}
	return Observation{Time: DecodeTime(bestT), Value: kind.decode(best)}, true
}

// Observations decodes every valid entry in the series, optionally
// restricted to the trailing window. Used by the export path to render a
// full price or rank curve from one payload.
func Observations(s RawSeries, kind Kind, windowStart time.Time) []Observation {
	var out []Observation
	for ts, raw := range s.Pairs() {
		if !ValidValue(raw) {
			continue
		}
		t := DecodeTime(ts)
		if !windowStart.IsZero() && t.Before(windowStart) {
			continue
		}
		out = append(out, Observation{Time: t, Value: kind.decode(raw)})
	}
	return out
}

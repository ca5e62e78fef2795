package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"asinwatch/internal/alerting"
	"asinwatch/internal/fetcher"
	"asinwatch/internal/history"
)

// Options configure a single-product watcher.
type Options struct {
	ASIN    string
	Indexes map[history.Slot]int
	Decode  history.DecodeOptions

	// PriceFloor triggers a notification when the current price reaches
	// or drops below it. Zero disables the floor.
	PriceFloor decimal.Decimal
	// ThresholdPct triggers a notification when the price moved by at
	// least this percentage since the previous tick. Zero disables it.
	ThresholdPct decimal.Decimal
}

// Watcher re-looks-up one product per tick and notifies on price moves.
// Each tick is an independent fetch and decode; the only carried state is
// the previous tick's decoded price, held in memory for comparison.
type Watcher struct {
	fetcher  fetcher.ProductFetcher
	notifier alerting.Notifier
	logger   zerolog.Logger
	opts     Options

	lastPrice   *decimal.Decimal
	floorActive bool
}

// New constructs a watcher.
func New(pf fetcher.ProductFetcher, notifier alerting.Notifier, opts Options, logger zerolog.Logger) *Watcher {
	return &Watcher{
		fetcher:  pf,
		notifier: notifier,
		opts:     opts,
		logger:   logger.With().Str("component", "watcher").Str("asin", opts.ASIN).Logger(),
	}
}

// ProcessTick performs one lookup cycle.
func (w *Watcher) ProcessTick(ctx context.Context, bucket time.Time) error {
	payload, err := w.fetcher.FetchProduct(ctx, w.opts.ASIN)
	if err != nil {
		return fmt.Errorf("fetch product: %w", err)
	}

	indexes := w.opts.Indexes
	if indexes == nil {
		indexes = fetcher.DefaultSeriesIndexes()
	}
	catalog := fetcher.CatalogFromPayload(payload, indexes)

	decodeOpts := w.opts.Decode
	decodeOpts.Now = bucket
	report := history.Decode(catalog, history.ProductMeta{
		ASIN:     payload.ASIN,
		Title:    payload.Title,
		Category: payload.Category(),
	}, decodeOpts)

	if report.CurrentPrice == nil {
		w.logger.Warn().Time("bucket", bucket).Msg("no current price in payload; skipping comparison")
		return nil
	}

	price := report.CurrentPrice.Value
	prev := w.lastPrice
	w.lastPrice = &price

	var changePct *decimal.Decimal
	if prev != nil && !prev.IsZero() {
		pct := price.Div(*prev).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
		changePct = &pct
	}

	event := w.logger.Info().Time("bucket", bucket).
		Str("price", price.StringFixed(2)).
		Str("source", string(report.CurrentPrice.Slot))
	if changePct != nil {
		event = event.Str("change_pct", changePct.StringFixed(2))
	}
	event.Msg("price sampled")

	if w.notifier == nil {
		return nil
	}

	floorHit := !w.opts.PriceFloor.IsZero() && price.LessThanOrEqual(w.opts.PriceFloor)
	moved := !w.opts.ThresholdPct.IsZero() && changePct != nil &&
		changePct.Abs().GreaterThanOrEqual(w.opts.ThresholdPct)

	// The floor notifies once per crossing, not on every tick spent
	// below it.
	notifyFloor := floorHit && !w.floorActive
	w.floorActive = floorHit

	if !notifyFloor && !moved {
		return nil
	}

	note := alerting.Notification{
		ASIN:          payload.ASIN,
		Title:         payload.Title,
		Bucket:        bucket,
		CurrentPrice:  price,
		PreviousPrice: prev,
		ChangePct:     changePct,
		PriceFloor:    w.opts.PriceFloor,
		Direction:     classifyChange(changePct),
		SourceSlot:    string(report.CurrentPrice.Slot),
	}
	if err := w.notifier.Notify(ctx, note); err != nil {
		w.logger.Error().Err(err).Time("bucket", bucket).Msg("failed to dispatch alert")
	}
	return nil
}

func classifyChange(changePct *decimal.Decimal) string {
	if changePct == nil {
		return "flat"
	}
	switch changePct.Sign() {
	case 1:
		return "up"
	case -1:
		return "down"
	default:
		return "flat"
	}
}

package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"asinwatch/internal/watch"
)

// Watch runs the long-lived polling loop for one product.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	floor := a.Config.Watch.PriceFloor
	if opts.PriceFloor > 0 {
		floor = opts.PriceFloor
	}
	threshold := a.Config.Watch.ThresholdPct
	if opts.ThresholdPct > 0 {
		threshold = opts.ThresholdPct
	}

	notifier := a.newNotifier()
	if notifier == nil {
		a.Logger.Warn().Msg("no notification channel enabled; alerts will only be logged")
	}

	watcher := watch.New(a.newFetcher(), notifier, watch.Options{
		ASIN:         opts.ASIN,
		Indexes:      a.seriesIndexes(),
		Decode:       a.Config.DecodeOptions(),
		PriceFloor:   decimal.NewFromFloat(floor),
		ThresholdPct: decimal.NewFromFloat(threshold),
	}, a.Logger)

	sched := watch.NewScheduler(watch.SchedulerOptions{
		Interval:     a.Config.Watch.Interval,
		AlignToStart: a.Config.Watch.AlignToBucket,
		StartupDelay: a.Config.Watch.StartupDelay,
	}, a.Logger)

	a.Logger.Info().Str("asin", opts.ASIN).Dur("interval", a.Config.Watch.Interval).Msg("starting watch")
	err := sched.Run(ctx, watcher.ProcessTick)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("watch terminated with error")
		return err
	}

	a.Logger.Info().Msg("watch stopped")
	return nil
}

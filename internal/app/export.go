package app

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"asinwatch/internal/fetcher"
	"asinwatch/internal/history"
)

// Export fetches one payload and renders its decoded price and rank
// history as CSV and/or PNG. Everything comes from the single payload;
// nothing is read from or written to any store.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	payload, err := a.newFetcher().FetchProduct(ctx, opts.ASIN)
	if err != nil {
		return err
	}
	catalog := fetcher.CatalogFromPayload(payload, a.seriesIndexes())

	decodeOpts := a.Config.DecodeOptions()
	var windowStart time.Time
	if !opts.FullHistory {
		windowStart = time.Now().UTC().Add(-decodeOpts.Window)
	}

	priceSlot, prices := firstPopulated(catalog, decodeOpts.CurrentPriceCandidates, history.KindPrice, windowStart)
	rankSlot, ranks := firstPopulated(catalog, decodeOpts.RankCandidates, history.KindRank, windowStart)
	if len(prices) == 0 && len(ranks) == 0 {
		a.Logger.Info().Str("asin", opts.ASIN).Msg("no observations to export")
		return nil
	}

	prices = downsample(prices, opts.MaxPoints)
	ranks = downsample(ranks, opts.MaxPoints)
	a.Logger.Info().
		Str("asin", opts.ASIN).
		Int("price_points", len(prices)).
		Int("rank_points", len(ranks)).
		Msg("exporting observations")

	if opts.CSVPath != "" {
		if err := writeObservationsCSV(opts.CSVPath, priceSlot, prices, rankSlot, ranks); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeObservationsPNG(opts.PNGPath, payload.Title, priceSlot, prices, rankSlot, ranks); err != nil {
			return err
		}
	}

	return nil
}

// firstPopulated walks the candidate list in priority order and returns
// the decoded observations of the first slot holding any, mirroring the
// decoder's first-success-wins policy.
func firstPopulated(catalog history.SeriesCatalog, slots []history.Slot, kind history.Kind, windowStart time.Time) (history.Slot, []history.Observation) {
	for _, slot := range slots {
		if obs := history.Observations(catalog[slot], kind, windowStart); len(obs) > 0 {
			return slot, obs
		}
	}
	return "", nil
}

func downsample(obs []history.Observation, max int) []history.Observation {
	if max <= 0 || len(obs) <= max {
		return obs
	}

	result := make([]history.Observation, 0, max)
	step := float64(len(obs)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(obs) {
			idx = len(obs) - 1
		}
		result = append(result, obs[idx])
	}
	return result
}

func writeObservationsCSV(path string, priceSlot history.Slot, prices []history.Observation, rankSlot history.Slot, ranks []history.Observation) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"time", "metric", "slot", "value"}); err != nil {
		return err
	}
	for _, obs := range prices {
		if err := writer.Write([]string{obs.Time.UTC().Format(time.RFC3339), "price", string(priceSlot), obs.Value.StringFixed(2)}); err != nil {
			return err
		}
	}
	for _, obs := range ranks {
		if err := writer.Write([]string{obs.Time.UTC().Format(time.RFC3339), "rank", string(rankSlot), obs.Value.String()}); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeObservationsPNG(path, title string, priceSlot history.Slot, prices []history.Observation, rankSlot history.Slot, ranks []history.Observation) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	series := make([]chart.Series, 0, 2)
	if len(prices) > 1 {
		x := make([]time.Time, len(prices))
		y := make([]float64, len(prices))
		for i, obs := range prices {
			x[i] = obs.Time
			y[i] = obs.Value.InexactFloat64()
		}
		series = append(series, chart.TimeSeries{Name: "Price (" + string(priceSlot) + ")", XValues: x, YValues: y})
	}
	if len(ranks) > 1 {
		x := make([]time.Time, len(ranks))
		y := make([]float64, len(ranks))
		for i, obs := range ranks {
			x[i] = obs.Time
			y[i] = obs.Value.InexactFloat64()
		}
		series = append(series, chart.TimeSeries{
			Name:    "Rank (" + string(rankSlot) + ")",
			XValues: x,
			YValues: y,
			YAxis:   chart.YAxisSecondary,
		})
	}
	if len(series) == 0 {
		return errors.New("not enough observations to chart")
	}

	valueFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Title:  title,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price",
			ValueFormatter: valueFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name: "Sales rank",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

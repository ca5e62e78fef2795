package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"asinwatch/internal/fetcher"
	"asinwatch/internal/history"
)

// Lookup fetches one product payload, decodes it, and prints the report.
func (a *App) Lookup(ctx context.Context, opts LookupOptions) error {
	report, err := a.decodeProduct(ctx, opts.ASIN, opts.Window)
	if err != nil {
		return err
	}

	renderReport(os.Stdout, report)
	return nil
}

func (a *App) decodeProduct(ctx context.Context, asin string, windowOverride time.Duration) (history.DecodedReport, error) {
	payload, err := a.newFetcher().FetchProduct(ctx, asin)
	if err != nil {
		return history.DecodedReport{}, err
	}

	catalog := fetcher.CatalogFromPayload(payload, a.seriesIndexes())

	decodeOpts := a.Config.DecodeOptions()
	if windowOverride > 0 {
		decodeOpts.Window = windowOverride
	}
	decodeOpts.Now = time.Now().UTC()

	meta := history.ProductMeta{
		ASIN:     payload.ASIN,
		Title:    payload.Title,
		Category: payload.Category(),
	}
	return history.Decode(catalog, meta, decodeOpts), nil
}

func renderReport(out *os.File, report history.DecodedReport) {
	if report.Product.Title != "" {
		fmt.Fprintln(out, report.Product.Title)
	}
	if report.Product.Category != "" {
		fmt.Fprintf(out, "Category: %s\n", report.Product.Category)
	}
	fmt.Fprintf(out, "ASIN: %s\n\n", report.Product.ASIN)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Metric\tValue\tSource\tObserved (UTC)")
	writeMetric(writer, "Sales rank", report.CurrentRank, 0)
	writeMetric(writer, "Current price", report.CurrentPrice, 2)
	label := fmt.Sprintf("Low since %s", report.WindowStart.Format("2006-01-02"))
	writeMetric(writer, label, report.WindowMinPrice, 2)
	writer.Flush()
}

func writeMetric(w *tabwriter.Writer, label string, res *history.MetricResult, places int32) {
	if res == nil {
		fmt.Fprintf(w, "%s\tn/a\t-\t-\n", label)
		return
	}
	fmt.Fprintf(
		w,
		"%s\t%s\t%s\t%s\n",
		label,
		res.Value.StringFixed(places),
		res.Slot,
		res.Time.UTC().Format(time.RFC3339),
	)
}

package cli

import (
	"github.com/spf13/cobra"

	"asinwatch/internal/app"
)

var (
	watchFloor     float64
	watchThreshold float64
)

var watchCmd = &cobra.Command{
	Use:   "watch <asin>",
	Short: "Re-check a product on an interval and alert on price moves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.WatchOptions{
			ASIN:         args[0],
			PriceFloor:   watchFloor,
			ThresholdPct: watchThreshold,
		}
		return getApp().Watch(cmd.Context(), opts)
	},
}

func init() {
	watchCmd.Flags().Float64Var(&watchFloor, "floor", 0, "Alert when the current price reaches this value (overrides config)")
	watchCmd.Flags().Float64Var(&watchThreshold, "threshold-pct", 0, "Alert on per-tick price moves of at least this percentage (overrides config)")
}

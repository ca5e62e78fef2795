package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"asinwatch/internal/app"
)

var lookupWindowDays int

var lookupCmd = &cobra.Command{
	Use:   "lookup <asin>",
	Short: "Look up current rank and price for one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if lookupWindowDays < 0 {
			return fmt.Errorf("--window-days cannot be negative")
		}

		opts := app.LookupOptions{
			ASIN:   args[0],
			Window: time.Duration(lookupWindowDays) * 24 * time.Hour,
		}

		return getApp().Lookup(cmd.Context(), opts)
	},
}

func init() {
	lookupCmd.Flags().IntVar(&lookupWindowDays, "window-days", 0, "Trailing window for the minimum-price search (defaults to config)")
}

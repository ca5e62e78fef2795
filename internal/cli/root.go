package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"asinwatch/internal/app"
	"asinwatch/internal/config"
	"asinwatch/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	accessKey string
	appHandle *app.App
)

var rootCmd = &cobra.Command{
	Use:   "asinwatch",
	Short: "Look up product rank and price history",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if accessKey != "" {
			cfg.API.AccessKey = accessKey
		}

		logger := logging.NewLogger(cfg.Logging)
		appHandle = app.NewApp(cfg, logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")
	rootCmd.PersistentFlags().StringVar(&accessKey, "key", "", "Catalog API access key (overrides config)")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}

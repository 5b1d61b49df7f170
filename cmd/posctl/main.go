package main

import (
	"os"

	"github.com/eyeroniq/poslite/internal/config"
	"github.com/eyeroniq/poslite/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:          "posctl",
		Short:        "Record sales, cancel them and print receipts",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			cfg := config.Load()

			if _, err := logger.Init(logger.Options{
				Mode:       cfg.Log.Mode,
				Level:      cfg.Log.Level,
				FileEnable: cfg.Log.FileEnable,
				Filename:   cfg.Log.Filename,
			}); err != nil {
				return err
			}
			if cfg.EnvFileErr != nil {
				zap.S().Warnf(".env file not found, using environment variables: %v", cfg.EnvFileErr)
			}

			var err error
			a, err = newApp(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.Close()
			}
			_ = zap.L().Sync()
		},
	}

	appFn := func() *app { return a }
	root.AddCommand(
		newMigrateCmd(appFn),
		newProductCmd(appFn),
		newClientCmd(appFn),
		newSaleCmd(appFn),
		newReceiptCmd(appFn),
		newSettingsCmd(appFn),
	)
	return root
}

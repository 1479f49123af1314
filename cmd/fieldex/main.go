// Package main provides the CLI entry point for fieldex.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plandoc/fieldex-go/internal/config"
	"github.com/plandoc/fieldex-go/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldex",
		Short: "Extract form-field definitions from spreadsheet document templates",
		Long: `fieldex reads spreadsheet document templates, infers their fillable
field structure (prompt, type, section, owning role) and keeps the
field-definition store and the template bucket in sync.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newExtractCmd(),
		newSyncCmd(),
		newUploadCmd(),
		newVerifyCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp loads the configuration and builds the logger the service commands
// share. The caller owns the logger sync.
func loadApp() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, log, nil
}

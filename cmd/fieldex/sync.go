package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plandoc/fieldex-go/internal/store"
	"github.com/plandoc/fieldex-go/pkg/fieldex"
	"github.com/plandoc/fieldex-go/pkg/fieldex/loader"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [dir]",
		Short: "Extract fields from every template workbook and persist new ones",
		Long: `sync runs the extraction engine over every spreadsheet in the template
directory and writes the resulting field definitions to the store. Fields
whose code already exists are left untouched, so manual edits survive
re-runs. A file that fails is reported and skipped; the rest still run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadApp()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}

			dir := cfg.Templates.Dir
			if len(args) > 0 {
				dir = args[0]
			}
			files, err := listSpreadsheets(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				log.Warn("no spreadsheet templates found", zap.String("dir", dir))
				return nil
			}

			st, err := store.Open(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			if err := st.Ping(ctx); err != nil {
				return fmt.Errorf("database unreachable: %w", err)
			}

			for _, file := range files {
				syncFile(ctx, st, log, file)
			}
			return nil
		},
	}
	return cmd
}

// syncFile processes a single workbook end to end. Failures are logged, not
// propagated: one broken template must not abort the batch.
func syncFile(ctx context.Context, st *store.Store, log *zap.Logger, path string) {
	flog := log.With(zap.String("file", filepath.Base(path)))

	templateID, err := st.TemplateIDByFile(ctx, path)
	if err != nil {
		flog.Warn("template not registered, run upload first", zap.Error(err))
		return
	}

	ex, err := fieldex.Extract(path, templateID, fieldex.DefaultOptions())
	if err != nil {
		flog.Error("extraction failed", zap.Error(err))
		return
	}

	for _, sheet := range ex.Sheets {
		slog := flog.With(zap.String("sheet", sheet.Sheet))
		switch {
		case sheet.Error != "":
			slog.Warn("sheet failed", zap.String("error", sheet.Error))
		case sheet.Skipped:
			slog.Debug("sheet skipped as reference list")
		default:
			slog.Info("sheet extracted", zap.Int("fields", sheet.Fields))
		}
	}

	if ex.Empty() {
		flog.Warn("no fields could be extracted",
			zap.Int("sheets_skipped", ex.SheetsSkipped()),
			zap.Int("sheets_failed", ex.SheetsFailed()))
		return
	}

	res, err := st.SyncFields(ctx, ex.Fields)
	if err != nil {
		flog.Error("persisting fields failed", zap.Error(err))
		return
	}
	flog.Info("template synced",
		zap.String("template_id", templateID),
		zap.Int("fields_extracted", len(ex.Fields)),
		zap.Int("created", res.Created),
		zap.Int("existing", res.Existing),
		zap.Int("sheets_skipped", ex.SheetsSkipped()))
}

// listSpreadsheets returns the loadable spreadsheet files in dir, sorted for
// deterministic processing order.
func listSpreadsheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !loader.Supported(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

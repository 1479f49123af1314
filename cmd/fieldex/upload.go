package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plandoc/fieldex-go/internal/config"
	"github.com/plandoc/fieldex-go/internal/storage"
	"github.com/plandoc/fieldex-go/internal/store"
)

var templateExtensions = map[string]string{
	".xlsx": "excel",
	".xls":  "excel",
	".docx": "word",
	".doc":  "word",
}

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [dir]",
		Short: "Upload template files to object storage and register them",
		Long: `upload pushes every template document in the directory to the object
store and upserts a template row for each, keyed by the code derived from
the file name. Re-running overwrites the stored copies without creating
duplicate rows.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadApp()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.ValidateStorage(); err != nil {
				return err
			}
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}

			dir := cfg.Templates.Dir
			if len(args) > 0 {
				dir = args[0]
			}
			files, err := listTemplateFiles(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				log.Warn("no template files found", zap.String("dir", dir))
				return nil
			}

			bucket, err := storage.New(cfg.Storage)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			var uploaded, failed int
			for _, file := range files {
				if err := uploadFile(ctx, cfg, bucket, st, file); err != nil {
					log.Error("upload failed",
						zap.String("file", filepath.Base(file)), zap.Error(err))
					failed++
					continue
				}
				log.Info("template uploaded", zap.String("file", filepath.Base(file)))
				uploaded++
			}
			log.Info("upload finished", zap.Int("uploaded", uploaded), zap.Int("failed", failed))
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(files))
			}
			return nil
		},
	}
	return cmd
}

func uploadFile(ctx context.Context, cfg *config.Config, bucket *storage.Bucket, st *store.Store, path string) error {
	object, err := bucket.UploadTemplate(ctx, path)
	if err != nil {
		return err
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	tpl := store.Template{
		Code:     store.CodeFromFilename(base),
		Name:     name,
		FileType: templateExtensions[strings.ToLower(filepath.Ext(base))],
		FileURL:  cfg.Storage.Bucket + "/" + object,
		Active:   true,
	}
	if _, err := st.UpsertTemplate(ctx, tpl); err != nil {
		return fmt.Errorf("register template: %w", err)
	}
	return nil
}

// listTemplateFiles returns the uploadable documents in dir, spreadsheets and
// word documents alike, sorted for deterministic order.
func listTemplateFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := templateExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plandoc/fieldex-go/internal/store"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Report persisted field counts per template",
		Long: `verify lists every active template with the number of fields currently
persisted for it, broken down by type, section and assigned role, so an
operator can confirm a sync run covered everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadApp()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.ValidateDatabase(); err != nil {
				return err
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

			summaries, err := st.TemplateSummaries(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no active templates registered")
				return nil
			}

			out := cmd.OutOrStdout()
			var total int
			for _, s := range summaries {
				total += s.Total
				fmt.Fprintf(out, "%s (%s)\n", s.Template.Name, s.Template.Code)
				fmt.Fprintf(out, "  fields: %d\n", s.Total)
				if s.Total == 0 {
					continue
				}
				fmt.Fprintf(out, "  by type:    %s\n", formatCounts(s.ByType))
				fmt.Fprintf(out, "  by section: %s\n", formatCounts(s.BySection))
				fmt.Fprintf(out, "  by role:    %s\n", formatCounts(s.ByRole))
				fmt.Fprintf(out, "  sheets:     %s\n", strings.Join(s.Sheets, ", "))
			}
			fmt.Fprintf(out, "\n%d templates, %d fields total\n", len(summaries), total)
			return nil
		},
	}
	return cmd
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

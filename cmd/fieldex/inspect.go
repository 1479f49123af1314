package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plandoc/fieldex-go/pkg/fieldex/loader"
	"github.com/plandoc/fieldex-go/pkg/fieldex/parser"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <workbook>",
		Short: "Show the sheets of a workbook and how the engine would treat them",
		Long: `inspect loads a workbook and prints each sheet with its dimensions, a
preview of the first row, and whether the engine would skip it as a
reference list. Useful for checking a template before syncing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}

			wb, err := loader.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d sheets\n", wb.BookName, len(wb.Sheets))
			for i, sheet := range wb.Sheets {
				rows := len(sheet.Grid)
				cols := 0
				if rows > 0 {
					cols = len(sheet.Grid[0])
				}
				verdict := "extract"
				if parser.IsReferenceSheet(sheet.Name, sheet.Grid) {
					verdict = "skip (reference list)"
				}
				fmt.Fprintf(out, "%2d. %-30s %4d rows x %3d cols  %s\n",
					i+1, sheet.Name, rows, cols, verdict)
				if rows > 0 {
					fmt.Fprintf(out, "    first row: %s\n", previewRow(sheet.Grid[0]))
				}
			}
			return nil
		},
	}
	return cmd
}

// previewRow renders the leading non-empty cells of a row, capped so wide
// sheets stay readable.
func previewRow(row []string) string {
	const maxCells = 6
	out := ""
	n := 0
	for _, cell := range row {
		if cell == "" {
			continue
		}
		if n == maxCells {
			out += " ..."
			break
		}
		if n > 0 {
			out += " | "
		}
		out += cell
		n++
	}
	if out == "" {
		return "(empty)"
	}
	return out
}

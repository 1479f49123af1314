package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plandoc/fieldex-go/pkg/fieldex"
)

func newExtractCmd() *cobra.Command {
	var (
		templateID string
		outputPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract field definitions from one workbook and emit JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}

			ex, err := fieldex.Extract(inputPath, templateID, fieldex.DefaultOptions())
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			var data []byte
			if pretty {
				data, err = json.MarshalIndent(ex, "", "  ")
			} else {
				data, err = json.Marshal(ex)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			} else {
				fmt.Println(string(data))
			}

			if ex.Empty() {
				fmt.Fprintln(os.Stderr, "warning: no fields could be extracted")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&templateID, "template-id", "", "Template id to stamp on extracted fields")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
)

var (
	allCapsCodePattern = regexp.MustCompile(`^[A-Z_]+$`)
	digitsOnlyPattern  = regexp.MustCompile(`^\d+$`)
)

// HeaderParams bounds the header-row strategy.
type HeaderParams struct {
	// MaxHeaderCells is the widest first row still treated as a form; wider
	// rows look like data tables and yield nothing.
	MaxHeaderCells int
	// MaxPromptLen is the longest header text accepted as a field label.
	MaxPromptLen int
	// MaxSampleLen is the longest row-1 sample under which the column is
	// still a fillable field rather than embedded reference data.
	MaxSampleLen int
	// Role is assigned to every emitted field.
	Role string
}

// ExtractHeaderFields treats the first row of the grid as column headers and
// emits one field per header cell that survives the noise filters. The sample
// value for type inference and placeholder text comes from row 1, same
// column. Order is the 1-based column index.
func ExtractHeaderFields(grid [][]string, sheetName, templateID, section string, p HeaderParams) []models.FieldDefinition {
	if len(grid) == 0 {
		return nil
	}
	header := grid[0]
	if countNonEmpty(header) > p.MaxHeaderCells {
		return nil
	}

	var fields []models.FieldDefinition
	for col, cell := range header {
		prompt := strings.TrimSpace(cell)
		if prompt == "" {
			continue
		}
		if utf8.RuneCountInString(prompt) > p.MaxPromptLen {
			continue // sheet title spilling into the header row
		}
		if allCapsCodePattern.MatchString(prompt) || digitsOnlyPattern.MatchString(prompt) {
			continue // machine codes and bare numbers are not labels
		}

		sample := ""
		if len(grid) > 1 && col < len(grid[1]) {
			sample = strings.TrimSpace(grid[1][col])
		}
		if utf8.RuneCountInString(sample) > p.MaxSampleLen {
			continue // embedded reference data, not a fillable cell
		}

		order := col + 1
		fields = append(fields, models.FieldDefinition{
			TemplateID:   templateID,
			Code:         FieldCode(sheetName, order),
			Prompt:       prompt,
			Description:  sheetProvenance(sheetName),
			SourceSheet:  sheetName,
			SourceCell:   CellRef(col, 0),
			SectionLabel: section,
			Type:         InferType(sample, prompt),
			Settings: models.FieldSettings{
				Placeholder: placeholderFor(sample, prompt),
			},
			AssignedRole: p.Role,
			Order:        order,
		})
	}
	return fields
}

func countNonEmpty(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func placeholderFor(sample, prompt string) string {
	if sample != "" {
		return sample
	}
	return "Ingrese " + strings.ToLower(prompt)
}

func sheetProvenance(sheetName string) string {
	return fmt.Sprintf("Campo extraído de la hoja %q", sheetName)
}

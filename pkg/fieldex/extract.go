package fieldex

import (
	"fmt"

	"github.com/plandoc/fieldex-go/pkg/fieldex/loader"
	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
	"github.com/plandoc/fieldex-go/pkg/fieldex/parser"
)

// Extract loads the workbook at path and extracts field definitions for
// templateID. Only a failure to read the workbook container itself is
// returned as an error; data-quality problems inside sheets degrade to
// skipped candidates.
func Extract(path, templateID string, opts Options) (*models.Extraction, error) {
	wb, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return ExtractTemplate(wb, templateID, opts), nil
}

// ExtractTemplate runs the per-sheet pipeline over every sheet in order and
// merges the results. It is a pure function of its inputs: identical workbook
// content and templateID always produce identical output, codes included.
func ExtractTemplate(wb *models.Workbook, templateID string, opts Options) *models.Extraction {
	ex := &models.Extraction{TemplateID: templateID, BookName: wb.BookName}
	codes := make(map[string]bool)
	for _, sheet := range wb.Sheets {
		res := extractSheet(sheet, templateID, codes, opts)
		ex.Sheets = append(ex.Sheets, res.SheetReport)
		ex.Fields = append(ex.Fields, res.fields...)
	}
	return ex
}

type sheetResult struct {
	models.SheetReport
	fields []models.FieldDefinition
}

// extractSheet drives one sheet through
// classify -> header extract -> (fallback) question-answer scan -> merge.
// A panic while walking a malformed grid is contained here: the sheet is
// reported as failed and the workbook run continues.
func extractSheet(sheet models.Sheet, templateID string, codes map[string]bool, opts Options) (res sheetResult) {
	res.Sheet = sheet.Name
	defer func() {
		if r := recover(); r != nil {
			serr := &SheetError{Sheet: sheet.Name, Stage: "extract", Err: fmt.Errorf("%v", r)}
			res = sheetResult{SheetReport: models.SheetReport{Sheet: sheet.Name, Error: serr.Error()}}
		}
	}()

	if parser.IsReferenceSheet(sheet.Name, sheet.Grid) {
		res.Skipped = true
		return res
	}

	section := parser.InferSection(sheet.Grid, sheet.Name, opts.SectionScanRows)
	fields := parser.ExtractHeaderFields(sheet.Grid, sheet.Name, templateID, section, opts.headerParams())

	if len(fields) < opts.MinHeaderFields && len(sheet.Grid) > 1 {
		// Header prompts and their sample values are off limits for the
		// scanner, otherwise the row under the header re-emits as fields.
		taken := make([]string, 0, len(fields)*2)
		maxOrder := 0
		for _, f := range fields {
			taken = append(taken, f.Prompt, f.Settings.Placeholder)
			if f.Order > maxOrder {
				maxOrder = f.Order
			}
		}
		scanned := parser.ScanQuestionAnswerPairs(sheet.Grid, sheet.Name, templateID, section, maxOrder+1, taken, opts.scanParams())
		fields = append(fields, scanned...)
	}

	// Codes must stay unique across the whole run; a colliding field is
	// dropped, never overwritten.
	for _, f := range fields {
		if codes[f.Code] {
			continue
		}
		codes[f.Code] = true
		res.fields = append(res.fields, f)
	}
	res.Fields = len(res.fields)
	return res
}

package models

// SheetReport summarizes what one sheet contributed to an extraction run.
type SheetReport struct {
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// Skipped is true when the sheet was classified as a reference list.
	Skipped bool `json:"skipped,omitempty"`
	// Fields is the number of field definitions the sheet yielded.
	Fields int `json:"fields"`
	// Error is set when the sheet could not be processed; the run continued.
	Error string `json:"error,omitempty"`
}

// Extraction is the result of one template-extraction run.
type Extraction struct {
	// TemplateID is the template the fields were extracted for.
	TemplateID string `json:"template_id"`
	// BookName is the source workbook file name.
	BookName string `json:"book_name,omitempty"`
	// Fields lists the extracted definitions in emission order.
	Fields []FieldDefinition `json:"fields"`
	// Sheets reports every sheet in workbook order, including skipped ones.
	Sheets []SheetReport `json:"sheets"`
}

// Empty reports whether the run produced no fields at all. An empty run is a
// valid outcome, surfaced to operators as a warning rather than an error.
func (e *Extraction) Empty() bool {
	return len(e.Fields) == 0
}

// SheetsSkipped counts the sheets excluded as reference lists.
func (e *Extraction) SheetsSkipped() int {
	n := 0
	for _, s := range e.Sheets {
		if s.Skipped {
			n++
		}
	}
	return n
}

// SheetsFailed counts the sheets that could not be processed.
func (e *Extraction) SheetsFailed() int {
	n := 0
	for _, s := range e.Sheets {
		if s.Error != "" {
			n++
		}
	}
	return n
}

package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
)

// ScanParams bounds the question-answer fallback scan.
type ScanParams struct {
	// ScanCols is how many columns of each row are inspected. Section-title
	// rows are detected across this full width.
	ScanCols int
	// EmitCols restricts which columns may yield fields: legacy forms keep
	// prompts in the first columns and instructional text to the right, so
	// the scan window is wider than the emission window.
	EmitCols int
	// MinPromptLen / MaxPromptLen bound accepted prompt text; MaxPromptLen
	// is exclusive.
	MinPromptLen int
	MaxPromptLen int
	// Role is assigned to every emitted field.
	Role string
}

// Section-title bounds: fragments in this rune-length band that carry a
// section token become the running section label instead of a field.
const (
	sectionTitleMinLen = 50
	sectionTitleMaxLen = 200
	sectionLabelMaxLen = 50
)

var sectionTitleTokens = []string{"FASE", "INFORMACIÓN", "CARACTERIZACIÓN", "DISTRIBUCIÓN"}

var (
	sectionLabelPattern   = regexp.MustCompile(`(?i)(FASE\s+[IVX]+\.?\s*[^-\n]+|INFORMACIÓN\s+[^-\n]+|CARACTERIZACIÓN[^-\n]+|DISTRIBUCIÓN[^-\n]+)`)
	allCapsTextPattern    = regexp.MustCompile(`^[A-Z_\s]+$`)
	processTitlePattern   = regexp.MustCompile(`(?i)^PROCESO`)
	bareNumberingPattern  = regexp.MustCompile(`^\d+\.?\s*$`)
	phaseTitlePattern     = regexp.MustCompile(`(?i)^FASE\s+[IVX]+`)
	infoTitlePattern      = regexp.MustCompile(`(?i)^INFORMACIÓN\s+(GENERAL|COMPLEMENTARIA)`)
	leadingSectionPattern = regexp.MustCompile(`(?i)^(FASE|INFORMACIÓN|CARACTERIZACIÓN|DISTRIBUCIÓN|PROCESO)`)
)

// Late overrides for title-like text that slips past the cheap checks.
const (
	upperTitleLen   = 60
	sectionTitleLen = 40
)

// scanState is the accumulator threaded through the row fold: the section
// carried over from the last title row, the next order number, the prompts
// already taken (across both strategies), and the fields emitted so far.
// Keeping it explicit makes the carryover rule testable one row at a time.
type scanState struct {
	section string
	order   int
	seen    map[string]bool
	fields  []models.FieldDefinition
}

// ScanQuestionAnswerPairs walks the grid row by row looking for short prompt
// fragments, the fallback when the header strategy under-produces. Fields are
// emitted only from the first EmitCols columns; section-title rows anywhere
// in the scan width update the running section label for every later field.
// Numbering continues from startOrder so combined output stays monotonic, and
// taken prompts (the header strategy's prompts and sample values) are never
// re-emitted.
func ScanQuestionAnswerPairs(grid [][]string, sheetName, templateID, section string, startOrder int, taken []string, p ScanParams) []models.FieldDefinition {
	st := scanState{section: section, order: startOrder, seen: make(map[string]bool, len(taken))}
	for _, t := range taken {
		st.seen[t] = true
	}
	for rowIdx, row := range grid {
		st = scanRow(st, row, rowIdx, sheetName, templateID, p)
	}
	return st.fields
}

// scanRow folds one row into the scan state.
func scanRow(st scanState, row []string, rowIdx int, sheetName, templateID string, p ScanParams) scanState {
	for col := 0; col < len(row) && col < p.ScanCols; col++ {
		text := strings.TrimSpace(row[col])
		if text == "" {
			continue
		}
		n := utf8.RuneCountInString(text)
		if n < p.MinPromptLen {
			continue
		}

		if label, ok := sectionTitle(text, n); ok {
			st.section = label
			continue
		}

		if col >= p.EmitCols {
			continue
		}
		if !isPromptCandidate(text, n, p) {
			continue
		}
		if st.seen[text] {
			continue
		}
		st.seen[text] = true
		st.fields = append(st.fields, models.FieldDefinition{
			TemplateID:   templateID,
			Code:         FieldCode(sheetName, st.order),
			Prompt:       text,
			Description:  sheetProvenance(sheetName),
			SourceSheet:  sheetName,
			SourceCell:   CellRef(col, rowIdx),
			SectionLabel: st.section,
			Type:         InferType("", text),
			Settings: models.FieldSettings{
				Placeholder: "Ingrese " + strings.ToLower(text),
			},
			AssignedRole: p.Role,
			Order:        st.order,
		})
		st.order++
	}
	return st
}

// sectionTitle reports whether the cell is a section-title fragment and, if
// so, the bounded label to carry forward.
func sectionTitle(text string, n int) (string, bool) {
	if n <= sectionTitleMinLen || n >= sectionTitleMaxLen {
		return "", false
	}
	if !containsAny(text, sectionTitleTokens) {
		return "", false
	}
	m := sectionLabelPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return truncateRunes(strings.TrimSpace(m), sectionLabelMaxLen), true
}

// isPromptCandidate applies the field-candidate filters in order; the two
// length-dependent overrides run last so they can reject title-like text that
// passed the cheaper checks.
func isPromptCandidate(text string, n int, p ScanParams) bool {
	if n < p.MinPromptLen || n >= p.MaxPromptLen {
		return false
	}
	if allCapsTextPattern.MatchString(text) {
		return false
	}
	if processTitlePattern.MatchString(text) {
		return false
	}
	if bareNumberingPattern.MatchString(text) {
		return false
	}
	if strings.Contains(text, "\r\n") {
		return false
	}
	if phaseTitlePattern.MatchString(text) {
		return false
	}
	if infoTitlePattern.MatchString(text) {
		return false
	}
	if n > upperTitleLen && text == strings.ToUpper(text) {
		return false
	}
	if leadingSectionPattern.MatchString(text) && n > sectionTitleLen {
		return false
	}
	return true
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

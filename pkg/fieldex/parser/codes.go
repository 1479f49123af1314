package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// codePrefix and abbrevLen bound the generated field codes: the sheet
// abbreviation keeps provenance visible without letting long sheet names blow
// up the code length.
const (
	codePrefix = "CAMPO"
	abbrevLen  = 10
)

// FieldCode builds the deterministic, sheet-scoped field code:
// CAMPO-<sheet abbreviation>-<position>. The same sheet and position always
// yield the same code, which is what lets the store skip already-persisted
// fields on re-runs.
func FieldCode(sheetName string, position int) string {
	return fmt.Sprintf("%s-%s-%d", codePrefix, sheetAbbrev(sheetName), position)
}

// sheetAbbrev keeps the first abbrevLen alphanumeric characters of the
// uppercased sheet name. Accented letters fall outside [A-Z0-9] and are
// dropped, keeping codes in the [A-Z0-9-] charset.
func sheetAbbrev(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == abbrevLen {
				break
			}
		}
	}
	return b.String()
}

// CellRef returns an A1-style reference for 0-based column and row indexes.
func CellRef(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	return name
}

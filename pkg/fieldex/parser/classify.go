// Package parser implements the heuristics that turn a sheet grid into
// form-field definitions.
package parser

import "strings"

// Sheet names used for dropdown/lookup data in the template set.
var listKeywords = []string{
	"lista", "listado", "código", "codigo", "cod",
	"referencia", "datos", "depto", "mun", "poblado", "barrio",
	"comuna", "resgu", "pais", "comunidad",
}

// Sheets whose names look like lists but hold real form structure.
var exceptionKeywords = []string{"formato", "instructivo", "instrucciones", "orientaciones"}

const (
	// hardRowLimit skips a sheet regardless of its name.
	hardRowLimit = 500
	// listRowLimit and listColLimit apply only together with a list keyword.
	listRowLimit = 200
	listColLimit = 30
)

// classifyRule is one ordered step of the reference-sheet decision. The first
// rule whose predicate fires decides; rule order encodes the precedence
// (size cap, then name exceptions, then list-keyword matching).
type classifyRule struct {
	applies   func(nameLower string, grid [][]string) bool
	reference bool
}

var classifyRules = []classifyRule{
	{func(_ string, grid [][]string) bool {
		return len(grid) > hardRowLimit
	}, true},
	{func(name string, _ [][]string) bool {
		return containsAny(name, exceptionKeywords)
	}, false},
	{func(name string, grid [][]string) bool {
		if !containsAny(name, listKeywords) {
			return false
		}
		if len(grid) > listRowLimit {
			return true
		}
		return len(grid) > 0 && len(grid[0]) > listColLimit
	}, true},
}

// IsReferenceSheet reports whether a sheet holds lookup data (dropdown
// options, code tables) rather than form structure. Reference sheets are
// excluded from extraction.
func IsReferenceSheet(sheetName string, grid [][]string) bool {
	name := strings.ToLower(sheetName)
	for _, r := range classifyRules {
		if r.applies(name, grid) {
			return r.reference
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package parser

import "strings"

// sectionRule maps row-text keywords to the canonical section title used for
// UI tab grouping.
type sectionRule struct {
	keywords []string
	title    string
}

var sectionRules = []sectionRule{
	{[]string{"datos generales", "información general", "informacion general"}, "DATOS GENERALES"},
	{[]string{"caracterización", "caracterizacion"}, "CARACTERIZACIÓN"},
	{[]string{"distribución", "distribucion"}, "DISTRIBUCIÓN DE ÁREAS"},
	{[]string{"participantes"}, "PARTICIPANTES"},
	{[]string{"actividades"}, "ACTIVIDADES"},
	{[]string{"seguimiento", "monitoreo"}, "SEGUIMIENTO"},
}

// InferSection scans at most the first maxRows rows for a section keyword and
// returns the matching canonical title, defaulting to the sheet name. Later
// keyword rows override earlier ones; within one row the first matching rule
// wins.
func InferSection(grid [][]string, sheetName string, maxRows int) string {
	section := sheetName
	limit := min(maxRows, len(grid))
	for i := 0; i < limit; i++ {
		text := strings.ToLower(strings.Join(grid[i], " "))
		for _, r := range sectionRules {
			if containsAny(text, r.keywords) {
				section = r.title
				break
			}
		}
	}
	return section
}

package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func testScanParams() ScanParams {
	return ScanParams{ScanCols: 10, EmitCols: 5, MinPromptLen: 5, MaxPromptLen: 80, Role: "ANALISTA"}
}

func TestScanQuestionAnswerPairs(t *testing.T) {
	grid := [][]string{
		{"DATOS DEL PREDIO"},
		{"¿Cuál es el nombre del representante legal?"},
		{"Sí"},
		{"Teléfono de contacto del solicitante"},
	}
	fields := ScanQuestionAnswerPairs(grid, "FORMATO", "tpl-1", "FORMATO", 1, nil, testScanParams())

	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	f := fields[0]
	if f.Prompt != "¿Cuál es el nombre del representante legal?" {
		t.Errorf("Prompt = %q", f.Prompt)
	}
	if f.Order != 1 {
		t.Errorf("Order = %d, want 1", f.Order)
	}
	if f.Code != "CAMPO-FORMATO-1" {
		t.Errorf("Code = %q", f.Code)
	}
	if f.SourceCell != "A2" {
		t.Errorf("SourceCell = %q, want A2", f.SourceCell)
	}
	if f.Settings.Placeholder != "Ingrese ¿cuál es el nombre del representante legal?" {
		t.Errorf("Placeholder = %q", f.Settings.Placeholder)
	}
	if fields[1].Order != 2 {
		t.Errorf("second Order = %d, want 2", fields[1].Order)
	}
}

func TestScanOrderContinuesFromStart(t *testing.T) {
	grid := [][]string{
		{"Nombre de la vereda"},
		{"Nombre del municipio"},
	}
	fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "S", 3, nil, testScanParams())
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Order != 3 || fields[1].Order != 4 {
		t.Errorf("orders = %d, %d, want 3, 4", fields[0].Order, fields[1].Order)
	}
	if fields[0].Code != "CAMPO-HOJA1-3" {
		t.Errorf("Code = %q", fields[0].Code)
	}
}

func TestScanSectionCarryover(t *testing.T) {
	title := "FASE I. INFORMACIÓN GENERAL DEL PREDIO Y SUS LINDEROS"
	grid := [][]string{
		{"Nombre del solicitante"},
		{title},
		{"Nombre de la vereda"},
	}
	fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "Hoja1", 1, nil, testScanParams())
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].SectionLabel != "Hoja1" {
		t.Errorf("field before title: SectionLabel = %q, want Hoja1", fields[0].SectionLabel)
	}
	got := fields[1].SectionLabel
	if !strings.HasPrefix(got, "FASE I. INFORMACIÓN GENERAL") {
		t.Errorf("field after title: SectionLabel = %q", got)
	}
	if utf8.RuneCountInString(got) > 50 {
		t.Errorf("SectionLabel is %d runes, want at most 50", utf8.RuneCountInString(got))
	}
}

func TestScanSectionTitleBeyondEmitColumns(t *testing.T) {
	// A title in column F is outside the emission window but inside the scan
	// window, so it must still update the running section.
	title := "CARACTERIZACIÓN BIOFÍSICA DEL ÁREA OBJETO DE LA SOLICITUD DE REGISTRO"
	grid := [][]string{
		{"", "", "", "", "", title},
		{"Tipo de cobertura vegetal"},
	}
	fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "Hoja1", 1, nil, testScanParams())
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if !strings.HasPrefix(fields[0].SectionLabel, "CARACTERIZACIÓN") {
		t.Errorf("SectionLabel = %q", fields[0].SectionLabel)
	}
}

func TestScanSkipsTakenAndDuplicatePrompts(t *testing.T) {
	grid := [][]string{
		{"Nombre del predio"},
		{"Nombre de la vereda"},
		{"Nombre de la vereda"},
	}
	taken := []string{"Nombre del predio", "Finca El Roble"}
	fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "S", 1, taken, testScanParams())
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Prompt != "Nombre de la vereda" {
		t.Errorf("Prompt = %q", fields[0].Prompt)
	}
}

func TestScanEmitColumnWindow(t *testing.T) {
	grid := [][]string{
		{"", "", "", "", "Nombre del predio", "Texto de instrucciones largo"},
	}
	fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "S", 1, nil, testScanParams())
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].SourceCell != "E1" {
		t.Errorf("SourceCell = %q, want E1", fields[0].SourceCell)
	}
}

func TestScanPromptFilters(t *testing.T) {
	tests := []struct {
		name string
		text string
		kept bool
	}{
		{"normal prompt", "Nombre del solicitante", true},
		{"below min length", "Sí", false},
		{"at max length rejected", strings.Repeat("a", 80), false},
		{"just under max kept", strings.Repeat("a", 79), true},
		{"all caps heading", "DATOS DEL PREDIO", false},
		{"proceso title", "Proceso de restauración ecológica", false},
		{"bare numbering", "12345. ", false},
		{"bare number", "12345", false},
		{"embedded crlf", "Nombre\r\ndel predio", false},
		{"phase heading", "Fase II actividades de seguimiento", false},
		{"info heading", "Información general del predio", false},
		{"leading section word but short", "Caracterización del suelo", true},
		{"leading section word and long", "Caracterización del área según los criterios del anexo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := [][]string{{tt.text}}
			fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "S", 1, nil, testScanParams())
			if got := len(fields) == 1; got != tt.kept {
				t.Errorf("kept = %v, want %v", got, tt.kept)
			}
		})
	}
}

func TestScanLongUppercaseTitleRejected(t *testing.T) {
	// Uppercase text with digits escapes the all-caps pattern but is still a
	// title once it passes the length override.
	text := strings.Repeat("TITULO 9 ", 8) // 72 runes, uppercase, not [A-Z_\s] only
	text = strings.TrimSpace(text)
	grid := [][]string{{text}}
	fields := ScanQuestionAnswerPairs(grid, "Hoja1", "tpl", "S", 1, nil, testScanParams())
	if len(fields) != 0 {
		t.Errorf("expected 0 fields, got %d (%q)", len(fields), fields[0].Prompt)
	}
}

func TestScanEmptyGrid(t *testing.T) {
	if fields := ScanQuestionAnswerPairs(nil, "Hoja1", "tpl", "S", 1, nil, testScanParams()); len(fields) != 0 {
		t.Errorf("expected no fields, got %d", len(fields))
	}
}

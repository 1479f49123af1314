package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "FORMATO"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	f.SetCellValue("FORMATO", "A1", "Nombre del predio")
	f.SetCellValue("FORMATO", "B1", "Área (ha)")
	f.SetCellValue("FORMATO", "A2", "Finca El Roble")
	f.SetCellValue("FORMATO", "B2", 120)

	if _, err := f.NewSheet("Lista_Municipios"); err != nil {
		t.Fatalf("add sheet: %v", err)
	}
	f.SetCellValue("Lista_Municipios", "A1", "05001")
	f.SetCellValue("Lista_Municipios", "B1", "Medellín")

	path := filepath.Join(t.TempDir(), "formato.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save test workbook: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeTestWorkbook(t)

	wb, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if wb.BookName != "formato.xlsx" {
		t.Errorf("BookName = %q", wb.BookName)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(wb.Sheets))
	}
	if wb.Sheets[0].Name != "FORMATO" || wb.Sheets[1].Name != "Lista_Municipios" {
		t.Errorf("sheet order = %q, %q", wb.Sheets[0].Name, wb.Sheets[1].Name)
	}

	grid := wb.Sheets[0].Grid
	if len(grid) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid))
	}
	if grid[0][0] != "Nombre del predio" || grid[0][1] != "Área (ha)" {
		t.Errorf("header row = %v", grid[0])
	}
	if grid[1][1] != "120" {
		t.Errorf("numeric cell = %q, want \"120\"", grid[1][1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"plantilla.xlsx", true},
		{"PLANTILLA.XLSX", true},
		{"formato.xls", true},
		{"macro.xlsm", true},
		{"plantilla.xltx", true},
		{"documento.docx", false},
		{"datos.csv", false},
		{"sin-extension", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

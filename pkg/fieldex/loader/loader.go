// Package loader reads spreadsheet containers into the in-memory grid the
// extraction engine works on.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
)

// ErrUnsupportedFormat indicates the file extension is not a spreadsheet
// container the loader understands.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Extensions lists the spreadsheet file extensions the loader accepts.
var Extensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls"}

// Supported reports whether path has a loadable spreadsheet extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads the workbook at path. Both the OOXML container (.xlsx family)
// and the legacy binary container (.xls) are presented through the same grid
// abstraction: sheet and row/column order is preserved and missing cells come
// back as empty strings. A worksheet that cannot be read yields an empty grid
// for its slot; only container-level failures return an error.
func Load(path string) (*models.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadXLSX(path)
	case ".xls":
		return loadXLS(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadXLSX(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &models.Workbook{BookName: filepath.Base(path)}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			rows = nil
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: sheetName, Grid: rows})
	}
	return wb, nil
}

func loadXLS(path string) (*models.Workbook, error) {
	book, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}

	wb := &models.Workbook{BookName: filepath.Base(path)}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		var grid [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			grid = append(grid, cells)
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: sheet.Name, Grid: grid})
	}
	return wb, nil
}

// Package models defines data structures for template field extraction.
package models

// Sheet represents one worksheet as a rectangular grid of cell text.
// Empty cells are empty strings; rows may be ragged.
type Sheet struct {
	// Name is the worksheet tab name.
	Name string `json:"name"`
	// Grid holds cell values as rows of columns.
	Grid [][]string `json:"grid"`
}

// Workbook is the in-memory form of a spreadsheet template.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets preserves the original sheet order.
	Sheets []Sheet `json:"sheets"`
}

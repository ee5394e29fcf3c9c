package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/readingroadmap/bestsellers/internal/transform"
)

const sheetName = "Sheet1"

// SpreadsheetHeader is the header row of the exported sheet
var SpreadsheetHeader = []string{"title", "author", "isbn", "ar_level", "course", "level"}

// WriteSpreadsheet writes all records to a single-sheet XLSX file, replacing any existing file
func WriteSpreadsheet(path string, records []transform.BookRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(SpreadsheetHeader))
	for i, h := range SpreadsheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell for row %d: %w", i+2, err)
		}
		row := []interface{}{rec.Title, rec.Author, rec.ISBN, rec.ARLevel, rec.Course, rec.Level}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	return nil
}

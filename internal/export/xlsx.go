package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

// WriteXLSX writes the header and rows to the first sheet of a new workbook.
// Flag columns are stored as numbers.
func WriteXLSX(path string, rows []normalize.Row) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range normalize.Header() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header cell %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		r := i + 2
		for j, value := range row.Values() {
			cell, _ := excelize.CoordinatesToCellName(j+1, r)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// export/excel.go
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/salihkiraz/lumen-theme/theme"
)

// SheetName is the workbook sheet holding the inventory.
const SheetName = "Themes"

// WriteXLSX saves the inventory as an Excel workbook with a styled
// header row and readable column widths.
func WriteXLSX(path string, themes []*theme.Info) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err == nil {
		start, _ := excelize.CoordinatesToCellName(1, 1)
		end, _ := excelize.CoordinatesToCellName(len(Header), 1)
		f.SetCellStyle(SheetName, start, end, style)
	}

	rows := Rows(themes)
	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(SheetName, cell, val)
		}
	}

	setColumnWidths(f, rows)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// setColumnWidths sizes each column to its longest value, clamped to a
// readable range.
func setColumnWidths(f *excelize.File, rows [][]string) {
	for col := range Header {
		width := float64(len(Header[col])) * 1.2
		for _, row := range rows {
			if w := float64(len(row[col])) * 1.1; w > width {
				width = w
			}
		}
		if width < 10 {
			width = 10
		}
		if width > 50 {
			width = 50
		}

		name, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(SheetName, name, name, width)
	}
}

package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetNameLength = 31

// Sheet is one named table of a workbook.
type Sheet struct {
	Name  string
	Table *CountryTable
}

// WriteWorkbook saves the tables as an xlsx file, one sheet per table, each
// with the Columns header in row 1.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.New("workbook: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	var used []string
	for i, sheet := range sheets {
		name := SheetName(sheet.Name)
		for _, prev := range used {
			if strings.EqualFold(prev, name) {
				return fmt.Errorf("workbook: %q and %q both map to sheet %q", prev, sheet.Name, name)
			}
		}
		used = append(used, name)

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("workbook: sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("workbook: sheet %q: %w", name, err)
		}

		for j, header := range Columns {
			cell, _ := excelize.CoordinatesToCellName(j+1, 1)
			f.SetCellValue(name, cell, header)
			f.SetColWidth(name, columnName(j+1), columnName(j+1), 18)
		}

		for j, row := range sheet.Table.Rows {
			values := []any{row.Year, row.AreaHarvested, row.Yield, row.Production}
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return fmt.Errorf("workbook: sheet %q row %d: %w", name, j+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("workbook: save %s: %w", path, err)
	}
	return nil
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// SheetName maps a label onto the characters and length Excel accepts.
// Excel compares sheet names case-insensitively, so callers must compare
// results with strings.EqualFold.
func SheetName(label string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, label)
	if runes := []rune(name); len(runes) > maxSheetNameLength {
		name = string(runes[:maxSheetNameLength])
	}
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	return name
}

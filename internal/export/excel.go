package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes one sheet per table, in order
func WriteXLSX(w io.Writer, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, t := range tables {
		sheet := t.Sheet
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, t, header, title, label); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, t Table, header, title, label int) error {
	row := 1
	if t.Title != "" {
		if err := f.SetCellValue(sheet, cell(1, row), t.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), title); err != nil {
			return err
		}
		row += 2
	}

	for _, kv := range t.Summary {
		if err := f.SetCellValue(sheet, cell(1, row), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell(2, row), kv[1]); err != nil {
			return err
		}
		row++
	}
	if len(t.Summary) > 0 {
		row++
	}

	for i, c := range t.Columns {
		name := c.Header
		if name == "" {
			name = c.Key
		}
		if err := f.SetCellValue(sheet, cell(i+1, row), name); err != nil {
			return err
		}
		if c.Width > 0 {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, col, col, c.Width); err != nil {
				return err
			}
		}
	}
	if len(t.Columns) > 0 {
		if err := f.SetCellStyle(sheet, cell(1, row), cell(len(t.Columns), row), header); err != nil {
			return err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze: true, YSplit: row, TopLeftCell: cell(1, row+1), ActivePane: "bottomLeft",
		}); err != nil {
			return err
		}
	}
	row++

	for _, r := range t.Rows {
		for i, c := range t.Columns {
			if err := f.SetCellValue(sheet, cell(i+1, row), xlsxValue(r[c.Key])); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// xlsxValue unwraps pointers so empty optional values render as blank cells
func xlsxValue(v any) any {
	switch x := v.(type) {
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case time.Time:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return v
}

package document

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Dokumen"

// XLSXRenderer writes fields as label/value rows followed by the table.
type XLSXRenderer struct{}

func (XLSXRenderer) Render(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	if err := setRow(f, row, []string{doc.Title}, title); err != nil {
		return err
	}
	row++
	if doc.Subtitle != "" {
		if err := setRow(f, row, []string{doc.Subtitle}, 0); err != nil {
			return err
		}
		row++
	}
	row++

	for _, field := range doc.Fields {
		if err := setRow(f, row, []string{field.Label, field.Value}, 0); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell(1, row), cell(1, row), bold); err != nil {
			return err
		}
		row++
	}

	if doc.Table != nil {
		if len(doc.Fields) > 0 {
			row++
		}
		if doc.Table.Title != "" {
			if err := setRow(f, row, []string{doc.Table.Title}, bold); err != nil {
				return err
			}
			row++
		}
		if err := setRow(f, row, doc.Table.Headers, bold); err != nil {
			return err
		}
		row++
		for _, r := range doc.Table.Rows {
			if err := setRow(f, row, r, 0); err != nil {
				return err
			}
			row++
		}
	}

	if len(doc.Signatures) > 0 {
		row++
		if err := setRow(f, row, doc.Signatures, bold); err != nil {
			return err
		}
	}

	if !doc.GeneratedAt.IsZero() {
		row += 2
		if err := setRow(f, row, []string{"Dicetak", doc.GeneratedAt.Format("2006-01-02 15:04")}, 0); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "H", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func setRow(f *excelize.File, row int, values []string, style int) error {
	for i, v := range values {
		c := cell(i+1, row)
		if err := f.SetCellValue(sheetName, c, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", c, err)
		}
	}
	if style != 0 && len(values) > 0 {
		if err := f.SetCellStyle(sheetName, cell(1, row), cell(len(values), row), style); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}
	return nil
}

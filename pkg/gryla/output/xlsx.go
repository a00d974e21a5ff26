package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
)

// workbookHeader is the column layout of a schema workbook sheet.
var workbookHeader = []interface{}{"Direction", "Packet", "Protocol", "Resource", "Field", "Type"}

// WriteWorkbook writes the mining result as an xlsx workbook with one sheet
// per protocol state. Nested fields are flattened with two-space indents so
// the composite structure stays readable in a spreadsheet.
func WriteWorkbook(res *models.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, state := range res.States {
		sheet := state.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, "A1", &workbookHeader); err != nil {
			return err
		}
		row := 2
		for _, dir := range state.Directions {
			for _, pkt := range dir.Packets {
				cells := []interface{}{dir.Name, pkt.Name, pkt.Protocol, pkt.Resource}
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
					return err
				}
				row++
				if err := writeFieldRows(f, sheet, &row, pkt.Fields, 0); err != nil {
					return err
				}
			}
		}
	}

	return f.SaveAs(path)
}

// writeFieldRows appends one row per field, recursing into composites.
func writeFieldRows(f *excelize.File, sheet string, row *int, fields []models.Field, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, field := range fields {
		typeText := field.Type.String()
		var nested []models.Field
		if paired, ok := field.Type.(models.PairedType); ok {
			typeText = paired.Descriptor.String()
			if list, ok := paired.Content.(models.FieldList); ok {
				nested = list.Fields
			}
		}

		cells := []interface{}{indent + field.Name, typeText}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("E%d", *row), &cells); err != nil {
			return err
		}
		*row++
		if err := writeFieldRows(f, sheet, row, nested, depth+1); err != nil {
			return err
		}
	}
	return nil
}

package export

import (
	"fmt"

	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetPlaced    = "Placed"
	SheetNotPlaced = "NotPlaced"
)

var (
	placedHeader    = []interface{}{"Item", "Client", "Unload order", "Kind", "Length (m)", "Width (m)", "X (m)", "Y (m)", "Rotated"}
	notPlacedHeader = []interface{}{"Item", "Client", "Unload order", "Kind", "Length (m)", "Width (m)", "Source"}
)

// ExportExcel writes the placed and not-placed items to a workbook, one row
// per item. Placed rows carry the footprint after rotation.
func ExportExcel(path string, result model.PlanResult) error {
	if result.ItemCount() == 0 {
		return errNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlaced); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetNotPlaced); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(result.Placed)+1)
	rows = append(rows, placedHeader)
	for _, p := range result.Placed {
		rows = append(rows, []interface{}{
			p.Item.Index, p.Item.Client, unloadCell(p.Item), p.Item.Kind.String(),
			p.Length, p.Width, model.RoundTo(p.X, 3), model.RoundTo(p.Y, 3), p.Rotated,
		})
	}
	if err := writeRows(f, SheetPlaced, rows, headerStyle); err != nil {
		return err
	}

	rows = rows[:0]
	rows = append(rows, notPlacedHeader)
	for _, it := range result.NotPlaced {
		rows = append(rows, []interface{}{
			it.Index, it.Client, unloadCell(it), it.Kind.String(), it.Length, it.Width, it.Source,
		})
	}
	if err := writeRows(f, SheetNotPlaced, rows, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

// unloadCell leaves the unload order blank for items without a marker.
func unloadCell(it model.CargoItem) interface{} {
	if it.Unordered() {
		return ""
	}
	return it.UnloadOrder
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return fmt.Errorf("cell reference: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style %s header: %w", sheet, err)
		}
	}
	return nil
}

// Package export renders filtered gap views as downloadable files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fillratedash/internal/models"
)

const sheetName = "Fill Rate Gaps"

var xlsxHeaders = []interface{}{
	"PO No", "Material", "Material Description", "PO Date", "Delivery Date",
	"UOM", "PO Quantity", "Sales Quantity", "Fill Rate %",
	"State", "Plant", "Sales District", "Customer Group", "Processing Date",
}

// WriteXLSX streams the records as a single-sheet workbook.
func WriteXLSX(w io.Writer, records []models.FillRateRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "N1", headerStyle)
	}
	_ = f.SetColWidth(sheetName, "A", "N", 18)
	_ = f.SetColWidth(sheetName, "C", "C", 40)

	for i, rec := range records {
		row := []interface{}{
			rec.PONo, rec.Material, rec.MaterialDescription, rec.PODate, rec.DeliveryDate,
			rec.UOM, rec.POQuantity, rec.SalesQuantity, rec.FillRatePercent,
			rec.State, rec.PlantName, rec.SalesDistrict, rec.CustGroup, rec.ProcessingDate,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

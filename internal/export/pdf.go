package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"fillratedash/internal/models"
)

const pdfFont = "Helvetica"

type pdfColumn struct {
	title string
	width float64
	value func(models.FillRateRecord) string
}

var pdfColumns = []pdfColumn{
	{"PO No", 26, func(r models.FillRateRecord) string { return r.PONo }},
	{"Material Description", 62, func(r models.FillRateRecord) string { return r.MaterialDescription }},
	{"PO Date", 20, func(r models.FillRateRecord) string { return r.PODate }},
	{"Delivery", 20, func(r models.FillRateRecord) string { return r.DeliveryDate }},
	{"PO Qty", 20, func(r models.FillRateRecord) string { return fmt.Sprintf("%.2f", r.POQuantity) }},
	{"Sales Qty", 20, func(r models.FillRateRecord) string { return fmt.Sprintf("%.2f", r.SalesQuantity) }},
	{"Fill %", 15, func(r models.FillRateRecord) string { return fmt.Sprintf("%.1f", r.FillRatePercent) }},
	{"State", 26, func(r models.FillRateRecord) string { return r.State }},
	{"Plant", 44, func(r models.FillRateRecord) string { return r.PlantName }},
	{"Processed", 22, func(r models.FillRateRecord) string { return r.ProcessingDate }},
}

// WritePDF streams the records as a landscape A4 table with a summary line.
func WritePDF(w io.Writer, records []models.FillRateRecord) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Fill Rate Gap Report", false)
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(pdfFont, "B", 14)
		pdf.CellFormat(0, 8, "Fill Rate Gap Report", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 9)
		summary := fmt.Sprintf("Generated %s  |  %d under-filled orders  |  average fill rate %.2f%%",
			time.Now().Format("2006-01-02 15:04"), len(records), averageFillRate(records))
		pdf.CellFormat(0, 6, summary, "", 1, "L", false, 0, "")
		pdf.Ln(2)
		writeTableHeader(pdf)
	})

	pdf.AddPage()

	pdf.SetFont(pdfFont, "", 8)
	fill := false
	pdf.SetFillColor(240, 244, 248)
	for _, rec := range records {
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, col.value(rec), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(pdfFont, "B", 8)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(pdfFont, "", 8)
}

func averageFillRate(records []models.FillRateRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.FillRatePercent
	}
	return sum / float64(len(records))
}

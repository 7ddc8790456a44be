package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fillratedash/internal/export"
	"fillratedash/internal/services"
)

type ExportHandler struct {
	Service *services.ReportService
}

func NewExportHandler(service *services.ReportService) *ExportHandler {
	return &ExportHandler{Service: service}
}

// ExportXLSX streams the current filtered view as a workbook. Filters are
// the same query params as /api/filtered-data.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	data, err := h.Service.FilterGaps(gapFilterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("fill_rate_gaps_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := export.WriteXLSX(c.Writer, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
		return
	}
}

func (h *ExportHandler) ExportPDF(c *gin.Context) {
	data, err := h.Service.FilterGaps(gapFilterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("fill_rate_gaps_%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/pdf")

	if err := export.WritePDF(c.Writer, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fillratedash/internal/models"
	"fillratedash/internal/services"
)

type DashboardHandler struct {
	Service *services.ReportService
}

func NewDashboardHandler(service *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// @Summary      Dashboard headline numbers
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  models.DashboardStats
// @Router       /api/dashboard-stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Service.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	stats.UserEmail = userEmail(c)
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetLowFillRateData(c *gin.Context) {
	data, err := h.Service.ListGaps()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

func (h *DashboardHandler) GetFilterOptions(c *gin.Context) {
	opts, err := h.Service.FilterOptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, opts)
}

func gapFilterFromQuery(c *gin.Context) models.GapFilter {
	return models.GapFilter{
		State:    c.Query("state"),
		Plant:    c.Query("plant"),
		Material: c.Query("material"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
}

func (h *DashboardHandler) GetFilteredData(c *gin.Context) {
	data, err := h.Service.FilterGaps(gapFilterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

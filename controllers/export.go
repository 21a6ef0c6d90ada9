package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"review-portal-api/config"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// ExportGradingReport streams the cycle's grading report as an .xlsx
// download.
func ExportGradingReport(c *gin.Context) {
	cycleID, err := strconv.Atoi(c.Query("cycle_id"))
	if err != nil || cycleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cycle_id query parameter is required"})
		return
	}

	buf, filename, err := services.NewExportService(config.DB).BuildGradingReport(cycleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

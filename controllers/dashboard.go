package controllers

import (
	"net/http"

	"review-portal-api/config"
	"review-portal-api/models"

	"github.com/gin-gonic/gin"
)

type statusCount struct {
	SubmissionType string `json:"submission_type"`
	Status         string `json:"status"`
	Count          int64  `json:"count"`
}

// GetDashboardStats returns submission counts grouped by kind and status,
// optionally scoped to one cycle via ?cycle_id=.
func GetDashboardStats(c *gin.Context) {
	query := config.DB.Model(&models.Submission{}).
		Select("submission_type, status, COUNT(*) AS count").
		Where("deleted_at IS NULL")

	if cycleID := c.Query("cycle_id"); cycleID != "" {
		query = query.Where("cycle_id = ?", cycleID)
	}

	var counts []statusCount
	if err := query.Group("submission_type, status").Find(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	var pendingGrades int64
	if err := config.DB.Model(&models.Submission{}).
		Where("status = ? AND deleted_at IS NULL", models.StatusUnderReview).
		Count(&pendingGrades).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"counts":       counts,
		"under_review": pendingGrades,
	})
}

package controllers

import (
	"net/http"
	"strings"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// GetCycles lists review cycles, newest first.
func GetCycles(c *gin.Context) {
	var cycles []models.Cycle
	if err := config.DB.Preload("Windows").
		Where("delete_at IS NULL").
		Order("start_date DESC").
		Find(&cycles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cycles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cycles":  cycles,
		"total":   len(cycles),
	})
}

// GetCycle returns one cycle with its windows.
func GetCycle(c *gin.Context) {
	cycleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var cycle models.Cycle
	if err := config.DB.Preload("Windows").
		Where("cycle_id = ? AND delete_at IS NULL", cycleID).
		First(&cycle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cycle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cycle":   cycle,
	})
}

// CreateCycle creates a named review period.
func CreateCycle(c *gin.Context) {
	var req struct {
		CycleName string `json:"cycle_name" binding:"required"`
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	if startDate.After(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must not be after end_date"})
		return
	}

	now := time.Now()
	cycle := models.Cycle{
		CycleName: strings.TrimSpace(req.CycleName),
		StartDate: startDate,
		EndDate:   endDate,
		CreateAt:  now,
		UpdateAt:  now,
	}
	if err := config.DB.Create(&cycle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cycle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"cycle":   cycle,
	})
}

// CreateCycleWindow opens a phase window inside a cycle.
func CreateCycleWindow(c *gin.Context) {
	cycleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Phase     string `json:"phase" binding:"required"`
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validWindowPhase(req.Phase) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown phase"})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	window, err := windowService().CreateWindow(cycleID, req.Phase, startDate, endDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"window":  window,
	})
}

// GetCycleWindows lists a cycle's windows. With ?active_on=YYYY-MM-DD (or
// active_on=today) only the windows open on that date are returned.
func GetCycleWindows(c *gin.Context) {
	cycleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	activeOn := strings.TrimSpace(c.Query("active_on"))
	if activeOn != "" {
		referenceDate := time.Now()
		if activeOn != "today" {
			parsed, err := time.Parse(dateLayout, activeOn)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "active_on must be YYYY-MM-DD or 'today'"})
				return
			}
			referenceDate = parsed
		}

		windows, err := windowService().ListActiveWindows(cycleID, referenceDate)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"windows": windows,
			"total":   len(windows),
		})
		return
	}

	var windows []models.CycleWindow
	if err := config.DB.Where("cycle_id = ? AND delete_at IS NULL", cycleID).
		Order("start_date ASC").
		Find(&windows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch windows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"windows": windows,
		"total":   len(windows),
	})
}

func validWindowPhase(phase string) bool {
	switch phase {
	case models.PhaseAbstractSubmission, models.PhaseBestPaperSubmission, models.PhaseAwardSubmission,
		models.PhaseAbstractVerification, models.PhaseBestPaperVerification, models.PhaseAwardVerification,
		models.PhaseAbstractFinal, models.PhaseBestPaperFinal, models.PhaseAwardFinal:
		return true
	}
	return false
}

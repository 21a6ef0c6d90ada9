package controllers

import (
	"net/http"
	"strings"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// GetGradingTypes lists the rubric, optionally for one artifact kind.
// Served from the grading type cache.
func GetGradingTypes(c *gin.Context) {
	kind := strings.TrimSpace(c.Query("grading_for"))

	var (
		types []models.GradingType
		err   error
	)
	if kind != "" {
		types, err = services.GetGradingTypesForKind(kind)
	} else {
		types, err = services.GetGradingTypes()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grading types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"grading_types": types,
		"total":         len(types),
	})
}

// CreateGradingType adds a rubric criterion.
func CreateGradingType(c *gin.Context) {
	var req struct {
		Criteria   string `json:"criteria" binding:"required"`
		MinScore   int    `json:"min_score"`
		MaxScore   int    `json:"max_score" binding:"required"`
		GradingFor string `json:"grading_for" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validSubmissionType(req.GradingFor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grading_for must be abstract, best_paper or award"})
		return
	}
	if req.MinScore > req.MaxScore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must not exceed max_score"})
		return
	}

	now := time.Now()
	gradingType := models.GradingType{
		Criteria:   strings.TrimSpace(req.Criteria),
		MinScore:   req.MinScore,
		MaxScore:   req.MaxScore,
		GradingFor: req.GradingFor,
		CreateAt:   now,
		UpdateAt:   now,
	}
	if err := config.DB.Create(&gradingType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grading type"})
		return
	}

	services.ClearGradingTypeCache()

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"grading_type": gradingType,
	})
}

// UpdateGradingType edits a criterion's name and range. The artifact kind a
// criterion applies to is fixed at creation.
func UpdateGradingType(c *gin.Context) {
	gradingTypeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Criteria *string `json:"criteria"`
		MinScore *int    `json:"min_score"`
		MaxScore *int    `json:"max_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var gradingType models.GradingType
	if err := config.DB.Where("grading_type_id = ? AND delete_at IS NULL", gradingTypeID).
		First(&gradingType).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grading type not found"})
		return
	}

	minScore, maxScore := gradingType.MinScore, gradingType.MaxScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}
	if minScore > maxScore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must not exceed max_score"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.Criteria != nil {
		updates["criteria"] = strings.TrimSpace(*req.Criteria)
	}
	if req.MinScore != nil {
		updates["min_score"] = *req.MinScore
	}
	if req.MaxScore != nil {
		updates["max_score"] = *req.MaxScore
	}

	if err := config.DB.Model(&gradingType).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update grading type"})
		return
	}

	services.ClearGradingTypeCache()

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"grading_type": gradingType,
	})
}

// DeleteGradingType soft-deletes a criterion.
func DeleteGradingType(c *gin.Context) {
	gradingTypeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.GradingType{}).
		Where("grading_type_id = ? AND delete_at IS NULL", gradingTypeID).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grading type"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grading type not found"})
		return
	}

	services.ClearGradingTypeCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Grading type deleted"})
}

package controllers

import (
	"net/http"
	"strconv"

	"review-portal-api/models"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// RecordGrading records one score by the calling verifier against the
// submission's current review phase.
func RecordGrading(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		GradingTypeID int     `json:"grading_type_id" binding:"required"`
		Score         int     `json:"score"`
		Comments      *string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, _ := currentUser(c)
	grading, err := gradingService().RecordGrade(services.RecordGradeInput{
		GradingTypeID: req.GradingTypeID,
		SubmissionID:  submissionID,
		GradedByID:    userID,
		Score:         req.Score,
		Comments:      req.Comments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"grading": grading,
	})
}

// UpdateGrading edits score/comments of the caller's own grade. Admins can
// edit any grade. The grade's target and criterion never change.
func UpdateGrading(c *gin.Context) {
	gradingID, ok := paramID(c, "grading_id")
	if !ok {
		return
	}

	var req struct {
		Score    *int    `json:"score"`
		Comments *string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, _ := currentUser(c)
	roleID := currentRole(c)

	svc := gradingService()
	existing, err := svc.GetGrade(gradingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing.GradedByID != userID && roleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the grader can edit this grade"})
		return
	}

	grading, err := svc.UpdateGrade(gradingID, services.UpdateGradeInput{
		Score:    req.Score,
		Comments: req.Comments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"grading": grading,
	})
}

// GetGradings lists a submission's grades, with optional grading_type_id,
// graded_by_id and review_phase filters.
func GetGradings(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	filter := services.ListGradesFilter{}
	if raw := c.Query("grading_type_id"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grading_type_id"})
			return
		}
		filter.GradingTypeID = &value
	}
	if raw := c.Query("graded_by_id"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid graded_by_id"})
			return
		}
		filter.GradedByID = &value
	}
	if raw := c.Query("review_phase"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review_phase"})
			return
		}
		filter.ReviewPhase = &value
	}

	gradings, err := gradingService().ListGrades(submissionID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"gradings": gradings,
		"total":    len(gradings),
	})
}

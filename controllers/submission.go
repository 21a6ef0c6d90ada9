package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===================== SUBMISSION MANAGEMENT =====================

type createSubmissionRequest struct {
	SubmissionType string `json:"submission_type" binding:"required"`
	CycleID        int    `json:"cycle_id" binding:"required"`
	CategoryID     int    `json:"category_id" binding:"required"`

	// abstract
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`

	// best paper
	PaperTitle string `json:"paper_title"`
	Venue      string `json:"venue"`
	DOI        string `json:"doi"`

	// award
	AwardName   string `json:"award_name"`
	Achievement string `json:"achievement"`
}

// CreateSubmission creates a pending phase-1 submission with its
// kind-specific detail row.
func CreateSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validSubmissionType(req.SubmissionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submission_type must be abstract, best_paper or award"})
		return
	}

	var cycle models.Cycle
	if err := config.DB.Where("cycle_id = ? AND delete_at IS NULL", req.CycleID).First(&cycle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cycle not found"})
		return
	}

	var category models.Category
	if err := config.DB.Where("category_id = ? AND delete_at IS NULL", req.CategoryID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if category.CategoryFor != req.SubmissionType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not apply to this submission type"})
		return
	}

	userID, _ := currentUser(c)
	now := time.Now()

	submission := models.Submission{
		SubmissionNumber: newSubmissionNumber(req.SubmissionType, now),
		SubmissionType:   req.SubmissionType,
		CycleID:          req.CycleID,
		CategoryID:       req.CategoryID,
		UserID:           userID,
		Status:           models.StatusPending,
		ReviewPhase:      1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&submission).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	if err := createDetail(tx, &submission, &req, now); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	notificationService().NotifySubmissionEvent(userID, "Submission created",
		fmt.Sprintf("Submission %s was created. Remember to submit it before the window closes.", submission.SubmissionNumber),
		"info", submission.SubmissionID)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

func createDetail(tx *gorm.DB, submission *models.Submission, req *createSubmissionRequest, now time.Time) error {
	switch submission.SubmissionType {
	case models.SubmissionTypeAbstract:
		title := utils.SanitizeInput(req.Title)
		summary := utils.SanitizeInput(req.Summary)
		if title == "" || summary == "" {
			return fmt.Errorf("title and summary are required for abstracts")
		}
		detail := models.AbstractDetail{
			SubmissionID: submission.SubmissionID,
			Title:        title,
			Summary:      summary,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if keywords := utils.SanitizeInput(req.Keywords); keywords != "" {
			detail.Keywords = &keywords
		}
		return tx.Create(&detail).Error
	case models.SubmissionTypeBestPaper:
		title := utils.SanitizeInput(req.PaperTitle)
		venue := utils.SanitizeInput(req.Venue)
		if title == "" || venue == "" {
			return fmt.Errorf("paper_title and venue are required for best papers")
		}
		detail := models.BestPaperDetail{
			SubmissionID: submission.SubmissionID,
			PaperTitle:   title,
			Venue:        venue,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if doi := utils.SanitizeInput(req.DOI); doi != "" {
			detail.DOI = &doi
		}
		return tx.Create(&detail).Error
	case models.SubmissionTypeAward:
		name := utils.SanitizeInput(req.AwardName)
		achievement := utils.SanitizeInput(req.Achievement)
		if name == "" || achievement == "" {
			return fmt.Errorf("award_name and achievement are required for awards")
		}
		detail := models.AwardDetail{
			SubmissionID: submission.SubmissionID,
			AwardName:    name,
			Achievement:  achievement,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&detail).Error
	}
	return fmt.Errorf("unknown submission type")
}

// GetSubmissions returns the caller's submissions. Admins and coordinators
// see all; verifiers see their assigned ones; submitters see their own.
func GetSubmissions(c *gin.Context) {
	userID, _ := currentUser(c)
	roleID := currentRole(c)

	query := config.DB.Preload("User").
		Preload("Cycle").
		Preload("Category").
		Where("submissions.deleted_at IS NULL")

	switch roleID {
	case models.RoleAdmin, models.RoleCoordinator:
		// unrestricted
	case models.RoleVerifier:
		query = query.Joins("JOIN submission_verifiers sv ON sv.submission_id = submissions.submission_id").
			Where("sv.user_id = ?", userID)
	default:
		query = query.Where("submissions.user_id = ?", userID)
	}

	if submissionType := c.Query("submission_type"); submissionType != "" {
		query = query.Where("submissions.submission_type = ?", submissionType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("submissions.status = ?", status)
	}
	if cycleID := c.Query("cycle_id"); cycleID != "" {
		query = query.Where("submissions.cycle_id = ?", cycleID)
	}

	var submissions []models.Submission
	if err := query.Order("submissions.created_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	loadSubmissionDetails(submissions)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns one submission with assignments and gradings.
func GetSubmission(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUser(c)
	roleID := currentRole(c)

	var submission models.Submission
	if err := config.DB.Preload("User").
		Preload("Cycle").
		Preload("Category").
		Preload("Verifiers.User").
		Preload("Coordinators.User").
		Preload("Gradings.GradingType").
		Preload("Gradings.GradedBy").
		Where("submission_id = ? AND deleted_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !mayViewSubmission(&submission, userID, roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	loadSubmissionDetail(&submission)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// SubmitSubmission moves the caller's pending submission into review.
func SubmitSubmission(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUser(c)
	roleID := currentRole(c)

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND deleted_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if submission.UserID != userID && roleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can submit"})
		return
	}

	updated, err := workflowService().Submit(submissionID, actionContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission is now under review",
		"submission": updated,
	})
}

func mayViewSubmission(submission *models.Submission, userID, roleID int) bool {
	if roleID == models.RoleAdmin || roleID == models.RoleCoordinator {
		return true
	}
	if submission.UserID == userID {
		return true
	}
	for i := range submission.Verifiers {
		if submission.Verifiers[i].UserID == userID {
			return true
		}
	}
	for i := range submission.Coordinators {
		if submission.Coordinators[i].UserID == userID {
			return true
		}
	}
	return false
}

func loadSubmissionDetails(submissions []models.Submission) {
	for i := range submissions {
		loadSubmissionDetail(&submissions[i])
	}
}

// loadSubmissionDetail attaches the kind-specific detail row to the given
// submission in place.
func loadSubmissionDetail(submission *models.Submission) {
	switch submission.SubmissionType {
	case models.SubmissionTypeAbstract:
		if submission.AbstractDetail == nil {
			detail := &models.AbstractDetail{}
			if err := config.DB.Where("submission_id = ?", submission.SubmissionID).
				First(detail).Error; err == nil {
				submission.AbstractDetail = detail
			}
		}
	case models.SubmissionTypeBestPaper:
		if submission.BestPaperDetail == nil {
			detail := &models.BestPaperDetail{}
			if err := config.DB.Where("submission_id = ?", submission.SubmissionID).
				First(detail).Error; err == nil {
				submission.BestPaperDetail = detail
			}
		}
	case models.SubmissionTypeAward:
		if submission.AwardDetail == nil {
			detail := &models.AwardDetail{}
			if err := config.DB.Where("submission_id = ?", submission.SubmissionID).
				First(detail).Error; err == nil {
				submission.AwardDetail = detail
			}
		}
	}
}

var submissionNumberPrefix = map[string]string{
	models.SubmissionTypeAbstract:  "ABS",
	models.SubmissionTypeBestPaper: "BP",
	models.SubmissionTypeAward:     "AWD",
}

func newSubmissionNumber(submissionType string, now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("%s-%d-%s", submissionNumberPrefix[submissionType], now.Year(), short)
}

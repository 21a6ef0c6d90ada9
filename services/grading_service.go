package services

import (
	"errors"
	"fmt"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

// GradingService owns the grading ledger: one scored entry per
// (submission, grading type, verifier, phase). Duplicates are rejected; the
// target and grading type of a recorded grade never change.
type GradingService struct {
	db *gorm.DB
}

func NewGradingService(db *gorm.DB) *GradingService {
	return &GradingService{db: db}
}

type RecordGradeInput struct {
	GradingTypeID int
	SubmissionID  int
	GradedByID    int
	Score         int
	Comments      *string
}

type UpdateGradeInput struct {
	Score         *int
	Comments      *string
	GradingTypeID *int
	SubmissionID  *int
}

type ListGradesFilter struct {
	GradingTypeID *int
	GradedByID    *int
	ReviewPhase   *int
}

// RecordGrade writes one grade against the submission's current review
// phase. The duplicate check and the insert run in one transaction holding
// the submission row lock, so two concurrent calls for the same
// (submission, grading type, grader, phase) cannot both pass the check.
// Rubric bounds on the grading type are not checked here.
func (s *GradingService) RecordGrade(input RecordGradeInput) (*models.Grading, error) {
	var gradingType models.GradingType
	if err := s.db.Where("grading_type_id = ? AND delete_at IS NULL", input.GradingTypeID).
		First(&gradingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradingTypeNotFound
		}
		return nil, fmt.Errorf("failed to load grading type: %w", err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	submission, err := lockSubmission(tx, input.SubmissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if gradingType.GradingFor != submission.SubmissionType {
		tx.Rollback()
		return nil, ErrGradingKindMismatch
	}

	var count int64
	if err := tx.Model(&models.Grading{}).
		Where("submission_id = ? AND grading_type_id = ? AND graded_by_id = ? AND review_phase = ?",
			submission.SubmissionID, gradingType.GradingTypeID, input.GradedByID, submission.ReviewPhase).
		Count(&count).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to check existing grades: %w", err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, ErrDuplicateGrade
	}

	now := time.Now()
	grading := models.Grading{
		GradingTypeID: gradingType.GradingTypeID,
		SubmissionID:  submission.SubmissionID,
		GradedByID:    input.GradedByID,
		Score:         input.Score,
		Comments:      input.Comments,
		ReviewPhase:   submission.ReviewPhase,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := tx.Create(&grading).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create grading: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &grading, nil
}

// UpdateGrade changes score and comments only. Attempts to repoint the grade
// at another submission or grading type fail with ErrImmutableGradeField.
func (s *GradingService) UpdateGrade(gradingID int, input UpdateGradeInput) (*models.Grading, error) {
	if input.GradingTypeID != nil || input.SubmissionID != nil {
		return nil, ErrImmutableGradeField
	}

	var grading models.Grading
	if err := s.db.Where("grading_id = ?", gradingID).First(&grading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradingNotFound
		}
		return nil, fmt.Errorf("failed to load grading: %w", err)
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if input.Score != nil {
		updates["score"] = *input.Score
		grading.Score = *input.Score
	}
	if input.Comments != nil {
		updates["comments"] = *input.Comments
		grading.Comments = input.Comments
	}

	if err := s.db.Model(&models.Grading{}).
		Where("grading_id = ?", gradingID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update grading: %w", err)
	}
	return &grading, nil
}

// ListGrades returns the gradings for a submission, newest phase first,
// optionally filtered by grading type, grader or phase.
func (s *GradingService) ListGrades(submissionID int, filter ListGradesFilter) ([]models.Grading, error) {
	query := s.db.Preload("GradingType").Preload("GradedBy").
		Where("submission_id = ?", submissionID)

	if filter.GradingTypeID != nil {
		query = query.Where("grading_type_id = ?", *filter.GradingTypeID)
	}
	if filter.GradedByID != nil {
		query = query.Where("graded_by_id = ?", *filter.GradedByID)
	}
	if filter.ReviewPhase != nil {
		query = query.Where("review_phase = ?", *filter.ReviewPhase)
	}

	var gradings []models.Grading
	if err := query.Order("review_phase DESC, grading_type_id ASC").Find(&gradings).Error; err != nil {
		return nil, fmt.Errorf("failed to list gradings: %w", err)
	}
	return gradings, nil
}

// GetGrade loads one grading row.
func (s *GradingService) GetGrade(gradingID int) (*models.Grading, error) {
	var grading models.Grading
	if err := s.db.Where("grading_id = ?", gradingID).First(&grading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradingNotFound
		}
		return nil, fmt.Errorf("failed to load grading: %w", err)
	}
	return &grading, nil
}

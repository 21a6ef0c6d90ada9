package services

import (
	"errors"
	"fmt"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

// AssignmentService owns verifier and coordinator assignments. Role checks
// happen at the route layer; the service assumes an authorized caller.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// VerifierAssignmentInput describes one verifier pairing. ReviewPhase nil
// means the assignment follows the submission's current phase.
type VerifierAssignmentInput struct {
	SubmissionID int
	UserID       int
	ReviewPhase  *int
	AssignedBy   int
}

// AssignVerifier is idempotent: if the pairing already exists it is returned
// unchanged.
func (s *AssignmentService) AssignVerifier(input VerifierAssignmentInput) (*models.SubmissionVerifier, error) {
	return s.assignVerifier(input, false)
}

// AssignVerifierStrict behaves like AssignVerifier but fails with
// ErrAssignmentExists when the pairing is already present, for callers that
// need to distinguish created from existing.
func (s *AssignmentService) AssignVerifierStrict(input VerifierAssignmentInput) (*models.SubmissionVerifier, error) {
	return s.assignVerifier(input, true)
}

func (s *AssignmentService) assignVerifier(input VerifierAssignmentInput, strict bool) (*models.SubmissionVerifier, error) {
	if err := s.checkSubmissionAndUser(input.SubmissionID, input.UserID); err != nil {
		return nil, err
	}

	var existing models.SubmissionVerifier
	err := s.db.Where("submission_id = ? AND user_id = ?", input.SubmissionID, input.UserID).
		First(&existing).Error
	if err == nil {
		if strict {
			return nil, ErrAssignmentExists
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check verifier assignment: %w", err)
	}

	assignment := models.SubmissionVerifier{
		SubmissionID: input.SubmissionID,
		UserID:       input.UserID,
		ReviewPhase:  input.ReviewPhase,
		AssignedBy:   input.AssignedBy,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to create verifier assignment: %w", err)
	}
	return &assignment, nil
}

// RemoveVerifier is idempotent; removing an absent pairing is a no-op.
func (s *AssignmentService) RemoveVerifier(submissionID, userID int) error {
	if err := s.checkSubmissionAndUser(submissionID, userID); err != nil {
		return err
	}

	if err := s.db.Where("submission_id = ? AND user_id = ?", submissionID, userID).
		Delete(&models.SubmissionVerifier{}).Error; err != nil {
		return fmt.Errorf("failed to remove verifier assignment: %w", err)
	}
	return nil
}

// AssignCoordinator is idempotent, mirroring AssignVerifier.
func (s *AssignmentService) AssignCoordinator(submissionID, userID, assignedBy int) (*models.SubmissionCoordinator, error) {
	if err := s.checkSubmissionAndUser(submissionID, userID); err != nil {
		return nil, err
	}

	var existing models.SubmissionCoordinator
	err := s.db.Where("submission_id = ? AND user_id = ?", submissionID, userID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check coordinator assignment: %w", err)
	}

	assignment := models.SubmissionCoordinator{
		SubmissionID: submissionID,
		UserID:       userID,
		AssignedBy:   assignedBy,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to create coordinator assignment: %w", err)
	}
	return &assignment, nil
}

// RemoveCoordinator is idempotent; removing an absent pairing is a no-op.
func (s *AssignmentService) RemoveCoordinator(submissionID, userID int) error {
	if err := s.checkSubmissionAndUser(submissionID, userID); err != nil {
		return err
	}

	if err := s.db.Where("submission_id = ? AND user_id = ?", submissionID, userID).
		Delete(&models.SubmissionCoordinator{}).Error; err != nil {
		return fmt.Errorf("failed to remove coordinator assignment: %w", err)
	}
	return nil
}

// ListVerifiers returns the verifier assignments for a submission.
func (s *AssignmentService) ListVerifiers(submissionID int) ([]models.SubmissionVerifier, error) {
	var assignments []models.SubmissionVerifier
	if err := s.db.Preload("User").Where("submission_id = ?", submissionID).
		Order("created_at ASC").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list verifier assignments: %w", err)
	}
	return assignments, nil
}

// ListCoordinators returns the coordinator assignments for a submission.
func (s *AssignmentService) ListCoordinators(submissionID int) ([]models.SubmissionCoordinator, error) {
	var assignments []models.SubmissionCoordinator
	if err := s.db.Preload("User").Where("submission_id = ?", submissionID).
		Order("created_at ASC").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list coordinator assignments: %w", err)
	}
	return assignments, nil
}

func (s *AssignmentService) checkSubmissionAndUser(submissionID, userID int) error {
	var submission models.Submission
	if err := s.db.Select("submission_id").
		Where("submission_id = ? AND deleted_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to load submission: %w", err)
	}

	var user models.User
	if err := s.db.Select("user_id").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	return nil
}

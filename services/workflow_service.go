package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkflowService applies submit/advance/accept/reject transitions to a
// submission. Every transition runs in one transaction that takes a row
// lock on the submission before any check, so a grade racing an accept
// cannot slip between the advancement check and the status write.
type WorkflowService struct {
	db            *gorm.DB
	windows       *WindowService
	advancement   *AdvancementService
	notifications *NotificationService
	audits        *AuditService
}

func NewWorkflowService(db *gorm.DB, windows *WindowService, advancement *AdvancementService, notifications *NotificationService, audits *AuditService) *WorkflowService {
	return &WorkflowService{
		db:            db,
		windows:       windows,
		advancement:   advancement,
		notifications: notifications,
		audits:        audits,
	}
}

// ActionContext carries the acting user and request metadata for audit rows.
type ActionContext struct {
	ActorID   int
	IPAddress string
	UserAgent string
}

// Submit moves a pending phase-1 submission into review, gated by an open
// submission window for its cycle and kind today.
func (s *WorkflowService) Submit(submissionID int, actx ActionContext) (*models.Submission, error) {
	var result models.Submission

	err := s.inTransaction(func(tx *gorm.DB) error {
		submission, err := lockSubmission(tx, submissionID)
		if err != nil {
			return err
		}

		if err := submitGuard(submission); err != nil {
			return err
		}

		phase := submission.SubmissionPhase()
		open, err := s.windows.withDB(tx).IsPhaseOpen(submission.CycleID, phase, time.Now())
		if err != nil {
			return err
		}
		if !open {
			return &WindowClosedError{CycleID: submission.CycleID, Phase: phase}
		}

		now := time.Now()
		if err := applyTransition(tx, submission, models.StatusUnderReview, submission.ReviewPhase, actx, "submit", nil, now); err != nil {
			return err
		}

		result = *submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(&result, actx, "submit", "Submission received",
		fmt.Sprintf("Submission %s is now under review.", result.SubmissionNumber))
	return &result, nil
}

// AdvancePhase moves an under-review submission to the next review phase,
// gated by the advancement check for the acting verifier.
func (s *WorkflowService) AdvancePhase(submissionID int, actx ActionContext) (*models.Submission, error) {
	var result models.Submission

	err := s.inTransaction(func(tx *gorm.DB) error {
		submission, err := lockSubmission(tx, submissionID)
		if err != nil {
			return err
		}

		if err := decisionGuard(submission); err != nil {
			return err
		}

		ok, missing, err := s.advancement.CanAdvance(tx, submission, actx.ActorID)
		if err != nil {
			return err
		}
		if !ok {
			return &AdvancementBlockedError{SubmissionID: submission.SubmissionID, MissingCriteria: missing}
		}

		now := time.Now()
		if err := applyTransition(tx, submission, models.StatusUnderReview, submission.ReviewPhase+1, actx, "advance_phase", nil, now); err != nil {
			return err
		}

		result = *submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(&result, actx, "advance_phase", "Review phase advanced",
		fmt.Sprintf("Submission %s moved to review phase %d.", result.SubmissionNumber, result.ReviewPhase))
	return &result, nil
}

// Accept finalizes an under-review submission, gated by the same advancement
// check as AdvancePhase. Acceptance is terminal.
func (s *WorkflowService) Accept(submissionID int, actx ActionContext) (*models.Submission, error) {
	var result models.Submission

	err := s.inTransaction(func(tx *gorm.DB) error {
		submission, err := lockSubmission(tx, submissionID)
		if err != nil {
			return err
		}

		if err := decisionGuard(submission); err != nil {
			return err
		}

		ok, missing, err := s.advancement.CanAdvance(tx, submission, actx.ActorID)
		if err != nil {
			return err
		}
		if !ok {
			return &AdvancementBlockedError{SubmissionID: submission.SubmissionID, MissingCriteria: missing}
		}

		now := time.Now()
		if err := applyTransition(tx, submission, models.StatusAccepted, submission.ReviewPhase, actx, "accept", nil, now); err != nil {
			return err
		}

		result = *submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(&result, actx, "accept", "Submission accepted",
		fmt.Sprintf("Congratulations, submission %s has been accepted.", result.SubmissionNumber))
	return &result, nil
}

// Reject finalizes a submission negatively. Legal from any non-terminal
// state; no grading gate. Verifier and grading rows are left untouched.
func (s *WorkflowService) Reject(submissionID int, reason string, actx ActionContext) (*models.Submission, error) {
	var result models.Submission

	err := s.inTransaction(func(tx *gorm.DB) error {
		submission, err := lockSubmission(tx, submissionID)
		if err != nil {
			return err
		}

		if submission.IsTerminal() {
			return ErrInvalidState
		}

		now := time.Now()
		var reasonPtr *string
		if reason != "" {
			reasonPtr = &reason
		}
		if err := applyTransition(tx, submission, models.StatusRejected, submission.ReviewPhase, actx, "reject", reasonPtr, now); err != nil {
			return err
		}

		result = *submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Submission %s has been rejected.", result.SubmissionNumber)
	if reason != "" {
		message = fmt.Sprintf("Submission %s has been rejected: %s", result.SubmissionNumber, reason)
	}
	s.afterTransition(&result, actx, "reject", "Submission rejected", message)
	return &result, nil
}

func (s *WorkflowService) inTransaction(fn func(tx *gorm.DB) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockSubmission loads the submission with SELECT ... FOR UPDATE.
func lockSubmission(tx *gorm.DB, submissionID int) (*models.Submission, error) {
	var submission models.Submission
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ? AND deleted_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return &submission, nil
}

// submitGuard admits only pending submissions still in phase 1.
func submitGuard(submission *models.Submission) error {
	if submission.Status != models.StatusPending || submission.ReviewPhase != 1 {
		return ErrInvalidState
	}
	return nil
}

// decisionGuard admits only submissions currently under review.
func decisionGuard(submission *models.Submission) error {
	if submission.Status != models.StatusUnderReview {
		return ErrInvalidState
	}
	return nil
}

// applyTransition persists the new status/phase and the history row, then
// mutates the in-memory submission to match. Phases never move backward.
func applyTransition(tx *gorm.DB, submission *models.Submission, newStatus string, newPhase int, actx ActionContext, action string, reason *string, now time.Time) error {
	if newPhase < submission.ReviewPhase {
		return ErrInvalidState
	}

	updates := map[string]interface{}{
		"status":       newStatus,
		"review_phase": newPhase,
		"updated_at":   now,
	}
	if action == "submit" {
		updates["submitted_at"] = now
	}

	if err := tx.Model(&models.Submission{}).
		Where("submission_id = ?", submission.SubmissionID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	oldStatus := submission.Status
	oldPhase := submission.ReviewPhase
	note := fmt.Sprintf("action=%s", action)
	history := models.SubmissionStatusHistory{
		SubmissionID: submission.SubmissionID,
		OldStatus:    &oldStatus,
		NewStatus:    newStatus,
		OldPhase:     &oldPhase,
		NewPhase:     newPhase,
		ChangedBy:    actx.ActorID,
		Reason:       reason,
		Notes:        &note,
		CreatedAt:    now,
	}
	if err := tx.Create(&history).Error; err != nil {
		return fmt.Errorf("failed to log status history: %w", err)
	}

	submission.Status = newStatus
	submission.ReviewPhase = newPhase
	submission.UpdatedAt = now
	if action == "submit" {
		submission.SubmittedAt = &now
	}
	return nil
}

// afterTransition runs the best-effort side effects once the transaction is
// committed: audit trail and owner notification. Failures are logged inside
// the services and never surface here.
func (s *WorkflowService) afterTransition(submission *models.Submission, actx ActionContext, action, title, message string) {
	detail := map[string]interface{}{
		"status":       submission.Status,
		"review_phase": submission.ReviewPhase,
	}
	serialized, _ := json.Marshal(detail)

	entityID := submission.SubmissionID
	number := submission.SubmissionNumber
	values := string(serialized)
	s.audits.Record(models.AuditLog{
		UserID:       actx.ActorID,
		Action:       action,
		EntityType:   "submission",
		EntityID:     &entityID,
		EntityNumber: &number,
		NewValues:    &values,
		IPAddress:    actx.IPAddress,
		UserAgent:    nilIfEmpty(actx.UserAgent),
	})

	s.notifications.NotifySubmissionEvent(submission.UserID, title, message, "info", submission.SubmissionID)
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

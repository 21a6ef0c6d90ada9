package services

import (
	"fmt"

	"review-portal-api/models"

	"gorm.io/gorm"
)

// AdvancementService decides whether a submission's current-phase review is
// complete enough to advance or be accepted.
//
// The check is verifier-centric: it verifies that the ACTING verifier has
// graded every rubric criterion for the submission's kind in the current
// phase. It does not require all assigned verifiers to have finished. A
// submission with no in-scope verifier assignments, or an actor without an
// assignment, passes.
type AdvancementService struct {
	db *gorm.DB
}

func NewAdvancementService(db *gorm.DB) *AdvancementService {
	return &AdvancementService{db: db}
}

// CanAdvance runs the decision against the given handle, which is expected
// to be the transaction already holding the submission row lock when called
// from a transition. The second return value lists the criteria still
// missing a grade when the answer is false.
func (s *AdvancementService) CanAdvance(tx *gorm.DB, submission *models.Submission, actingVerifierID int) (bool, []string, error) {
	if tx == nil {
		tx = s.db
	}

	var assignments []models.SubmissionVerifier
	if err := tx.Where("submission_id = ?", submission.SubmissionID).
		Find(&assignments).Error; err != nil {
		return false, nil, fmt.Errorf("failed to load verifier assignments: %w", err)
	}

	var required []models.GradingType
	if err := tx.Where("grading_for = ? AND delete_at IS NULL", submission.SubmissionType).
		Find(&required).Error; err != nil {
		return false, nil, fmt.Errorf("failed to load grading types: %w", err)
	}

	var grades []models.Grading
	if err := tx.Where("submission_id = ?", submission.SubmissionID).
		Find(&grades).Error; err != nil {
		return false, nil, fmt.Errorf("failed to load gradings: %w", err)
	}

	ok, missing := evaluateAdvancement(assignments, required, grades, actingVerifierID, submission.ReviewPhase)
	return ok, missing, nil
}

// evaluateAdvancement is the pure decision core.
//
// Assignments pinned to another phase are out of scope. No in-scope
// assignments means nothing blocks advancement. Otherwise the acting
// verifier, if assigned, must have one grade per required criterion in the
// current phase; the names of ungraded criteria are returned.
func evaluateAdvancement(assignments []models.SubmissionVerifier, required []models.GradingType, grades []models.Grading, actingVerifierID, currentPhase int) (bool, []string) {
	actorAssigned := false
	anyInScope := false
	for i := range assignments {
		if !assignments[i].AppliesToPhase(currentPhase) {
			continue
		}
		anyInScope = true
		if assignments[i].UserID == actingVerifierID {
			actorAssigned = true
		}
	}

	if !anyInScope || !actorAssigned {
		return true, nil
	}

	graded := make(map[int]bool, len(grades))
	for i := range grades {
		if grades[i].GradedByID == actingVerifierID && grades[i].ReviewPhase == currentPhase {
			graded[grades[i].GradingTypeID] = true
		}
	}

	var missing []string
	for i := range required {
		if !graded[required[i].GradingTypeID] {
			missing = append(missing, required[i].Criteria)
		}
	}
	return len(missing) == 0, missing
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

// Workflow error taxonomy. Controllers translate these to HTTP statuses;
// raw storage errors are never passed through to callers.
var (
	ErrCycleNotFound       = errors.New("cycle not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrGradingTypeNotFound = errors.New("grading type not found")
	ErrGradingNotFound     = errors.New("grading not found")

	ErrInvalidState        = errors.New("transition not allowed from current state")
	ErrAssignmentExists    = errors.New("assignment already exists")
	ErrDuplicateGrade      = errors.New("grade already recorded for this criterion, verifier and phase")
	ErrImmutableGradeField = errors.New("grading target and grading type cannot be changed")
	ErrGradingKindMismatch = errors.New("grading type does not apply to this submission kind")
	ErrInvalidWindowRange  = errors.New("window start date must not be after end date")
)

// WindowClosedError reports a submission attempt outside an open window.
type WindowClosedError struct {
	CycleID int
	Phase   string
}

func (e *WindowClosedError) Error() string {
	return fmt.Sprintf("no open %s window for cycle %d", e.Phase, e.CycleID)
}

// AdvancementBlockedError is the normal negative outcome of an advancement
// check: the acting verifier has not graded every required criterion yet.
type AdvancementBlockedError struct {
	SubmissionID    int
	MissingCriteria []string
}

func (e *AdvancementBlockedError) Error() string {
	return fmt.Sprintf("submission %d cannot advance, missing grades: %s",
		e.SubmissionID, strings.Join(e.MissingCriteria, ", "))
}

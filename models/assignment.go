package models

import "time"

// SubmissionVerifier links a verifier to a submission. ReviewPhase is
// nullable: NULL means the assignment follows the submission's current
// phase; a concrete value pins it to that phase only.
type SubmissionVerifier struct {
	AssignmentID int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	UserID       int       `gorm:"column:user_id" json:"user_id"`
	ReviewPhase  *int      `gorm:"column:review_phase" json:"review_phase,omitempty"`
	AssignedBy   int       `gorm:"column:assigned_by" json:"assigned_by"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// SubmissionCoordinator links a coordinator to a submission.
type SubmissionCoordinator struct {
	AssignmentID int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	UserID       int       `gorm:"column:user_id" json:"user_id"`
	AssignedBy   int       `gorm:"column:assigned_by" json:"assigned_by"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (SubmissionVerifier) TableName() string {
	return "submission_verifiers"
}

func (SubmissionCoordinator) TableName() string {
	return "submission_coordinators"
}

// AppliesToPhase reports whether the assignment is in scope when the
// submission sits in the given phase.
func (a *SubmissionVerifier) AppliesToPhase(phase int) bool {
	return a.ReviewPhase == nil || *a.ReviewPhase == phase
}

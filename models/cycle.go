package models

import "time"

// Window phases. One phase string per (artifact kind, stage) pair; the
// submission phases gate Submit, the verification/final phases exist for
// reporting — advancement is grading-driven, not date-driven.
const (
	PhaseAbstractSubmission    = "abstract_submission"
	PhaseBestPaperSubmission   = "best_paper_submission"
	PhaseAwardSubmission       = "award_submission"
	PhaseAbstractVerification  = "abstract_verification"
	PhaseBestPaperVerification = "best_paper_verification"
	PhaseAwardVerification     = "award_verification"
	PhaseAbstractFinal         = "abstract_final"
	PhaseBestPaperFinal        = "best_paper_final"
	PhaseAwardFinal            = "award_final"
)

// Cycle represents one dated review period (e.g. an academic year).
type Cycle struct {
	CycleID   int        `gorm:"primaryKey;column:cycle_id" json:"cycle_id"`
	CycleName string     `gorm:"column:cycle_name;unique" json:"cycle_name"`
	StartDate time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time  `gorm:"column:end_date" json:"end_date"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Windows []CycleWindow `gorm:"foreignKey:CycleID" json:"windows,omitempty"`
}

// CycleWindow is a time span during which one phase is open for a cycle.
// Both bounds are inclusive.
type CycleWindow struct {
	WindowID  int        `gorm:"primaryKey;column:window_id" json:"window_id"`
	CycleID   int        `gorm:"column:cycle_id" json:"cycle_id"`
	Phase     string     `gorm:"column:phase" json:"phase"`
	StartDate time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time  `gorm:"column:end_date" json:"end_date"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Cycle) TableName() string {
	return "cycles"
}

func (CycleWindow) TableName() string {
	return "cycle_windows"
}

// Contains reports whether the window is active on the given date,
// inclusive of both endpoints. Dates are compared at day precision.
func (w *CycleWindow) Contains(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(w.StartDate)) && !day.After(truncateToDay(w.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

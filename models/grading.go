package models

import "time"

// GradingType is one rubric criterion for an artifact kind, with its
// allowed score range. Maintained by administrators, rarely changed.
type GradingType struct {
	GradingTypeID int        `gorm:"primaryKey;column:grading_type_id" json:"grading_type_id"`
	Criteria      string     `gorm:"column:criteria" json:"criteria"`
	MinScore      int        `gorm:"column:min_score" json:"min_score"`
	MaxScore      int        `gorm:"column:max_score" json:"max_score"`
	GradingFor    string     `gorm:"column:grading_for" json:"grading_for"` // abstract|best_paper|award
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Grading is one recorded score: one criterion, one verifier, one
// submission, one phase. The target submission and the grading type are
// immutable once written; only score and comments may change.
type Grading struct {
	GradingID     int       `gorm:"primaryKey;column:grading_id" json:"grading_id"`
	GradingTypeID int       `gorm:"column:grading_type_id" json:"grading_type_id"`
	SubmissionID  int       `gorm:"column:submission_id" json:"submission_id"`
	GradedByID    int       `gorm:"column:graded_by_id" json:"graded_by_id"`
	Score         int       `gorm:"column:score" json:"score"`
	Comments      *string   `gorm:"column:comments" json:"comments,omitempty"`
	ReviewPhase   int       `gorm:"column:review_phase" json:"review_phase"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`

	GradingType *GradingType `gorm:"foreignKey:GradingTypeID" json:"grading_type,omitempty"`
	GradedBy    *User        `gorm:"foreignKey:GradedByID" json:"graded_by,omitempty"`
}

// TableName overrides
func (GradingType) TableName() string {
	return "grading_types"
}

func (Grading) TableName() string {
	return "gradings"
}

package models

import "time"

// Submission types (artifact kinds).
const (
	SubmissionTypeAbstract  = "abstract"
	SubmissionTypeBestPaper = "best_paper"
	SubmissionTypeAward     = "award"
)

// Submission statuses.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
)

// Submission is the shared workflow record for abstracts, awards and best
// papers. Kind-specific fields live in the detail tables below.
type Submission struct {
	SubmissionID     int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber string     `gorm:"column:submission_number;unique" json:"submission_number"`
	SubmissionType   string     `gorm:"column:submission_type" json:"submission_type"`
	CycleID          int        `gorm:"column:cycle_id" json:"cycle_id"`
	CategoryID       int        `gorm:"column:category_id" json:"category_id"`
	UserID           int        `gorm:"column:user_id" json:"user_id"`
	Status           string     `gorm:"column:status" json:"status"`
	ReviewPhase      int        `gorm:"column:review_phase" json:"review_phase"`
	SubmittedAt      *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt        *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	User         User                    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Cycle        Cycle                   `gorm:"foreignKey:CycleID" json:"cycle,omitempty"`
	Category     Category                `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Verifiers    []SubmissionVerifier    `gorm:"foreignKey:SubmissionID" json:"verifiers,omitempty"`
	Coordinators []SubmissionCoordinator `gorm:"foreignKey:SubmissionID" json:"coordinators,omitempty"`
	Gradings     []Grading               `gorm:"foreignKey:SubmissionID" json:"gradings,omitempty"`

	AbstractDetail  *AbstractDetail  `gorm:"foreignKey:SubmissionID" json:"abstract_detail,omitempty"`
	BestPaperDetail *BestPaperDetail `gorm:"foreignKey:SubmissionID" json:"best_paper_detail,omitempty"`
	AwardDetail     *AwardDetail     `gorm:"foreignKey:SubmissionID" json:"award_detail,omitempty"`
}

// IsTerminal reports whether the submission reached a final status.
func (s *Submission) IsTerminal() bool {
	return s.Status == StatusAccepted || s.Status == StatusRejected
}

// SubmissionPhase returns the window phase that gates submitting this
// artifact kind, or "" for an unknown kind.
func (s *Submission) SubmissionPhase() string {
	switch s.SubmissionType {
	case SubmissionTypeAbstract:
		return PhaseAbstractSubmission
	case SubmissionTypeBestPaper:
		return PhaseBestPaperSubmission
	case SubmissionTypeAward:
		return PhaseAwardSubmission
	}
	return ""
}

type AbstractDetail struct {
	DetailID     int        `gorm:"primaryKey;column:detail_id" json:"detail_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	Title        string     `gorm:"column:title" json:"title"`
	Summary      string     `gorm:"column:summary" json:"summary"`
	Keywords     *string    `gorm:"column:keywords" json:"keywords,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

type BestPaperDetail struct {
	DetailID     int        `gorm:"primaryKey;column:detail_id" json:"detail_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	PaperTitle   string     `gorm:"column:paper_title" json:"paper_title"`
	Venue        string     `gorm:"column:venue" json:"venue"`
	DOI          *string    `gorm:"column:doi" json:"doi,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

type AwardDetail struct {
	DetailID     int        `gorm:"primaryKey;column:detail_id" json:"detail_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	AwardName    string     `gorm:"column:award_name" json:"award_name"`
	Achievement  string     `gorm:"column:achievement" json:"achievement"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (AbstractDetail) TableName() string {
	return "abstract_details"
}

func (BestPaperDetail) TableName() string {
	return "best_paper_details"
}

func (AwardDetail) TableName() string {
	return "award_details"
}

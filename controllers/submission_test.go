package controllers

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"review-portal-api/config"
	"review-portal-api/models"
)

// The detail row must land on the submission struct the handler serializes,
// not on a copy.
func TestLoadSubmissionDetailAttachesToCaller(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `abstract_details`"),
			args:    []driver.Value{int64(1)},
			columns: []string{"detail_id", "submission_id", "title", "summary"},
			rows:    [][]driver.Value{{int64(4), int64(1), "Reviewer Load Balancing", "A summary."}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	previous := config.DB
	config.DB = db
	defer func() { config.DB = previous }()

	submission := models.Submission{
		SubmissionID:   1,
		SubmissionType: models.SubmissionTypeAbstract,
	}
	loadSubmissionDetail(&submission)

	if submission.AbstractDetail == nil {
		t.Fatal("expected abstract detail attached to the submission")
	}
	if submission.AbstractDetail.Title != "Reviewer Load Balancing" {
		t.Fatalf("unexpected detail title %q", submission.AbstractDetail.Title)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestLoadSubmissionDetailsMutatesSliceInPlace(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `award_details`"),
			args:    []driver.Value{int64(2)},
			columns: []string{"detail_id", "submission_id", "award_name", "achievement"},
			rows:    [][]driver.Value{{int64(9), int64(2), "Best Demo", "Won at the regional showcase."}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	previous := config.DB
	config.DB = db
	defer func() { config.DB = previous }()

	submissions := []models.Submission{
		{SubmissionID: 2, SubmissionType: models.SubmissionTypeAward},
	}
	loadSubmissionDetails(submissions)

	if submissions[0].AwardDetail == nil {
		t.Fatal("expected award detail attached to the slice element")
	}
	if submissions[0].AwardDetail.AwardName != "Best Demo" {
		t.Fatalf("unexpected award name %q", submissions[0].AwardDetail.AwardName)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

// Attempts to repoint a grade are refused before any statement is issued.
func TestUpdateGradeImmutableTarget(t *testing.T) {
	svc := NewGradingService(nil)

	otherSubmission := 2
	if _, err := svc.UpdateGrade(1, UpdateGradeInput{SubmissionID: &otherSubmission}); !errors.Is(err, ErrImmutableGradeField) {
		t.Fatalf("expected ErrImmutableGradeField for target change, got %v", err)
	}

	otherType := 5
	if _, err := svc.UpdateGrade(1, UpdateGradeInput{GradingTypeID: &otherType}); !errors.Is(err, ErrImmutableGradeField) {
		t.Fatalf("expected ErrImmutableGradeField for grading type change, got %v", err)
	}
}

func TestUpdateGradeScoreAndComments(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `gradings`"),
			args:    []driver.Value{int64(1)},
			columns: []string{"grading_id", "grading_type_id", "submission_id", "graded_by_id", "score", "review_phase"},
			rows:    [][]driver.Value{{int64(1), int64(2), int64(3), int64(7), int64(4), int64(1)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `gradings`"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	score := 9
	comments := "solid methodology"
	grading, err := NewGradingService(db).UpdateGrade(1, UpdateGradeInput{Score: &score, Comments: &comments})
	if err != nil {
		t.Fatalf("UpdateGrade returned error: %v", err)
	}
	if grading.Score != 9 {
		t.Fatalf("expected updated score 9, got %d", grading.Score)
	}
	if grading.SubmissionID != 3 || grading.GradingTypeID != 2 {
		t.Fatalf("target fields changed: %+v", grading)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

// RecordGrade holds the submission row lock while it checks for an existing
// grade and inserts the new one, so concurrent calls for the same key
// serialize instead of both passing the duplicate check.
func TestRecordGradeLocksSubmissionRow(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `grading_types`"),
			args:    []driver.Value{int64(2)},
			columns: []string{"grading_type_id", "criteria", "grading_for"},
			rows:    [][]driver.Value{{int64(2), "Clarity", "abstract"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `submissions`.* FOR UPDATE"),
			args:    []driver.Value{int64(1)},
			columns: []string{"submission_id", "submission_type", "status", "review_phase"},
			rows:    [][]driver.Value{{int64(1), "abstract", "under_review", int64(2)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `gradings`"),
			args:    []driver.Value{int64(1), int64(2), int64(7), int64(2)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `gradings`"),
			result:  scriptedResult{lastInsertID: 5, rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	grading, err := NewGradingService(db).RecordGrade(RecordGradeInput{
		GradingTypeID: 2,
		SubmissionID:  1,
		GradedByID:    7,
		Score:         8,
	})
	if err != nil {
		t.Fatalf("RecordGrade returned error: %v", err)
	}
	if grading.GradingID != 5 {
		t.Fatalf("expected grading id 5, got %d", grading.GradingID)
	}
	if grading.ReviewPhase != 2 {
		t.Fatalf("expected grade recorded at the submission's phase 2, got %d", grading.ReviewPhase)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

// One grade per (submission, criterion, verifier, phase): a second insert
// for the same key is rejected under the lock.
func TestRecordGradeRejectsDuplicate(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `grading_types`"),
			args:    []driver.Value{int64(2)},
			columns: []string{"grading_type_id", "criteria", "grading_for"},
			rows:    [][]driver.Value{{int64(2), "Clarity", "abstract"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `submissions`.* FOR UPDATE"),
			args:    []driver.Value{int64(1)},
			columns: []string{"submission_id", "submission_type", "status", "review_phase"},
			rows:    [][]driver.Value{{int64(1), "abstract", "under_review", int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `gradings`"),
			args:    []driver.Value{int64(1), int64(2), int64(7), int64(1)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewGradingService(db).RecordGrade(RecordGradeInput{
		GradingTypeID: 2,
		SubmissionID:  1,
		GradedByID:    7,
		Score:         8,
	})
	if !errors.Is(err, ErrDuplicateGrade) {
		t.Fatalf("expected ErrDuplicateGrade, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

// A criterion for one artifact kind cannot score a submission of another.
func TestRecordGradeRejectsKindMismatch(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `grading_types`"),
			args:    []driver.Value{int64(2)},
			columns: []string{"grading_type_id", "criteria", "grading_for"},
			rows:    [][]driver.Value{{int64(2), "Clarity", "abstract"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `submissions`.* FOR UPDATE"),
			args:    []driver.Value{int64(1)},
			columns: []string{"submission_id", "submission_type", "status", "review_phase"},
			rows:    [][]driver.Value{{int64(1), "award", "under_review", int64(1)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewGradingService(db).RecordGrade(RecordGradeInput{
		GradingTypeID: 2,
		SubmissionID:  1,
		GradedByID:    7,
		Score:         8,
	})
	if !errors.Is(err, ErrGradingKindMismatch) {
		t.Fatalf("expected ErrGradingKindMismatch, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

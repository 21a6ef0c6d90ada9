package services

import (
	"testing"

	"review-portal-api/models"
)

func intPtr(v int) *int { return &v }

func rubric(ids ...int) []models.GradingType {
	names := []string{"Originality", "Clarity", "Impact", "Rigor"}
	types := make([]models.GradingType, 0, len(ids))
	for i, id := range ids {
		types = append(types, models.GradingType{
			GradingTypeID: id,
			Criteria:      names[i%len(names)],
			GradingFor:    models.SubmissionTypeAbstract,
		})
	}
	return types
}

func grade(typeID, verifierID, phase int) models.Grading {
	return models.Grading{GradingTypeID: typeID, GradedByID: verifierID, ReviewPhase: phase}
}

func TestEvaluateAdvancementNoAssignmentsPasses(t *testing.T) {
	ok, missing := evaluateAdvancement(nil, rubric(1, 2, 3), nil, 7, 1)
	if !ok {
		t.Fatalf("expected pass with no verifier assignments, missing=%v", missing)
	}
}

func TestEvaluateAdvancementActorNotAssignedPasses(t *testing.T) {
	assignments := []models.SubmissionVerifier{{UserID: 5}}
	ok, _ := evaluateAdvancement(assignments, rubric(1, 2), nil, 7, 1)
	if !ok {
		t.Fatalf("expected pass when acting verifier has no assignment")
	}
}

func TestEvaluateAdvancementEmptyRubricPasses(t *testing.T) {
	assignments := []models.SubmissionVerifier{{UserID: 7}}
	ok, _ := evaluateAdvancement(assignments, nil, nil, 7, 1)
	if !ok {
		t.Fatalf("expected pass with no grading types configured")
	}
}

func TestEvaluateAdvancementBlocksUntilRubricComplete(t *testing.T) {
	assignments := []models.SubmissionVerifier{{UserID: 7}}
	required := rubric(1, 2, 3)

	grades := []models.Grading{grade(1, 7, 1), grade(2, 7, 1)}
	ok, missing := evaluateAdvancement(assignments, required, grades, 7, 1)
	if ok {
		t.Fatalf("expected block with one criterion ungraded")
	}
	if len(missing) != 1 || missing[0] != "Impact" {
		t.Fatalf("expected missing [Impact], got %v", missing)
	}

	grades = append(grades, grade(3, 7, 1))
	ok, missing = evaluateAdvancement(assignments, required, grades, 7, 1)
	if !ok {
		t.Fatalf("expected pass after last criterion graded, missing=%v", missing)
	}
}

// Completion must not depend on the order grades were recorded in.
func TestEvaluateAdvancementCompletionIsCommutative(t *testing.T) {
	assignments := []models.SubmissionVerifier{{UserID: 7}}
	required := rubric(1, 2, 3)

	orders := [][]int{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
	}
	for _, order := range orders {
		var grades []models.Grading
		for i, typeID := range order {
			grades = append(grades, grade(typeID, 7, 1))
			ok, _ := evaluateAdvancement(assignments, required, grades, 7, 1)
			complete := i == len(order)-1
			if ok != complete {
				t.Fatalf("order %v: after %d grades got ok=%v, want %v", order, i+1, ok, complete)
			}
		}
	}
}

func TestEvaluateAdvancementIgnoresOtherPhaseGrades(t *testing.T) {
	assignments := []models.SubmissionVerifier{{UserID: 7}}
	required := rubric(1, 2)

	// Complete rubric, but recorded in phase 1 while the submission is in
	// phase 2.
	grades := []models.Grading{grade(1, 7, 1), grade(2, 7, 1)}
	ok, missing := evaluateAdvancement(assignments, required, grades, 7, 2)
	if ok {
		t.Fatalf("expected block: grades belong to a previous phase")
	}
	if len(missing) != 2 {
		t.Fatalf("expected both criteria missing, got %v", missing)
	}
}

func TestEvaluateAdvancementIgnoresOtherVerifiersGrades(t *testing.T) {
	assignments := []models.SubmissionVerifier{{UserID: 7}, {UserID: 8}}
	required := rubric(1, 2)

	// Verifier 8 finished; acting verifier 7 has not.
	grades := []models.Grading{grade(1, 8, 1), grade(2, 8, 1)}
	ok, _ := evaluateAdvancement(assignments, required, grades, 7, 1)
	if ok {
		t.Fatalf("expected block for acting verifier with no grades")
	}

	// And the check is verifier-centric: verifier 8 passes even though 7
	// has not graded.
	ok, _ = evaluateAdvancement(assignments, required, grades, 8, 1)
	if !ok {
		t.Fatalf("expected pass for the verifier that completed the rubric")
	}
}

func TestEvaluateAdvancementPhasePinnedAssignments(t *testing.T) {
	// Verifier 7 pinned to phase 2; in phase 1 the assignment is out of
	// scope, so nothing blocks.
	assignments := []models.SubmissionVerifier{{UserID: 7, ReviewPhase: intPtr(2)}}
	required := rubric(1)

	ok, _ := evaluateAdvancement(assignments, required, nil, 7, 1)
	if !ok {
		t.Fatalf("expected pass: assignment pinned to another phase")
	}

	ok, _ = evaluateAdvancement(assignments, required, nil, 7, 2)
	if ok {
		t.Fatalf("expected block in the pinned phase with no grades")
	}

	grades := []models.Grading{grade(1, 7, 2)}
	ok, _ = evaluateAdvancement(assignments, required, grades, 7, 2)
	if !ok {
		t.Fatalf("expected pass in the pinned phase once graded")
	}
}

// Walks the acceptance scenario: verifier assigned in phase 1 with a
// three-criterion rubric blocks on two grades, passes on the third, and the
// transition guards then admit an accept.
func TestAdvancementAcceptScenario(t *testing.T) {
	submission := &models.Submission{
		SubmissionID:   1,
		SubmissionType: models.SubmissionTypeAbstract,
		Status:         models.StatusUnderReview,
		ReviewPhase:    1,
	}
	assignments := []models.SubmissionVerifier{{SubmissionID: 1, UserID: 7}}
	required := []models.GradingType{
		{GradingTypeID: 1, Criteria: "Originality", GradingFor: models.SubmissionTypeAbstract},
		{GradingTypeID: 2, Criteria: "Clarity", GradingFor: models.SubmissionTypeAbstract},
		{GradingTypeID: 3, Criteria: "Impact", GradingFor: models.SubmissionTypeAbstract},
	}

	grades := []models.Grading{grade(1, 7, 1), grade(2, 7, 1)}
	ok, missing := evaluateAdvancement(assignments, required, grades, 7, submission.ReviewPhase)
	if ok {
		t.Fatalf("expected block with Impact ungraded")
	}
	if len(missing) != 1 || missing[0] != "Impact" {
		t.Fatalf("expected missing [Impact], got %v", missing)
	}

	grades = append(grades, grade(3, 7, 1))
	ok, _ = evaluateAdvancement(assignments, required, grades, 7, submission.ReviewPhase)
	if !ok {
		t.Fatalf("expected pass after Impact graded")
	}

	if err := decisionGuard(submission); err != nil {
		t.Fatalf("expected accept to be admissible from under_review: %v", err)
	}
}

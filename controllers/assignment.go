package controllers

import (
	"net/http"

	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

type assignVerifierRequest struct {
	UserID      int  `json:"user_id" binding:"required"`
	ReviewPhase *int `json:"review_phase"`
	Strict      bool `json:"strict"`
}

// AssignVerifier pairs a verifier with a submission. Idempotent by default;
// with strict=true an existing pairing is a 409.
func AssignVerifier(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req assignVerifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.ReviewPhase != nil && *req.ReviewPhase < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "review_phase must be at least 1"})
		return
	}

	actorID, _ := currentUser(c)
	input := services.VerifierAssignmentInput{
		SubmissionID: submissionID,
		UserID:       req.UserID,
		ReviewPhase:  req.ReviewPhase,
		AssignedBy:   actorID,
	}

	svc := assignmentService()
	var (
		assignment interface{}
		err        error
	)
	if req.Strict {
		assignment, err = svc.AssignVerifierStrict(input)
	} else {
		assignment, err = svc.AssignVerifier(input)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assignment": assignment,
	})
}

// RemoveVerifier unpairs a verifier; removing an absent pairing succeeds.
func RemoveVerifier(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	if err := assignmentService().RemoveVerifier(submissionID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verifier removed"})
}

// GetVerifiers lists verifier assignments for a submission.
func GetVerifiers(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	assignments, err := assignmentService().ListVerifiers(submissionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// AssignCoordinator pairs a coordinator with a submission, idempotently.
func AssignCoordinator(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		UserID int `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	actorID, _ := currentUser(c)
	assignment, err := assignmentService().AssignCoordinator(submissionID, req.UserID, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assignment": assignment,
	})
}

// RemoveCoordinator unpairs a coordinator; absent pairings succeed.
func RemoveCoordinator(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	if err := assignmentService().RemoveCoordinator(submissionID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coordinator removed"})
}

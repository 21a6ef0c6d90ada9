package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ===================== REVIEW DECISIONS =====================

// AdvanceSubmission moves an under-review submission to its next review
// phase, provided the acting verifier has completed the rubric for the
// current phase.
func AdvanceSubmission(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	submission, err := workflowService().AdvancePhase(submissionID, actionContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission advanced to the next review phase",
		"submission": submission,
	})
}

// AcceptSubmission finalizes an under-review submission as accepted, gated
// by the same advancement check as AdvanceSubmission.
func AcceptSubmission(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	submission, err := workflowService().Accept(submissionID, actionContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission accepted",
		"submission": submission,
	})
}

// RejectSubmission finalizes a submission as rejected, from any non-terminal
// state.
func RejectSubmission(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional for rejections.
	_ = c.ShouldBindJSON(&req)

	submission, err := workflowService().Reject(submissionID, strings.TrimSpace(req.Reason), actionContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission rejected",
		"submission": submission,
	})
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"review-portal-api/config"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// Service constructors over the shared connection. The services are cheap
// struct wrappers, so building one per request keeps handlers simple.
func windowService() *services.WindowService {
	return services.NewWindowService(config.DB)
}

func assignmentService() *services.AssignmentService {
	return services.NewAssignmentService(config.DB)
}

func gradingService() *services.GradingService {
	return services.NewGradingService(config.DB)
}

func notificationService() *services.NotificationService {
	return services.NewNotificationService(config.DB)
}

func workflowService() *services.WorkflowService {
	return services.NewWorkflowService(
		config.DB,
		windowService(),
		services.NewAdvancementService(config.DB),
		notificationService(),
		services.NewAuditService(config.DB),
	)
}

// currentUser pulls the authenticated user id out of the gin context.
func currentUser(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(int)
	return userID, ok
}

// currentRole pulls the authenticated role id out of the gin context.
func currentRole(c *gin.Context) int {
	value, exists := c.Get("roleID")
	if !exists {
		return 0
	}
	roleID, _ := value.(int)
	return roleID
}

func actionContext(c *gin.Context) services.ActionContext {
	userID, _ := currentUser(c)
	return services.ActionContext{
		ActorID:   userID,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondServiceError maps the workflow error taxonomy onto HTTP statuses.
// Unrecognized errors are logged and surfaced as 500s with a generic body.
func respondServiceError(c *gin.Context, err error) {
	var windowClosed *services.WindowClosedError
	var blocked *services.AdvancementBlockedError

	switch {
	case errors.Is(err, services.ErrCycleNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGradingTypeNotFound),
		errors.Is(err, services.ErrGradingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &windowClosed):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Submission window is closed",
			"cycle_id": windowClosed.CycleID,
			"phase":    windowClosed.Phase,
		})
	case errors.As(err, &blocked):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            "Grading is incomplete for the acting verifier",
			"missing_criteria": blocked.MissingCriteria,
		})
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrImmutableGradeField),
		errors.Is(err, services.ErrGradingKindMismatch),
		errors.Is(err, services.ErrInvalidWindowRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAssignmentExists),
		errors.Is(err, services.ErrDuplicateGrade):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

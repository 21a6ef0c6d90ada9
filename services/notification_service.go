package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"

	"gorm.io/gorm"
)

// NotificationService persists in-app notifications and sends best-effort
// email. Delivery failures are logged, never propagated; a lost mail must
// not fail a workflow transition.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotifySubmissionEvent records a notification for the user and emails them.
func (s *NotificationService) NotifySubmissionEvent(userID int, title, message, ntype string, submissionID int) {
	related := uint(submissionID)
	notification := models.Notification{
		UserID:              uint(userID),
		Title:               title,
		Message:             message,
		Type:                ntype,
		RelatedSubmissionID: &related,
		CreateAt:            time.Now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to store notification for user %d: %v", userID, err)
	}

	var user models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: failed to load user %d for notification email: %v", userID, err)
		}
		return
	}

	body := fmt.Sprintf("<p>Dear %s,</p><p>%s</p>", user.FullName(), message)
	if err := config.SendMail([]string{user.Email}, title, body); err != nil {
		log.Printf("Warning: failed to send notification email to %s: %v", user.Email, err)
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID int, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("create_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one notification read; marking another user's row is a
// no-op.
func (s *NotificationService) MarkRead(userID int, notificationID uint) error {
	now := time.Now()
	if err := s.db.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "update_at": now}).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read.
func (s *NotificationService) MarkAllRead(userID int) error {
	now := time.Now()
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "update_at": now}).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

var ErrReminderJobAlreadyRunning = errors.New("window reminder job already running")

// Submission phases covered by the reminder sweep.
var reminderPhases = map[string]string{
	models.PhaseAbstractSubmission:  models.SubmissionTypeAbstract,
	models.PhaseBestPaperSubmission: models.SubmissionTypeBestPaper,
	models.PhaseAwardSubmission:     models.SubmissionTypeAward,
}

// ReminderJobService mails owners of still-pending submissions whose
// cycle's submission window closes within the lead time. Scheduled daily;
// a MySQL named lock keeps concurrent instances from double-sending.
type ReminderJobService struct {
	db            *gorm.DB
	notifications *NotificationService
	leadTime      time.Duration
	lockName      string
}

func NewReminderJobService(db *gorm.DB, notifications *NotificationService) *ReminderJobService {
	return &ReminderJobService{
		db:            db,
		notifications: notifications,
		leadTime:      72 * time.Hour,
		lockName:      "submission_window_reminder",
	}
}

// Run executes one reminder sweep. Returns the number of reminders sent.
func (s *ReminderJobService) Run(ctx context.Context) (int, error) {
	release, err := s.acquireLock(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := release(); err != nil {
			log.Printf("Warning: failed to release reminder job lock: %v", err)
		}
	}()

	now := time.Now()
	deadline := now.Add(s.leadTime)

	var windows []models.CycleWindow
	if err := s.db.WithContext(ctx).
		Where("delete_at IS NULL AND end_date >= ? AND end_date <= ?", now, deadline).
		Find(&windows).Error; err != nil {
		return 0, fmt.Errorf("failed to load closing windows: %w", err)
	}

	sent := 0
	for i := range windows {
		window := &windows[i]
		kind, ok := reminderPhases[window.Phase]
		if !ok || !window.Contains(now) {
			continue
		}

		var pending []models.Submission
		if err := s.db.WithContext(ctx).
			Where("cycle_id = ? AND submission_type = ? AND status = ? AND deleted_at IS NULL",
				window.CycleID, kind, models.StatusPending).
			Find(&pending).Error; err != nil {
			return sent, fmt.Errorf("failed to load pending submissions: %w", err)
		}

		for j := range pending {
			sub := &pending[j]
			message := fmt.Sprintf(
				"Submission %s has not been submitted yet. The %s window closes on %s.",
				sub.SubmissionNumber, window.Phase, window.EndDate.Format("2006-01-02"))
			s.notifications.NotifySubmissionEvent(sub.UserID, "Submission window closing soon", message, "warning", sub.SubmissionID)
			sent++
		}
	}

	if sent > 0 {
		log.Printf("Window reminder job sent %d reminders", sent)
	}
	return sent, nil
}

func (s *ReminderJobService) acquireLock(ctx context.Context) (func() error, error) {
	var ok int
	if err := s.db.WithContext(ctx).Raw("SELECT GET_LOCK(?, 0)", s.lockName).Scan(&ok).Error; err != nil {
		return nil, err
	}
	if ok != 1 {
		return nil, ErrReminderJobAlreadyRunning
	}

	return func() error {
		var released int
		if err := s.db.WithContext(ctx).Raw("SELECT RELEASE_LOCK(?)", s.lockName).Scan(&released).Error; err != nil {
			return err
		}
		if released != 1 {
			return fmt.Errorf("release lock %q returned %d", s.lockName, released)
		}
		return nil
	}, nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

// WindowService answers "is phase P open for cycle C on date D?" and manages
// cycle windows. Window bounds are inclusive on both ends.
type WindowService struct {
	db *gorm.DB
}

func NewWindowService(db *gorm.DB) *WindowService {
	return &WindowService{db: db}
}

// withDB returns a copy bound to the given handle so window checks can run
// inside a caller's transaction.
func (s *WindowService) withDB(db *gorm.DB) *WindowService {
	return &WindowService{db: db}
}

// IsPhaseOpen reports whether any window for the cycle and phase contains
// the reference date.
func (s *WindowService) IsPhaseOpen(cycleID int, phase string, referenceDate time.Time) (bool, error) {
	var windows []models.CycleWindow
	if err := s.db.Where("cycle_id = ? AND phase = ? AND delete_at IS NULL", cycleID, phase).
		Find(&windows).Error; err != nil {
		return false, fmt.Errorf("failed to load cycle windows: %w", err)
	}

	for i := range windows {
		if windows[i].Contains(referenceDate) {
			return true, nil
		}
	}
	return false, nil
}

// ListActiveWindows returns all windows of the cycle, any phase, active on
// the reference date.
func (s *WindowService) ListActiveWindows(cycleID int, referenceDate time.Time) ([]models.CycleWindow, error) {
	var windows []models.CycleWindow
	if err := s.db.Where("cycle_id = ? AND delete_at IS NULL", cycleID).
		Order("start_date ASC").
		Find(&windows).Error; err != nil {
		return nil, fmt.Errorf("failed to load cycle windows: %w", err)
	}

	active := make([]models.CycleWindow, 0, len(windows))
	for i := range windows {
		if windows[i].Contains(referenceDate) {
			active = append(active, windows[i])
		}
	}
	return active, nil
}

// CreateWindow opens a new window for the cycle. Overlapping and
// duplicate-phase windows are accepted; calling code is expected to keep one
// window per (cycle, phase).
func (s *WindowService) CreateWindow(cycleID int, phase string, startDate, endDate time.Time) (*models.CycleWindow, error) {
	if startDate.After(endDate) {
		return nil, ErrInvalidWindowRange
	}

	var cycle models.Cycle
	if err := s.db.Where("cycle_id = ? AND delete_at IS NULL", cycleID).First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFound
		}
		return nil, fmt.Errorf("failed to load cycle: %w", err)
	}

	now := time.Now()
	window := models.CycleWindow{
		CycleID:   cycleID,
		Phase:     phase,
		StartDate: startDate,
		EndDate:   endDate,
		CreateAt:  now,
		UpdateAt:  now,
	}
	if err := s.db.Create(&window).Error; err != nil {
		return nil, fmt.Errorf("failed to create cycle window: %w", err)
	}
	return &window, nil
}

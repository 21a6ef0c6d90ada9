package services

import (
	"fmt"
	"sync"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
)

var (
	gradingTypeCacheMu sync.RWMutex
	gradingTypeCache   *gradingTypeCacheEntry
	gradingTypeTTL     = 5 * time.Minute
)

type gradingTypeCacheEntry struct {
	types     []models.GradingType
	byKind    map[string][]models.GradingType
	fetchedAt time.Time
}

func loadGradingTypes(force bool) (*gradingTypeCacheEntry, error) {
	gradingTypeCacheMu.RLock()
	cached := gradingTypeCache
	gradingTypeCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < gradingTypeTTL {
		return cached, nil
	}

	gradingTypeCacheMu.Lock()
	defer gradingTypeCacheMu.Unlock()

	if gradingTypeCache != nil && !force && time.Since(gradingTypeCache.fetchedAt) < gradingTypeTTL {
		return gradingTypeCache, nil
	}

	var rows []models.GradingType
	if err := config.DB.Where("delete_at IS NULL").Order("grading_type_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load grading types: %w", err)
	}

	byKind := make(map[string][]models.GradingType)
	for _, gt := range rows {
		byKind[gt.GradingFor] = append(byKind[gt.GradingFor], gt)
	}

	entry := &gradingTypeCacheEntry{
		types:     rows,
		byKind:    byKind,
		fetchedAt: time.Now(),
	}
	gradingTypeCache = entry
	return entry, nil
}

// ClearGradingTypeCache invalidates the in-memory grading type cache.
func ClearGradingTypeCache() {
	gradingTypeCacheMu.Lock()
	defer gradingTypeCacheMu.Unlock()
	gradingTypeCache = nil
}

// GetGradingTypes returns all grading types with caching support.
func GetGradingTypes() ([]models.GradingType, error) {
	entry, err := loadGradingTypes(false)
	if err != nil {
		return nil, err
	}
	return entry.types, nil
}

// GetGradingTypesForKind returns the rubric for one artifact kind.
func GetGradingTypesForKind(kind string) ([]models.GradingType, error) {
	entry, err := loadGradingTypes(false)
	if err != nil {
		return nil, err
	}
	if types, ok := entry.byKind[kind]; ok {
		return types, nil
	}

	// Force refresh cache once before reporting an empty rubric
	entry, err = loadGradingTypes(true)
	if err != nil {
		return nil, err
	}
	return entry.byKind[kind], nil
}

package services

import (
	"log"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

// AuditService writes the audit trail. A failed audit write is logged and
// swallowed; it never aborts the operation being audited.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record persists one audit entry.
func (s *AuditService) Record(entry models.AuditLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to write audit log (action=%s entity=%s): %v",
			entry.Action, entry.EntityType, err)
	}
}

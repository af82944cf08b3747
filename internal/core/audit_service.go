package core

import (
	"context"
	"fmt"
	"log"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// auditService implements the AuditService interface.
type auditService struct {
	auditRepo db.AuditRepository
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(auditRepo db.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// CreateAuditLog stores a new audit trail entry. Callers treat audit failures
// as non-fatal; the error is returned for those that care.
func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	if s.auditRepo == nil {
		return fmt.Errorf("AuditRepository not initialized in AuditService")
	}
	if err := s.auditRepo.Create(ctx, logEntry); err != nil {
		log.Printf("Warning: failed to write audit log (action: %s, target: %s): %v", logEntry.Action, logEntry.TargetID, err)
		return fmt.Errorf("failed to create audit log via repository: %w", err)
	}
	return nil
}

package service

import (
	"log"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
)

// AuditSink records who did what. Recording is fire-and-forget: it runs
// after the business transaction has committed and a failed insert is
// logged, never propagated.
type AuditSink interface {
	Record(actor, action, subjectType, subjectID, details string)
}

type auditSink struct {
	repo repository.AuditLogRepository
}

func NewAuditSink(repo repository.AuditLogRepository) AuditSink {
	return &auditSink{repo: repo}
}

func (s *auditSink) Record(actor, action, subjectType, subjectID, details string) {
	entry := &model.AuditLog{
		Actor:       actor,
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Details:     details,
	}
	if err := s.repo.Create(entry); err != nil {
		log.Printf("audit: failed to record %s %s %s: %v", actor, action, subjectType, err)
	}
}

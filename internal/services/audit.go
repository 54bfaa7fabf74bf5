package services

import (
	"context"
	"log/slog"

	"github.com/bkarakas/ledger-core/internal/models"
	repo "github.com/bkarakas/ledger-core/internal/repository"
	"github.com/bkarakas/ledger-core/internal/worker"
)

// Auditor appends advisory audit records through the worker pool. A
// failed audit write is logged and dropped; it never fails the
// operation it describes.
type Auditor struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func NewAuditor(logs repo.AuditLogs, wp *worker.Pool) *Auditor {
	return &Auditor{logs: logs, wp: wp}
}

func (a *Auditor) Record(entityType string, entityID int64, action string, details map[string]any) {
	if a == nil {
		return
	}
	id := entityID
	a.wp.Submit(func() {
		err := a.logs.Create(context.Background(), models.AuditLog{
			EntityType: entityType,
			EntityID:   &id,
			Action:     action,
			Details:    details,
		})
		if err != nil {
			slog.Warn("audit write failed", "entity", entityType, "id", id, "action", action, "err", err)
		}
	})
}

package memory

import (
	"context"

	"github.com/bkarakas/ledger-core/internal/models"
)

type auditLogs struct{ s *Store }

func (r *auditLogs) Create(ctx context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAuditID++
	l.ID = r.s.nextAuditID
	l.CreatedAt = r.s.now()
	r.s.audits = append(r.s.audits, l)
	return nil
}

package postgres

import (
	"context"

	"github.com/bkarakas/ledger-core/internal/models"
)

type auditLogsRepo struct{ db querier }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_logs(entity_type, entity_id, action, details) VALUES($1, $2, $3, $4)`,
		l.EntityType, l.EntityID, l.Action, l.Details,
	)
	return err
}

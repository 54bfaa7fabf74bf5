package postgres

import (
	"context"
	"errors"

	repo "github.com/bkarakas/ledger-core/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so each repo
// can run against the pool or inside an atomic unit.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewStores(pool *pgxpool.Pool) repo.Stores {
	return repo.Stores{
		Users:        &usersRepo{db: pool},
		Accounts:     &accountsRepo{db: pool},
		Transactions: &transactionsRepo{db: pool},
		AuditLogs:    &auditLogsRepo{db: pool},
		Atomic:       &atomicRunner{pool: pool},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

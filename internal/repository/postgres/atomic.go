package postgres

import (
	"context"

	repo "github.com/bkarakas/ledger-core/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type atomicRunner struct{ pool *pgxpool.Pool }

func (a *atomicRunner) Atomic(ctx context.Context, fn func(repo.Accounts, repo.Transactions) error) error {
	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(&accountsRepo{db: tx}, &transactionsRepo{db: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

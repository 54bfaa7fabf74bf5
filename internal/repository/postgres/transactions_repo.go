package postgres

import (
	"context"
	"errors"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
	"github.com/jackc/pgx/v5"
)

type transactionsRepo struct{ db querier }

func (r *transactionsRepo) Append(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions(from_account_id, to_account_id, amount, type, status, description)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		tx.FromAccountID, tx.ToAccountID, tx.Amount, tx.Type, tx.Status, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	return tx, err
}

func (r *transactionsRepo) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	var tx models.Transaction
	err := r.db.QueryRow(ctx,
		`SELECT id, from_account_id, to_account_id, amount, type, status, description, created_at
		   FROM transactions WHERE id=$1`, id,
	).Scan(&tx.ID, &tx.FromAccountID, &tx.ToAccountID, &tx.Amount, &tx.Type, &tx.Status, &tx.Description, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, ledgererr.NotFound("transaction not found")
	}
	return tx, err
}

func (r *transactionsRepo) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, from_account_id, to_account_id, amount, type, status, description, created_at
		   FROM transactions
		  WHERE from_account_id=$1 OR to_account_id=$1
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.FromAccountID, &tx.ToAccountID, &tx.Amount, &tx.Type, &tx.Status, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
	"github.com/jackc/pgx/v5"
)

type accountsRepo struct{ db querier }

const accountCols = `id, user_id, account_number, balance, currency, status, created_at, updated_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.Balance, &a.Currency, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *accountsRepo) Create(ctx context.Context, a models.Account) (models.Account, error) {
	out, err := scanAccount(r.db.QueryRow(ctx,
		`INSERT INTO accounts(user_id, account_number, balance, currency, status)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING `+accountCols,
		a.UserID, a.AccountNumber, a.Balance, a.Currency, a.Status,
	))
	if isUniqueViolation(err) {
		return models.Account{}, ledgererr.Conflict("account number already exists")
	}
	return out, err
}

func (r *accountsRepo) GetByID(ctx context.Context, id int64) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, ledgererr.NotFound("account not found")
	}
	return a, err
}

func (r *accountsRepo) GetByNumber(ctx context.Context, number string) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE account_number=$1`, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, ledgererr.NotFound("account not found")
	}
	return a, err
}

func (r *accountsRepo) ListByUser(ctx context.Context, userID int64) ([]models.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.Balance, &a.Currency, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetForUpdate takes a row lock when db is an open transaction; callers
// lock rows in ascending id order so opposing transfers cannot deadlock.
func (r *accountsRepo) GetForUpdate(ctx context.Context, id int64) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, ledgererr.NotFound("account not found")
	}
	return a, err
}

func (r *accountsRepo) Debit(ctx context.Context, id int64, amount int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx,
		`UPDATE accounts
		    SET balance = balance - $2, updated_at = now()
		  WHERE id = $1 AND balance >= $2
		  RETURNING balance`,
		id, amount,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the account is missing or the guard refused the debit.
		cur, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return 0, gerr
		}
		return 0, ledgererr.InsufficientFunds(cur.Balance)
	}
	return balance, err
}

func (r *accountsRepo) Credit(ctx context.Context, id int64, amount int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx,
		`UPDATE accounts
		    SET balance = balance + $2, updated_at = now()
		  WHERE id = $1
		  RETURNING balance`,
		id, amount,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ledgererr.NotFound("account not found")
	}
	return balance, err
}

func (r *accountsRepo) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET status=$2, updated_at=now() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledgererr.NotFound("account not found")
	}
	return nil
}

func (r *accountsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledgererr.NotFound("account not found")
	}
	return nil
}

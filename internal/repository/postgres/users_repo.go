package postgres

import (
	"context"
	"errors"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct{ db querier }

func (r *usersRepo) Create(ctx context.Context, name, email string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(name, email) VALUES($1, $2)
		 RETURNING id, name, email, created_at, updated_at`,
		name, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return models.User{}, ledgererr.Conflict("email already exists")
	}
	return u, err
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ledgererr.NotFound("user not found")
	}
	return u, err
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ledgererr.NotFound("user not found")
	}
	return u, err
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, created_at, updated_at
		   FROM users ORDER BY created_at DESC LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET name=$2, email=$3, updated_at=now() WHERE id=$1`,
		u.ID, u.Name, u.Email,
	)
	if isUniqueViolation(err) {
		return ledgererr.Conflict("email already exists")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledgererr.NotFound("user not found")
	}
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledgererr.NotFound("user not found")
	}
	return nil
}

package repository

import (
	"context"

	"github.com/bkarakas/ledger-core/internal/models"
)

type Users interface {
	Create(ctx context.Context, name, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id int64) error
}

type Accounts interface {
	Create(ctx context.Context, a models.Account) (models.Account, error)
	GetByID(ctx context.Context, id int64) (models.Account, error)
	GetByNumber(ctx context.Context, number string) (models.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Account, error)

	// GetForUpdate reads an account with a row lock when called on the
	// stores scoped by Atomic; outside an atomic unit it is a plain read.
	GetForUpdate(ctx context.Context, id int64) (models.Account, error)

	// Debit subtracts amount and returns the new balance. It fails with
	// InsufficientFunds rather than ever letting the balance go negative,
	// atomically with respect to concurrent writes on the same account.
	Debit(ctx context.Context, id int64, amount int64) (int64, error)

	// Credit adds amount and returns the new balance.
	Credit(ctx context.Context, id int64, amount int64) (int64, error)

	UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error
	Delete(ctx context.Context, id int64) error
}

type Transactions interface {
	// Append persists the record and assigns its id.
	Append(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetByID(ctx context.Context, id int64) (models.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]models.Transaction, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Atomic runs fn against tx-scoped stores: every write fn makes through
// them lands together or not at all.
type Atomic interface {
	Atomic(ctx context.Context, fn func(Accounts, Transactions) error) error
}

type Stores struct {
	Users        Users
	Accounts     Accounts
	Transactions Transactions
	AuditLogs    AuditLogs
	Atomic       Atomic
}

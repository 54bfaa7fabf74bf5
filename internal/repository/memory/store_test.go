package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
	repo "github.com/bkarakas/ledger-core/internal/repository"
)

func TestDebitCredit(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	u, err := stores.Users.Create(ctx, "U", "u@example.com")
	require.NoError(t, err)
	a, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "A-1", Balance: 50, Status: models.AccountActive})
	require.NoError(t, err)

	bal, err := stores.Accounts.Debit(ctx, a.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(30), bal)

	_, err = stores.Accounts.Debit(ctx, a.ID, 31)
	var lerr *ledgererr.Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, ledgererr.KindInsufficientFunds, lerr.Kind)
	assert.Equal(t, int64(30), lerr.Balance)

	bal, err = stores.Accounts.Credit(ctx, a.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(35), bal)

	_, err = stores.Accounts.Debit(ctx, 999, 1)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))
	_, err = stores.Accounts.Credit(ctx, 999, 1)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))
}

func TestAtomicRollback(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	u, err := stores.Users.Create(ctx, "U", "u@example.com")
	require.NoError(t, err)
	a, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "A-1", Balance: 100, Status: models.AccountActive})
	require.NoError(t, err)
	b, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "B-1", Balance: 10, Status: models.AccountActive})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = stores.Atomic.Atomic(ctx, func(acc repo.Accounts, txns repo.Transactions) error {
		if _, err := acc.Debit(ctx, a.ID, 40); err != nil {
			return err
		}
		if _, err := acc.Credit(ctx, b.ID, 40); err != nil {
			return err
		}
		if _, err := txns.Append(ctx, models.Transaction{
			FromAccountID: a.ID, ToAccountID: b.ID, Amount: 40,
			Type: models.TxnTransfer, Status: models.TxnCompleted,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	gotA, err := stores.Accounts.GetByID(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := stores.Accounts.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), gotA.Balance)
	assert.Equal(t, int64(10), gotB.Balance)

	txs, err := stores.Transactions.ListByAccount(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestAtomicCommit(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	u, err := stores.Users.Create(ctx, "U", "u@example.com")
	require.NoError(t, err)
	a, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "A-1", Balance: 100, Status: models.AccountActive})
	require.NoError(t, err)
	b, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "B-1", Balance: 0, Status: models.AccountActive})
	require.NoError(t, err)

	var rec models.Transaction
	err = stores.Atomic.Atomic(ctx, func(acc repo.Accounts, txns repo.Transactions) error {
		if _, err := acc.Debit(ctx, a.ID, 30); err != nil {
			return err
		}
		if _, err := acc.Credit(ctx, b.ID, 30); err != nil {
			return err
		}
		var err error
		rec, err = txns.Append(ctx, models.Transaction{
			FromAccountID: a.ID, ToAccountID: b.ID, Amount: 30,
			Type: models.TxnTransfer, Status: models.TxnCompleted,
		})
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, rec.ID)

	got, err := stores.Transactions.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestListByAccountOrderAndPaging(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	u, err := stores.Users.Create(ctx, "U", "u@example.com")
	require.NoError(t, err)
	a, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "A-1", Balance: 0, Status: models.AccountActive})
	require.NoError(t, err)
	b, err := stores.Accounts.Create(ctx, models.Account{UserID: u.ID, AccountNumber: "B-1", Balance: 0, Status: models.AccountActive})
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 5; i++ {
		tx, err := stores.Transactions.Append(ctx, models.Transaction{
			FromAccountID: a.ID, ToAccountID: b.ID, Amount: int64(i + 1),
			Type: models.TxnTransfer, Status: models.TxnCompleted,
		})
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}

	txs, err := stores.Transactions.ListByAccount(ctx, a.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, ids[4], txs[0].ID)
	assert.Equal(t, ids[3], txs[1].ID)

	txs, err = stores.Transactions.ListByAccount(ctx, a.ID, 2, 4)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, ids[0], txs[0].ID)

	txs, err = stores.Transactions.ListByAccount(ctx, 999, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

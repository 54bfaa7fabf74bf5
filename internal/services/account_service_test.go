package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
)

func TestAccountCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t)

	a, err := f.accounts.Create(ctx, u.ID, "ACC-001", "EUR", 500)
	require.NoError(t, err)
	assert.Equal(t, u.ID, a.UserID)
	assert.Equal(t, "ACC-001", a.AccountNumber)
	assert.Equal(t, "EUR", a.Currency)
	assert.Equal(t, int64(500), a.Balance)
	assert.Equal(t, models.AccountActive, a.Status)

	// Empty number gets generated, empty currency defaults.
	b, err := f.accounts.Create(ctx, u.ID, "", "", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, b.AccountNumber)
	assert.Equal(t, "USD", b.Currency)
}

func TestAccountCreateRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t)

	_, err := f.accounts.Create(ctx, 999, "", "USD", 0)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))

	_, err = f.accounts.Create(ctx, u.ID, "", "USD", -1)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindInvalidInput))

	_, err = f.accounts.Create(ctx, u.ID, "DUP-1", "USD", 0)
	require.NoError(t, err)
	_, err = f.accounts.Create(ctx, u.ID, "DUP-1", "USD", 0)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindConflict))
}

func TestGetUserAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t)

	_, err := f.accounts.Create(ctx, u.ID, "", "USD", 0)
	require.NoError(t, err)
	_, err = f.accounts.Create(ctx, u.ID, "", "USD", 0)
	require.NoError(t, err)

	accts, err := f.accounts.GetUserAccounts(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, accts, 2)

	_, err = f.accounts.GetUserAccounts(ctx, 999)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))
}

func TestAccountGetByNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t)

	a, err := f.accounts.Create(ctx, u.ID, "NUM-42", "USD", 7)
	require.NoError(t, err)

	got, err := f.accounts.GetByNumber(ctx, "NUM-42")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = f.accounts.GetByNumber(ctx, "missing")
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))
}

func TestAccountUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.account(t, 0)

	got, err := f.accounts.UpdateStatus(ctx, a.ID, models.AccountFrozen)
	require.NoError(t, err)
	assert.Equal(t, models.AccountFrozen, got.Status)

	_, err = f.accounts.UpdateStatus(ctx, a.ID, "nonsense")
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindInvalidInput))

	_, err = f.accounts.UpdateStatus(ctx, 999, models.AccountActive)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))
}

func TestAccountDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	funded := f.account(t, 100)
	empty := f.account(t, 0)

	err := f.accounts.Delete(ctx, funded.ID)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindConflict))
	_, err = f.accounts.GetByID(ctx, funded.ID)
	assert.NoError(t, err)

	require.NoError(t, f.accounts.Delete(ctx, empty.ID))
	_, err = f.accounts.GetByID(ctx, empty.ID)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))

	err = f.accounts.Delete(ctx, 999)
	assert.True(t, ledgererr.IsKind(err, ledgererr.KindNotFound))
}

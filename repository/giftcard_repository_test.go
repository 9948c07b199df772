package repository

import (
	"context"
	"testing"

	"diamondbot/repository/testutil"
	"diamondbot/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftCardRepository_Get_MissingAccountReadsAsZero(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiftCardRepository(testDB.DB)
	ctx := context.Background()

	account, err := repo.Get(ctx, testutil.TestKey(1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), account.UserID)
	assert.True(t, account.Balance.IsZero())
}

func TestGiftCardRepository_AddAndDeduct(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiftCardRepository(testDB.DB)
	ctx := context.Background()
	key := testutil.TestKey(2)

	t.Run("credit creates the account", func(t *testing.T) {
		err := repo.AddBalance(ctx, key, decimal.RequireFromString("2.50"))
		require.NoError(t, err)

		account, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("2.50")))
	})

	t.Run("debit with sufficient funds", func(t *testing.T) {
		err := repo.DeductBalance(ctx, key, decimal.RequireFromString("1.25"))
		require.NoError(t, err)

		account, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("1.25")))
	})

	t.Run("overdraw is rejected atomically", func(t *testing.T) {
		err := repo.DeductBalance(ctx, key, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		account, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("1.25")))
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		assert.Error(t, repo.AddBalance(ctx, key, decimal.Zero))
		assert.Error(t, repo.DeductBalance(ctx, key, decimal.NewFromInt(-1)))
	})
}

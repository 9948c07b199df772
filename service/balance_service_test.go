package service

import (
	"context"
	"testing"
	"time"

	"diamondbot/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceService_Credit(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 10), nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(40)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeAdjustUp)).Return(nil)

	newBalance, err := service.Credit(context.Background(), key, 40)

	require.NoError(t, err)
	assert.Equal(t, int64(50), newBalance)
	m.uow.AssertCalled(t, "Commit")
}

func TestBalanceService_Credit_InvalidAmount(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	key := models.AccountKey{UserID: 100, GuildID: 200}

	_, err := service.Credit(context.Background(), key, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.Credit(context.Background(), key, -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	m.factory.AssertNotCalled(t, "Create")
}

func TestBalanceService_Debit_InsufficientFunds(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 30), nil)
	m.accounts.On("DeductBalance", anyCtx, key, int64(50)).Return(ErrInsufficientFunds)

	_, err := service.Debit(context.Background(), key, 50)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestBalanceService_Transfer(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	from := models.AccountKey{UserID: 100, GuildID: 200}
	to := models.AccountKey{UserID: 101, GuildID: 200}

	m.accounts.On("Get", anyCtx, from).Return(testAccount(from, 500), nil)
	m.accounts.On("DeductBalance", anyCtx, from, int64(200)).Return(nil)
	m.accounts.On("Get", anyCtx, to).Return(testAccount(to, 100), nil)
	m.accounts.On("AddBalance", anyCtx, to, int64(200)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeTransferOut)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeTransferIn)).Return(nil)

	result, err := service.Transfer(context.Background(), from, to, 200)

	require.NoError(t, err)
	assert.Equal(t, int64(300), result.NewFromBalance)
	assert.Equal(t, int64(300), result.NewToBalance)

	// Nothing is created or destroyed by a transfer
	assert.Equal(t, int64(500+100), result.NewFromBalance+result.NewToBalance)
	m.uow.AssertCalled(t, "Commit")
	m.history.AssertExpectations(t)
}

func TestBalanceService_Transfer_InsufficientFunds(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	from := models.AccountKey{UserID: 100, GuildID: 200}
	to := models.AccountKey{UserID: 101, GuildID: 200}

	m.accounts.On("Get", anyCtx, from).Return(testAccount(from, 100), nil)
	m.accounts.On("DeductBalance", anyCtx, from, int64(200)).Return(ErrInsufficientFunds)

	result, err := service.Transfer(context.Background(), from, to, 200)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, result)
	m.accounts.AssertNotCalled(t, "AddBalance", anyCtx, to, int64(200))
	m.uow.AssertNotCalled(t, "Commit")
}

func TestBalanceService_Transfer_InvalidAmount(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	from := models.AccountKey{UserID: 100, GuildID: 200}
	to := models.AccountKey{UserID: 101, GuildID: 200}

	result, err := service.Transfer(context.Background(), from, to, 0)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, result)
	m.factory.AssertNotCalled(t, "Create")
}

func TestBalanceService_GetBalances(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	lastDaily := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	account := testAccountWithDaily(key, 750, lastDaily, 4)
	account.TotalEarned = 2000
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.giftCards.On("Get", anyCtx, key).Return(&models.GiftCardAccount{
		UserID:  key.UserID,
		GuildID: key.GuildID,
		Balance: decimal.NewFromInt(3),
	}, nil)

	balances, err := service.GetBalances(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, int64(750), balances.Primary)
	assert.True(t, balances.GiftCard.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, int64(2000), balances.TotalEarned)
	assert.Equal(t, 4, balances.DailyStreak)
	assert.Equal(t, &lastDaily, balances.LastDaily)
}

func TestBalanceService_GetBalances_UnknownAccountReadsAsZero(t *testing.T) {
	m := setupMocks()
	service := NewBalanceService(m.factory)

	key := models.AccountKey{UserID: 999, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 0), nil)
	m.giftCards.On("Get", anyCtx, key).Return(&models.GiftCardAccount{
		UserID:  key.UserID,
		GuildID: key.GuildID,
		Balance: decimal.Zero,
	}, nil)

	balances, err := service.GetBalances(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, int64(0), balances.Primary)
	assert.True(t, balances.GiftCard.IsZero())
	assert.Nil(t, balances.LastDaily)
}

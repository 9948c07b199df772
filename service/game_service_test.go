package service

import (
	"context"
	"testing"

	"diamondbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGameService(m *serviceMocks, rolls ...int) *gameService {
	i := 0
	return &gameService{
		uowFactory: m.factory,
		roll: func(n int) int {
			r := rolls[i%len(rolls)]
			i++
			return r % n
		},
	}
}

func TestGameService_PlayFlat_CoinflipWin(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, CoinTails)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 50), nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(FlatGameReward)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeGameWin)).Return(nil)

	result, err := service.PlayFlat(context.Background(), key, GameCoinflip, CoinTails)

	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, CoinTails, result.Outcome)
	assert.Equal(t, int64(FlatGameReward), result.NetChange)
	assert.Equal(t, int64(150), result.NewBalance)
	m.uow.AssertCalled(t, "Commit")
}

func TestGameService_PlayFlat_DiceLossCostsNothing(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, 2) // outcome 3

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 400), nil)

	result, err := service.PlayFlat(context.Background(), key, GameDice, 5)

	require.NoError(t, err)
	assert.False(t, result.Won)
	assert.Equal(t, 3, result.Outcome)
	assert.Equal(t, int64(0), result.NetChange)
	assert.Equal(t, int64(400), result.NewBalance)
	m.accounts.AssertNotCalled(t, "AddBalance", anyCtx, key, int64(FlatGameReward))
	m.accounts.AssertNotCalled(t, "DeductBalance", anyCtx, key, int64(FlatGameReward))
}

func TestGameService_PlayFlat_InvalidGuess(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, 0)

	key := models.AccountKey{UserID: 100, GuildID: 200}

	_, err := service.PlayFlat(context.Background(), key, GameCoinflip, 7)
	assert.ErrorIs(t, err, ErrInvalidGuess)

	_, err = service.PlayFlat(context.Background(), key, GameDice, 0)
	assert.ErrorIs(t, err, ErrInvalidGuess)

	m.factory.AssertNotCalled(t, "Create")
}

func TestGameService_PlayFlat_UnknownGame(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, 0)

	key := models.AccountKey{UserID: 100, GuildID: 200}

	_, err := service.PlayFlat(context.Background(), key, "roulette", 1)
	require.Error(t, err)
	m.factory.AssertNotCalled(t, "Create")
}

func TestGameService_PlayStake_WinDoublesTheBet(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, CoinHeads)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 100), nil).Once()
	m.accounts.On("DeductBalance", anyCtx, key, int64(100)).Return(nil)
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 0), nil).Once()
	m.accounts.On("AddBalance", anyCtx, key, int64(200)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeStakePlaced)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeStakeWin)).Return(nil)

	result, err := service.PlayStake(context.Background(), key, CoinHeads, 100)

	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, int64(100), result.NetChange)
	assert.Equal(t, int64(200), result.NewBalance)
	m.accounts.AssertExpectations(t)
	m.history.AssertExpectations(t)
}

func TestGameService_PlayStake_LossForfeitsTheBet(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, CoinTails)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 500), nil)
	m.accounts.On("DeductBalance", anyCtx, key, int64(100)).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeStakePlaced)).Return(nil)

	result, err := service.PlayStake(context.Background(), key, CoinHeads, 100)

	require.NoError(t, err)
	assert.False(t, result.Won)
	assert.Equal(t, int64(-100), result.NetChange)
	assert.Equal(t, int64(400), result.NewBalance)
	m.accounts.AssertNotCalled(t, "AddBalance", anyCtx, key, int64(200))
}

func TestGameService_PlayStake_InsufficientBalance(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, CoinHeads)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	m.accounts.On("Get", anyCtx, key).Return(testAccount(key, 50), nil)
	m.accounts.On("DeductBalance", anyCtx, key, int64(100)).Return(ErrInsufficientFunds)

	result, err := service.PlayStake(context.Background(), key, CoinHeads, 100)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, result)
	m.accounts.AssertNotCalled(t, "AddBalance", anyCtx, key, int64(200))
	m.uow.AssertNotCalled(t, "Commit")
}

func TestGameService_PlayStake_BelowMinimumBet(t *testing.T) {
	m := setupMocks()
	service := newTestGameService(m, CoinHeads)

	key := models.AccountKey{UserID: 100, GuildID: 200}

	result, err := service.PlayStake(context.Background(), key, CoinHeads, 99)

	assert.ErrorIs(t, err, ErrBelowMinimum)
	assert.Nil(t, result)
	m.factory.AssertNotCalled(t, "Create")
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"diamondbot/events"
	"diamondbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDailyService(m *serviceMocks, now time.Time) *dailyService {
	return &dailyService{
		uowFactory: m.factory,
		now:        func() time.Time { return now },
	}
}

func TestDailyService_Claim_FirstClaim(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccount(key, 0)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(110)).Return(nil)
	m.accounts.On("SetDailyClaim", anyCtx, key, now, 1).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeDailyReward)).Return(nil)

	result, err := service.Claim(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, int64(110), result.Reward)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, int64(110), result.NewBalance)
	m.uow.AssertCalled(t, "Commit")
	m.accounts.AssertExpectations(t)
}

func TestDailyService_Claim_OnCooldown(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccountWithDaily(key, 500, now.Add(-23*time.Hour), 4)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)

	result, err := service.Claim(context.Background(), key)

	require.Error(t, err)
	assert.Nil(t, result)

	var cooldownErr *CooldownError
	require.True(t, errors.As(err, &cooldownErr))
	assert.Equal(t, time.Hour, cooldownErr.Remaining)

	m.accounts.AssertNotCalled(t, "AddBalance", anyCtx, key, int64(110))
	m.uow.AssertNotCalled(t, "Commit")
}

func TestDailyService_Claim_ExactlyTwentyFourHoursContinuesStreak(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccountWithDaily(key, 500, now.Add(-24*time.Hour), 2)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(130)).Return(nil)
	m.accounts.On("SetDailyClaim", anyCtx, key, now, 3).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeDailyReward)).Return(nil)

	result, err := service.Claim(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Streak)
	assert.Equal(t, int64(130), result.Reward)
	assert.Equal(t, int64(630), result.NewBalance)
}

func TestDailyService_Claim_ExactlyThirtySixHoursContinuesStreak(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccountWithDaily(key, 0, now.Add(-36*time.Hour), 5)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(160)).Return(nil)
	m.accounts.On("SetDailyClaim", anyCtx, key, now, 6).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeDailyReward)).Return(nil)

	result, err := service.Claim(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, 6, result.Streak)
	assert.Equal(t, int64(160), result.Reward)
}

func TestDailyService_Claim_PastGraceWindowResetsStreak(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccountWithDaily(key, 0, now.Add(-36*time.Hour-time.Minute), 9)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(110)).Return(nil)
	m.accounts.On("SetDailyClaim", anyCtx, key, now, 1).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeDailyReward)).Return(nil)

	result, err := service.Claim(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, int64(110), result.Reward)
}

func TestDailyService_Claim_StreakBonusIsCapped(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccountWithDaily(key, 0, now.Add(-25*time.Hour), 24)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(300)).Return(nil)
	m.accounts.On("SetDailyClaim", anyCtx, key, now, 25).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeDailyReward)).Return(nil)

	result, err := service.Claim(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, 25, result.Streak)
	assert.Equal(t, int64(300), result.Reward)
}

func TestDailyService_Claim_PublishesDailyClaimedEvent(t *testing.T) {
	m := setupMocks()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestDailyService(m, now)

	key := models.AccountKey{UserID: 100, GuildID: 200}
	account := testAccount(key, 0)

	m.accounts.On("Ensure", anyCtx, key).Return(nil)
	m.accounts.On("GetForUpdate", anyCtx, key).Return(account, nil)
	m.accounts.On("Get", anyCtx, key).Return(account, nil)
	m.accounts.On("AddBalance", anyCtx, key, int64(110)).Return(nil)
	m.accounts.On("SetDailyClaim", anyCtx, key, now, 1).Return(nil)
	m.history.On("Record", anyCtx, historyOfType(models.TransactionTypeDailyReward)).Return(nil)

	_, err := service.Claim(context.Background(), key)
	require.NoError(t, err)

	var claimed []events.DailyClaimedEvent
	for _, e := range m.uow.eventBus.published {
		if c, ok := e.(events.DailyClaimedEvent); ok {
			claimed = append(claimed, c)
		}
	}
	require.Len(t, claimed, 1)
	assert.Equal(t, int64(110), claimed[0].Reward)
	assert.Equal(t, 1, claimed[0].Streak)
}

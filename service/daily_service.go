package service

import (
	"context"
	"fmt"
	"time"

	"diamondbot/events"
	"diamondbot/models"
)

// Daily reward constants
const (
	BaseDailyReward   = 100
	StreakBonusPerDay = 10
	MaxStreakBonus    = 200

	// Claims are rejected before this much time has passed since the last
	// claim, and the streak survives up to StreakGraceWindow after it.
	DailyCooldown     = 24 * time.Hour
	StreakGraceWindow = 36 * time.Hour
)

type dailyService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewDailyService creates a new daily reward service
func NewDailyService(uowFactory UnitOfWorkFactory) DailyService {
	return &dailyService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Claim attempts to claim the daily reward for an account.
//
// Boundary rule: a claim exactly 24 hours after the previous one is
// eligible, and a claim exactly 36 hours after still continues the streak.
// Anything later resets the streak to 1.
func (s *dailyService) Claim(ctx context.Context, key models.AccountKey) (*models.DailyClaimResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Materialize the row first so the FOR UPDATE lock serializes
	// concurrent claims on the same account.
	if err := uow.AccountRepository().Ensure(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	account, err := uow.AccountRepository().GetForUpdate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	now := s.now()

	streak := 1
	if account.LastDaily != nil {
		elapsed := now.Sub(*account.LastDaily)

		if elapsed < DailyCooldown {
			return nil, &CooldownError{Remaining: DailyCooldown - elapsed}
		}
		if elapsed <= StreakGraceWindow {
			streak = account.DailyStreak + 1
		}
	}

	reward := dailyReward(streak)

	// The stored multiplier is deliberately not part of the formula; it is
	// persisted and displayed only.
	newBalance, err := creditAccount(ctx, uow, key, reward, models.TransactionTypeDailyReward, map[string]any{
		"streak":       streak,
		"base_reward":  int64(BaseDailyReward),
		"streak_bonus": reward - BaseDailyReward,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.AccountRepository().SetDailyClaim(ctx, key, now, streak); err != nil {
		return nil, fmt.Errorf("failed to record daily claim: %w", err)
	}

	uow.EventBus().Publish(events.DailyClaimedEvent{
		UserID:  key.UserID,
		GuildID: key.GuildID,
		Reward:  reward,
		Streak:  streak,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DailyClaimResult{
		Reward:     reward,
		Streak:     streak,
		NewBalance: newBalance,
	}, nil
}

// dailyReward computes base plus the capped streak bonus
func dailyReward(streak int) int64 {
	bonus := int64(streak) * StreakBonusPerDay
	if bonus > MaxStreakBonus {
		bonus = MaxStreakBonus
	}
	return BaseDailyReward + bonus
}

package service

import (
	"context"
	"fmt"

	"diamondbot/models"
)

type balanceService struct {
	uowFactory UnitOfWorkFactory
}

// NewBalanceService creates a new balance service
func NewBalanceService(uowFactory UnitOfWorkFactory) BalanceService {
	return &balanceService{
		uowFactory: uowFactory,
	}
}

// Credit increases an account's balance and lifetime earnings by amount
func (s *balanceService) Credit(ctx context.Context, key models.AccountKey, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	newBalance, err := creditAccount(ctx, uow, key, amount, models.TransactionTypeAdjustUp, nil)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

// Debit decreases an account's balance by amount if funds are sufficient
func (s *balanceService) Debit(ctx context.Context, key models.AccountKey, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	newBalance, err := debitAccount(ctx, uow, key, amount, models.TransactionTypeAdjustDown, nil)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

// Transfer moves amount from one account to another as a single unit. If
// the debit fails no credit occurs and neither balance changes. Policy
// checks such as self-transfer or bot recipients belong to the caller.
func (s *balanceService) Transfer(ctx context.Context, from, to models.AccountKey, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	newFromBalance, err := debitAccount(ctx, uow, from, amount, models.TransactionTypeTransferOut, map[string]any{
		"recipient_user_id": to.UserID,
		"transfer_amount":   amount,
	})
	if err != nil {
		return nil, err
	}

	newToBalance, err := creditAccount(ctx, uow, to, amount, models.TransactionTypeTransferIn, map[string]any{
		"sender_user_id":  from.UserID,
		"transfer_amount": amount,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.TransferResult{
		Amount:         amount,
		NewFromBalance: newFromBalance,
		NewToBalance:   newToBalance,
	}, nil
}

// GetBalances returns the combined view of a user's Diamond and gift card
// holdings. Missing accounts read as zero.
func (s *balanceService) GetBalances(ctx context.Context, key models.AccountKey) (*models.Balances, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // Read-only, rollback is the normal exit

	account, err := uow.AccountRepository().Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	giftCard, err := uow.GiftCardRepository().Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get gift card account: %w", err)
	}

	return &models.Balances{
		Primary:     account.Balance,
		GiftCard:    giftCard.Balance,
		TotalEarned: account.TotalEarned,
		DailyStreak: account.DailyStreak,
		Multiplier:  account.Multiplier,
		LastDaily:   account.LastDaily,
	}, nil
}

// GetTopBalances returns the richest accounts in a guild
func (s *balanceService) GetTopBalances(ctx context.Context, guildID int64, limit int) ([]*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().GetTopBalances(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances: %w", err)
	}

	return accounts, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"diamondbot/events"
	"diamondbot/models"
)

// creditAccount is the single entry point for Diamond credits. It applies
// the credit, records a balance history entry and stages a balance change
// event on the unit of work's bus. Returns the balance after the credit.
func creditAccount(ctx context.Context, uow UnitOfWork, key models.AccountKey, amount int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	before, err := uow.AccountRepository().Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	if err := uow.AccountRepository().AddBalance(ctx, key, amount); err != nil {
		return 0, fmt.Errorf("failed to add balance: %w", err)
	}

	newBalance := before.Balance + amount
	if err := recordBalanceChange(ctx, uow, key, before.Balance, newBalance, amount, txType, metadata); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// debitAccount is the single entry point for Diamond debits. The
// sufficiency check and decrement happen in one atomic statement at the
// repository; a failed check surfaces as ErrInsufficientFunds with no
// mutation. Returns the balance after the debit.
func debitAccount(ctx context.Context, uow UnitOfWork, key models.AccountKey, amount int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	before, err := uow.AccountRepository().Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	if err := uow.AccountRepository().DeductBalance(ctx, key, amount); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return 0, ErrInsufficientFunds
		}
		return 0, fmt.Errorf("failed to deduct balance: %w", err)
	}

	newBalance := before.Balance - amount
	if err := recordBalanceChange(ctx, uow, key, before.Balance, newBalance, -amount, txType, metadata); err != nil {
		return 0, err
	}

	return newBalance, nil
}

func recordBalanceChange(ctx context.Context, uow UnitOfWork, key models.AccountKey, balanceBefore, balanceAfter, change int64, txType models.TransactionType, metadata map[string]any) error {
	history := &models.BalanceHistory{
		UserID:              key.UserID,
		GuildID:             key.GuildID,
		BalanceBefore:       balanceBefore,
		BalanceAfter:        balanceAfter,
		ChangeAmount:        change,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}

	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	// Flushed to the main bus only after the transaction commits
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          key.UserID,
		GuildID:         key.GuildID,
		OldBalance:      balanceBefore,
		NewBalance:      balanceAfter,
		TransactionType: txType,
		ChangeAmount:    change,
	})

	return nil
}

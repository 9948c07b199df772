package repository

import (
	"context"
	"fmt"

	"diamondbot/database"
	"diamondbot/models"
	"diamondbot/service"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GiftCardRepository implements the service.GiftCardRepository interface
type GiftCardRepository struct {
	q queryable
}

// NewGiftCardRepository creates a new gift card repository
func NewGiftCardRepository(db *database.DB) *GiftCardRepository {
	return &GiftCardRepository{q: db.Pool}
}

// newGiftCardRepositoryWithTx creates a new gift card repository bound to a transaction
func newGiftCardRepositoryWithTx(tx queryable) *GiftCardRepository {
	return &GiftCardRepository{q: tx}
}

// Get retrieves a gift card account, returning a zero-valued account for
// keys that have never been written.
func (r *GiftCardRepository) Get(ctx context.Context, key models.AccountKey) (*models.GiftCardAccount, error) {
	query := `
		SELECT user_id, guild_id, balance, created_at, updated_at
		FROM giftcard_accounts
		WHERE user_id = $1 AND guild_id = $2
	`

	var account models.GiftCardAccount
	err := r.q.QueryRow(ctx, query, key.UserID, key.GuildID).Scan(
		&account.UserID,
		&account.GuildID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return &models.GiftCardAccount{UserID: key.UserID, GuildID: key.GuildID, Balance: decimal.Zero}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gift card account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return &account, nil
}

// AddBalance credits a gift card account, creating it on first use
func (r *GiftCardRepository) AddBalance(ctx context.Context, key models.AccountKey, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		INSERT INTO giftcard_accounts (user_id, guild_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, guild_id) DO UPDATE
		SET balance = giftcard_accounts.balance + EXCLUDED.balance,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, key.UserID, key.GuildID, amount); err != nil {
		return fmt.Errorf("failed to add gift card balance for account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return nil
}

// DeductBalance debits a gift card account. As with Diamond debits, the
// sufficiency check and the decrement are one atomic statement.
func (r *GiftCardRepository) DeductBalance(ctx context.Context, key models.AccountKey, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE giftcard_accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE user_id = $2 AND guild_id = $3 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, key.UserID, key.GuildID)
	if err != nil {
		return fmt.Errorf("failed to deduct gift card balance for account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrInsufficientFunds
	}

	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"diamondbot/database"
	"diamondbot/models"
	"diamondbot/service"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository bound to a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `user_id, guild_id, balance, total_earned, last_daily, daily_streak, multiplier, created_at, updated_at`

func scanAccount(row pgx.Row, account *models.Account) error {
	return row.Scan(
		&account.UserID,
		&account.GuildID,
		&account.Balance,
		&account.TotalEarned,
		&account.LastDaily,
		&account.DailyStreak,
		&account.Multiplier,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}

// Get retrieves an account. A missing account is not an error: it is
// returned as a zero-valued account for the requested key.
func (r *AccountRepository) Get(ctx context.Context, key models.AccountKey) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM diamond_accounts WHERE user_id = $1 AND guild_id = $2`

	var account models.Account
	err := scanAccount(r.q.QueryRow(ctx, query, key.UserID, key.GuildID), &account)
	if err == pgx.ErrNoRows {
		return zeroAccount(key), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return &account, nil
}

// GetForUpdate retrieves an account and locks its row for the remainder of
// the surrounding transaction. The caller must have ensured the row exists.
func (r *AccountRepository) GetForUpdate(ctx context.Context, key models.AccountKey) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM diamond_accounts WHERE user_id = $1 AND guild_id = $2 FOR UPDATE`

	var account models.Account
	err := scanAccount(r.q.QueryRow(ctx, query, key.UserID, key.GuildID), &account)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return &account, nil
}

// Ensure materializes an account with default zero values if it does not
// exist yet. Existing rows are left untouched.
func (r *AccountRepository) Ensure(ctx context.Context, key models.AccountKey) error {
	query := `
		INSERT INTO diamond_accounts (user_id, guild_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, guild_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, key.UserID, key.GuildID); err != nil {
		return fmt.Errorf("failed to ensure account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return nil
}

// AddBalance credits an account, creating it on first use. The balance and
// the lifetime total_earned counter move together by exactly the credited
// amount.
func (r *AccountRepository) AddBalance(ctx context.Context, key models.AccountKey, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		INSERT INTO diamond_accounts (user_id, guild_id, balance, total_earned)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id, guild_id) DO UPDATE
		SET balance = diamond_accounts.balance + EXCLUDED.balance,
		    total_earned = diamond_accounts.total_earned + EXCLUDED.balance,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, key.UserID, key.GuildID, amount); err != nil {
		return fmt.Errorf("failed to add balance for account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return nil
}

// DeductBalance debits an account. The sufficiency check and the decrement
// are one statement, so two concurrent debits can never jointly overdraw
// the account. Returns service.ErrInsufficientFunds when the check fails; a
// missing account has balance zero and fails the same way.
func (r *AccountRepository) DeductBalance(ctx context.Context, key models.AccountKey, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE diamond_accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE user_id = $2 AND guild_id = $3 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, key.UserID, key.GuildID)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrInsufficientFunds
	}

	return nil
}

// SetDailyClaim stamps a successful daily claim, creating the account row
// if this is the very first operation on it.
func (r *AccountRepository) SetDailyClaim(ctx context.Context, key models.AccountKey, claimedAt time.Time, streak int) error {
	query := `
		INSERT INTO diamond_accounts (user_id, guild_id, last_daily, daily_streak)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, guild_id) DO UPDATE
		SET last_daily = EXCLUDED.last_daily,
		    daily_streak = EXCLUDED.daily_streak,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, key.UserID, key.GuildID, claimedAt, streak); err != nil {
		return fmt.Errorf("failed to record daily claim for account %d/%d: %w", key.UserID, key.GuildID, err)
	}

	return nil
}

// GetTopBalances returns up to limit accounts in a guild ordered by balance
func (r *AccountRepository) GetTopBalances(ctx context.Context, guildID int64, limit int) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM diamond_accounts
		WHERE guild_id = $1 AND balance > 0
		ORDER BY balance DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var account models.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

func zeroAccount(key models.AccountKey) *models.Account {
	return &models.Account{
		UserID:     key.UserID,
		GuildID:    key.GuildID,
		Multiplier: decimal.NewFromInt(1),
	}
}

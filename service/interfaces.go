package service

import (
	"context"
	"time"

	"diamondbot/events"
	"diamondbot/models"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for Diamond account data access
type AccountRepository interface {
	// Get retrieves an account, returning a zero-valued account if absent
	Get(ctx context.Context, key models.AccountKey) (*models.Account, error)

	// GetForUpdate retrieves an account and locks its row for the transaction
	GetForUpdate(ctx context.Context, key models.AccountKey) (*models.Account, error)

	// Ensure materializes an account with default values if it does not exist
	Ensure(ctx context.Context, key models.AccountKey) error

	// AddBalance credits an account atomically, creating it on first use
	AddBalance(ctx context.Context, key models.AccountKey, amount int64) error

	// DeductBalance debits an account atomically, failing on insufficient funds
	DeductBalance(ctx context.Context, key models.AccountKey, amount int64) error

	// SetDailyClaim stamps a successful daily claim
	SetDailyClaim(ctx context.Context, key models.AccountKey, claimedAt time.Time, streak int) error

	// GetTopBalances returns the richest accounts in a guild
	GetTopBalances(ctx context.Context, guildID int64, limit int) ([]*models.Account, error)
}

// GiftCardRepository defines the interface for gift card balance data access
type GiftCardRepository interface {
	// Get retrieves a gift card account, returning a zero-valued account if absent
	Get(ctx context.Context, key models.AccountKey) (*models.GiftCardAccount, error)

	// AddBalance credits a gift card account atomically, creating it on first use
	AddBalance(ctx context.Context, key models.AccountKey, amount decimal.Decimal) error

	// DeductBalance debits a gift card account atomically, failing on insufficient funds
	DeductBalance(ctx context.Context, key models.AccountKey, amount decimal.Decimal) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByAccount returns balance history for a specific account
	GetByAccount(ctx context.Context, key models.AccountKey, limit int) ([]*models.BalanceHistory, error)
}

// BalanceService defines the atomic Diamond balance operations. All balance
// writes in the system go through these primitives or their in-package
// helpers; no other component touches balances directly.
type BalanceService interface {
	// Credit increases balance and total_earned by amount
	Credit(ctx context.Context, key models.AccountKey, amount int64) (int64, error)

	// Debit decreases balance by amount if sufficient funds are available
	Debit(ctx context.Context, key models.AccountKey, amount int64) (int64, error)

	// Transfer moves amount between two accounts as one unit
	Transfer(ctx context.Context, from, to models.AccountKey, amount int64) (*models.TransferResult, error)

	// GetBalances returns the combined read-only view of a user's holdings
	GetBalances(ctx context.Context, key models.AccountKey) (*models.Balances, error)

	// GetTopBalances returns the richest accounts in a guild
	GetTopBalances(ctx context.Context, guildID int64, limit int) ([]*models.Account, error)
}

// DailyService defines the daily reward engine
type DailyService interface {
	// Claim attempts to claim the daily reward for an account
	Claim(ctx context.Context, key models.AccountKey) (*models.DailyClaimResult, error)
}

// GameService defines the wager mini games
type GameService interface {
	// PlayFlat plays a no-stake game (coinflip, dice) for a flat reward
	PlayFlat(ctx context.Context, key models.AccountKey, game string, guess int) (*models.GameResult, error)

	// PlayStake plays the double-or-nothing ToS coin with the given stake
	PlayStake(ctx context.Context, key models.AccountKey, guess int, bet int64) (*models.GameResult, error)
}

// ConversionService defines Diamond/gift card conversion and the read-only
// currency simulation
type ConversionService interface {
	// ToGiftCard converts Diamonds into gift card balance with floor rounding
	ToGiftCard(ctx context.Context, key models.AccountKey, amount int64) (*models.ConversionResult, error)

	// FromGiftCard converts gift card balance back into Diamonds
	FromGiftCard(ctx context.Context, key models.AccountKey, amount decimal.Decimal) (*models.ConversionResult, error)

	// Simulate displays the account's value in a reference currency. Never mutates.
	Simulate(ctx context.Context, key models.AccountKey, currency string) (*models.CurrencySimulation, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	GiftCardRepository() GiftCardRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

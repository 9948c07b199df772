package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one user's Diamond balance within one guild.
// Accounts are created lazily on the first mutating operation and
// are never deleted.
type Account struct {
	UserID      int64           `db:"user_id"`
	GuildID     int64           `db:"guild_id"`
	Balance     int64           `db:"balance"`
	TotalEarned int64           `db:"total_earned"`
	LastDaily   *time.Time      `db:"last_daily"`
	DailyStreak int             `db:"daily_streak"`
	Multiplier  decimal.Decimal `db:"multiplier"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// GiftCardAccount represents one user's gift card balance within one guild.
// The balance is denominated in rupees, independently of Diamonds.
type GiftCardAccount struct {
	UserID    int64           `db:"user_id"`
	GuildID   int64           `db:"guild_id"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// AccountKey identifies the (user, guild) pair all balances are partitioned by.
type AccountKey struct {
	UserID  int64
	GuildID int64
}

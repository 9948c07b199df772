package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeDailyReward TransactionType = "daily_reward"
	TransactionTypeGameWin     TransactionType = "game_win"
	TransactionTypeStakePlaced TransactionType = "stake_placed"
	TransactionTypeStakeWin    TransactionType = "stake_win"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeConvertOut  TransactionType = "convert_to_giftcard"
	TransactionTypeConvertIn   TransactionType = "convert_from_giftcard"
	TransactionTypeAdjustUp    TransactionType = "adjust_up"
	TransactionTypeAdjustDown  TransactionType = "adjust_down"
)

// BalanceHistory represents a historical Diamond balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	UserID              int64           `db:"user_id"`
	GuildID             int64           `db:"guild_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}

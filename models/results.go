package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyClaimResult represents a successful daily reward claim (returned to the user)
type DailyClaimResult struct {
	Reward     int64
	Streak     int
	NewBalance int64
}

// GameResult represents the outcome of a mini game (returned to the user)
type GameResult struct {
	Game       string
	Guess      int
	Outcome    int
	Won        bool
	NetChange  int64
	NewBalance int64
}

// TransferResult represents the outcome of a Diamond transfer (returned to the user)
type TransferResult struct {
	Amount         int64
	NewFromBalance int64
	NewToBalance   int64
}

// ConversionResult represents the outcome of a Diamond/gift card conversion
type ConversionResult struct {
	DiamondsDebited   int64
	DiamondsCredited  int64
	GiftCardDebited   decimal.Decimal
	GiftCardCredited  decimal.Decimal
	RemainingPrimary  int64
	RemainingGiftCard decimal.Decimal
}

// Balances is the combined read-only view of a user's holdings
type Balances struct {
	Primary     int64
	GiftCard    decimal.Decimal
	TotalEarned int64
	DailyStreak int
	Multiplier  decimal.Decimal
	LastDaily   *time.Time
}

// CurrencySimulation is the read-only reference-rate display. It never
// touches any stored balance.
type CurrencySimulation struct {
	Currency       string
	Rate           decimal.Decimal
	DiamondBalance int64
	RupeeValue     int64
	ConvertedValue decimal.Decimal
}

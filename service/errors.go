package service

import (
	"errors"
	"fmt"
	"time"
)

// User-facing outcomes. These are expected results of normal play, returned
// to the command layer for presentation, never treated as process failures.
var (
	// ErrInvalidAmount is returned when an amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrBelowMinimum is returned when a stake or conversion amount is under its floor
	ErrBelowMinimum = errors.New("amount below minimum")

	// ErrInsufficientFunds is returned when a debit precondition fails
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidGuess is returned when a guess is outside the game's outcome set
	ErrInvalidGuess = errors.New("guess outside valid range")

	// ErrUnsupportedCurrency is returned by the currency simulation for unknown codes
	ErrUnsupportedCurrency = errors.New("currency not supported")
)

// CooldownError is returned when a daily reward is claimed before the
// 24-hour window has elapsed. It carries the remaining wait time.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("daily reward on cooldown for another %s", e.Remaining.Round(time.Minute))
}

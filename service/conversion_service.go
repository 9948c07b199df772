package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"diamondbot/events"
	"diamondbot/models"

	"github.com/shopspring/decimal"
)

// Conversion constants
const (
	// DiamondsPerRupee is the fixed exchange rate between the two currencies
	DiamondsPerRupee = 100

	// MinConversion is the smallest Diamond amount accepted by ToGiftCard
	MinConversion = 100
)

// Reference rates for the read-only currency simulation, INR per unit
var simulationRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromFloat(0.012),
	"EUR": decimal.NewFromFloat(0.011),
	"GBP": decimal.NewFromFloat(0.0095),
	"CAD": decimal.NewFromFloat(0.016),
	"AUD": decimal.NewFromFloat(0.018),
	"JPY": decimal.NewFromFloat(1.8),
}

type conversionService struct {
	uowFactory UnitOfWorkFactory
}

// NewConversionService creates a new conversion service
func NewConversionService(uowFactory UnitOfWorkFactory) ConversionService {
	return &conversionService{
		uowFactory: uowFactory,
	}
}

// ToGiftCard converts Diamonds into gift card balance. The credited value
// is floor(amount/100) rupees; any remainder is consumed by the conversion
// and is not returned to the Diamond balance.
func (s *conversionService) ToGiftCard(ctx context.Context, key models.AccountKey, amount int64) (*models.ConversionResult, error) {
	if amount < MinConversion {
		return nil, ErrBelowMinimum
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	newBalance, err := debitAccount(ctx, uow, key, amount, models.TransactionTypeConvertOut, map[string]any{
		"diamonds":  amount,
		"remainder": amount % DiamondsPerRupee,
	})
	if err != nil {
		return nil, err
	}

	credited := decimal.NewFromInt(amount / DiamondsPerRupee)
	if err := uow.GiftCardRepository().AddBalance(ctx, key, credited); err != nil {
		return nil, fmt.Errorf("failed to add gift card balance: %w", err)
	}

	giftCard, err := uow.GiftCardRepository().Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get gift card account: %w", err)
	}

	uow.EventBus().Publish(events.ConversionEvent{
		UserID:          key.UserID,
		GuildID:         key.GuildID,
		DiamondsDebited: amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ConversionResult{
		DiamondsDebited:   amount,
		GiftCardCredited:  credited,
		RemainingPrimary:  newBalance,
		RemainingGiftCard: giftCard.Balance,
	}, nil
}

// FromGiftCard converts gift card balance back into Diamonds at
// floor(amount*100). The pair of conversions is deliberately lossy:
// converting 250 Diamonds out and ₹2 back yields 200 Diamonds.
func (s *conversionService) FromGiftCard(ctx context.Context, key models.AccountKey, amount decimal.Decimal) (*models.ConversionResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GiftCardRepository().DeductBalance(ctx, key, amount); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("failed to deduct gift card balance: %w", err)
	}

	diamonds := amount.Mul(decimal.NewFromInt(DiamondsPerRupee)).IntPart()

	var newBalance int64
	if diamonds > 0 {
		var err error
		newBalance, err = creditAccount(ctx, uow, key, diamonds, models.TransactionTypeConvertIn, map[string]any{
			"giftcard_amount": amount.String(),
			"diamonds":        diamonds,
		})
		if err != nil {
			return nil, err
		}
	} else {
		account, err := uow.AccountRepository().Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get account: %w", err)
		}
		newBalance = account.Balance
	}

	giftCard, err := uow.GiftCardRepository().Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get gift card account: %w", err)
	}

	uow.EventBus().Publish(events.ConversionEvent{
		UserID:           key.UserID,
		GuildID:          key.GuildID,
		DiamondsCredited: diamonds,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ConversionResult{
		GiftCardDebited:   amount,
		DiamondsCredited:  diamonds,
		RemainingPrimary:  newBalance,
		RemainingGiftCard: giftCard.Balance,
	}, nil
}

// Simulate displays the Diamond balance's value in a reference currency.
// The rates are approximate and nothing is written.
func (s *conversionService) Simulate(ctx context.Context, key models.AccountKey, currency string) (*models.CurrencySimulation, error) {
	currency = strings.ToUpper(currency)
	rate, ok := simulationRates[currency]
	if !ok {
		return nil, ErrUnsupportedCurrency
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // Read-only, rollback is the normal exit

	account, err := uow.AccountRepository().Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	rupeeValue := account.Balance / DiamondsPerRupee

	return &models.CurrencySimulation{
		Currency:       currency,
		Rate:           rate,
		DiamondBalance: account.Balance,
		RupeeValue:     rupeeValue,
		ConvertedValue: rate.Mul(decimal.NewFromInt(rupeeValue)),
	}, nil
}

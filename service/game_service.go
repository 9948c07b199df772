package service

import (
	"context"
	"fmt"
	"math/rand"

	"diamondbot/events"
	"diamondbot/models"
)

// Mini game constants
const (
	GameCoinflip = "coinflip"
	GameDice     = "dice"
	GameTosCoin  = "tos_coin"

	// Flat-reward games pay this on a correct guess; nothing is at risk.
	FlatGameReward = 100

	// The ToS coin is double-or-nothing with this stake floor.
	MinStakeBet = 100
)

// Coinflip outcome encoding
const (
	CoinHeads = 0
	CoinTails = 1
)

type gameService struct {
	uowFactory UnitOfWorkFactory
	roll       func(n int) int // uniform draw from [0, n)
}

// NewGameService creates a new mini game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
		roll:       rand.Intn,
	}
}

// PlayFlat plays a no-stake game. A correct guess pays FlatGameReward;
// a wrong guess costs nothing.
func (s *gameService) PlayFlat(ctx context.Context, key models.AccountKey, game string, guess int) (*models.GameResult, error) {
	var outcome int
	switch game {
	case GameCoinflip:
		if guess != CoinHeads && guess != CoinTails {
			return nil, ErrInvalidGuess
		}
		outcome = s.roll(2)
	case GameDice:
		if guess < 1 || guess > 6 {
			return nil, ErrInvalidGuess
		}
		outcome = s.roll(6) + 1
	default:
		return nil, fmt.Errorf("unknown flat game %q", game)
	}

	won := guess == outcome

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	var newBalance int64
	var netChange int64

	if won {
		var err error
		newBalance, err = creditAccount(ctx, uow, key, FlatGameReward, models.TransactionTypeGameWin, map[string]any{
			"game":    game,
			"guess":   guess,
			"outcome": outcome,
		})
		if err != nil {
			return nil, err
		}
		netChange = FlatGameReward
	} else {
		account, err := uow.AccountRepository().Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get account: %w", err)
		}
		newBalance = account.Balance
	}

	uow.EventBus().Publish(events.GamePlayedEvent{
		UserID:  key.UserID,
		GuildID: key.GuildID,
		Game:    game,
		Won:     won,
		Payout:  netChange,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.GameResult{
		Game:       game,
		Guess:      guess,
		Outcome:    outcome,
		Won:        won,
		NetChange:  netChange,
		NewBalance: newBalance,
	}, nil
}

// PlayStake plays the double-or-nothing ToS coin. The stake is debited
// atomically before the coin is flipped; a win returns the stake plus equal
// winnings, a loss forfeits it.
func (s *gameService) PlayStake(ctx context.Context, key models.AccountKey, guess int, bet int64) (*models.GameResult, error) {
	if guess != CoinHeads && guess != CoinTails {
		return nil, ErrInvalidGuess
	}
	if bet < MinStakeBet {
		return nil, ErrBelowMinimum
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Collect the stake before drawing. The conditional update rejects
	// concurrent wagers that would jointly overdraw the account.
	newBalance, err := debitAccount(ctx, uow, key, bet, models.TransactionTypeStakePlaced, map[string]any{
		"game": GameTosCoin,
		"bet":  bet,
	})
	if err != nil {
		return nil, err
	}

	outcome := s.roll(2)
	won := guess == outcome

	var netChange int64 = -bet
	if won {
		newBalance, err = creditAccount(ctx, uow, key, bet*2, models.TransactionTypeStakeWin, map[string]any{
			"game":    GameTosCoin,
			"bet":     bet,
			"outcome": outcome,
		})
		if err != nil {
			return nil, err
		}
		netChange = bet
	}

	uow.EventBus().Publish(events.GamePlayedEvent{
		UserID:  key.UserID,
		GuildID: key.GuildID,
		Game:    GameTosCoin,
		Won:     won,
		Payout:  netChange,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.GameResult{
		Game:       GameTosCoin,
		Guess:      guess,
		Outcome:    outcome,
		Won:        won,
		NetChange:  netChange,
		NewBalance: newBalance,
	}, nil
}

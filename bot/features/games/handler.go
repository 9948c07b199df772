package games

import (
	"context"
	"errors"
	"fmt"

	"diamondbot/bot/common"
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func coinName(side int) string {
	if side == service.CoinHeads {
		return "heads"
	}
	return "tails"
}

func (f *Feature) handleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var guess int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "guess" {
			guess = opt.IntValue()
		}
	}

	result, err := f.gameService.PlayFlat(ctx, key, service.GameCoinflip, int(guess))
	if err != nil {
		if errors.Is(err, service.ErrInvalidGuess) {
			common.RespondWithError(s, i, "Pick heads or tails.")
			return
		}
		log.Errorf("Error playing coinflip for %d/%d: %v", key.UserID, key.GuildID, err)
		common.RespondWithError(s, i, "Unable to flip the coin. Please try again.")
		return
	}

	var message string
	if result.Won {
		message = fmt.Sprintf("🪙 The coin landed on **%s**. You won **%s 💎**! New balance: **%s 💎**",
			coinName(result.Outcome), common.FormatDiamonds(result.NetChange), common.FormatDiamonds(result.NewBalance))
	} else {
		message = fmt.Sprintf("🪙 The coin landed on **%s**. Better luck next time!",
			coinName(result.Outcome))
	}

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to coinflip command: %v", err)
	}
}

func (f *Feature) handleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var guess int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "guess" {
			guess = opt.IntValue()
		}
	}

	result, err := f.gameService.PlayFlat(ctx, key, service.GameDice, int(guess))
	if err != nil {
		if errors.Is(err, service.ErrInvalidGuess) {
			common.RespondWithError(s, i, "Guess a number between 1 and 6.")
			return
		}
		log.Errorf("Error playing dice for %d/%d: %v", key.UserID, key.GuildID, err)
		common.RespondWithError(s, i, "Unable to roll the dice. Please try again.")
		return
	}

	var message string
	if result.Won {
		message = fmt.Sprintf("🎲 The die shows **%d**. You won **%s 💎**! New balance: **%s 💎**",
			result.Outcome, common.FormatDiamonds(result.NetChange), common.FormatDiamonds(result.NewBalance))
	} else {
		message = fmt.Sprintf("🎲 The die shows **%d**, you guessed **%d**. Better luck next time!",
			result.Outcome, result.Guess)
	}

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to dice command: %v", err)
	}
}

func (f *Feature) handleTosCoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var guess, bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "guess":
			guess = opt.IntValue()
		case "bet":
			bet = opt.IntValue()
		}
	}

	result, err := f.gameService.PlayStake(ctx, key, int(guess), bet)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGuess):
			common.RespondWithError(s, i, "Pick heads or tails.")
		case errors.Is(err, service.ErrBelowMinimum):
			common.RespondWithError(s, i, fmt.Sprintf("The minimum bet is %s 💎.",
				common.FormatDiamonds(service.MinStakeBet)))
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "You don't have enough Diamonds for that bet.")
		default:
			log.Errorf("Error playing tos_coin for %d/%d: %v", key.UserID, key.GuildID, err)
			common.RespondWithError(s, i, "Unable to place the bet. Please try again.")
		}
		return
	}

	winAmount := result.NetChange
	message := fmt.Sprintf("🪙 The coin landed on **%s**. %s",
		coinName(result.Outcome),
		common.FormatGameResult(result.Won, bet, winAmount, result.NewBalance))

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to tos_coin command: %v", err)
	}
}

package convert

import (
	"context"
	"errors"
	"fmt"

	"diamondbot/bot/common"
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleConvertPoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	result, err := f.conversionService.ToGiftCard(ctx, key, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBelowMinimum):
			common.RespondWithError(s, i, fmt.Sprintf("You need at least %s 💎 to convert.",
				common.FormatDiamonds(service.MinConversion)))
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "You don't have that many Diamonds.")
		default:
			log.Errorf("Error converting Diamonds for %d/%d: %v", key.UserID, key.GuildID, err)
			common.RespondWithError(s, i, "Unable to convert. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("💱 Converted **%s 💎** into **₹%s** gift card credit.\nDiamonds: **%s 💎** · Gift card: **₹%s**",
		common.FormatDiamonds(result.DiamondsDebited),
		result.GiftCardCredited.StringFixed(2),
		common.FormatDiamonds(result.RemainingPrimary),
		result.RemainingGiftCard.StringFixed(2))

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to convert_points command: %v", err)
	}
}

func (f *Feature) handleConvertGiftCard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var amount decimal.Decimal
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amount = decimal.NewFromFloat(opt.FloatValue())
		}
	}

	result, err := f.conversionService.FromGiftCard(ctx, key, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			common.RespondWithError(s, i, "Amount must be positive.")
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "You don't have that much gift card credit.")
		default:
			log.Errorf("Error converting gift card credit for %d/%d: %v", key.UserID, key.GuildID, err)
			common.RespondWithError(s, i, "Unable to convert. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("💱 Converted **₹%s** gift card credit into **%s 💎**.\nDiamonds: **%s 💎** · Gift card: **₹%s**",
		result.GiftCardDebited.StringFixed(2),
		common.FormatDiamonds(result.DiamondsCredited),
		common.FormatDiamonds(result.RemainingPrimary),
		result.RemainingGiftCard.StringFixed(2))

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to convert_giftcard command: %v", err)
	}
}

func (f *Feature) handleConvertCurrency(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var currency string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "currency" {
			currency = opt.StringValue()
		}
	}

	sim, err := f.conversionService.Simulate(ctx, key, currency)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedCurrency) {
			common.RespondWithError(s, i, "That currency is not supported.")
			return
		}
		log.Errorf("Error simulating currency for %d/%d: %v", key.UserID, key.GuildID, err)
		common.RespondWithError(s, i, "Unable to look that up. Please try again.")
		return
	}

	message := fmt.Sprintf("💹 Your **%s 💎** is worth about **₹%d**, roughly **%s %s**. (display only, nothing was converted)",
		common.FormatDiamonds(sim.DiamondBalance),
		sim.RupeeValue,
		sim.ConvertedValue.StringFixed(2),
		sim.Currency)

	if err := common.RespondEphemeral(s, i, message); err != nil {
		log.Errorf("Error responding to convert_currency command: %v", err)
	}
}

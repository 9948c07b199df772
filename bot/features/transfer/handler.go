package transfer

import (
	"context"
	"errors"
	"fmt"

	"diamondbot/bot/common"
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleTransferPoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var amount int64
	var recipientUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipientUser = opt.UserValue(s)
		}
	}

	if amount <= 0 {
		common.RespondWithError(s, i, "Amount must be positive.")
		return
	}

	if recipientUser == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}

	from, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	toUserID, err := common.ParseSnowflake(recipientUser.ID)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipientUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	to := from
	to.UserID = toUserID

	// Policy checks live here, not in the service
	if from.UserID == to.UserID {
		common.RespondWithError(s, i, "You cannot transfer Diamonds to yourself.")
		return
	}
	if recipientUser.Bot {
		common.RespondWithError(s, i, "You cannot transfer Diamonds to a bot.")
		return
	}

	result, err := f.balanceService.Transfer(ctx, from, to, amount)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientFunds) {
			common.RespondWithError(s, i, "Insufficient balance for this transfer.")
			return
		}
		log.Errorf("Error transferring %d Diamonds from %d to %d: %v", amount, from.UserID, to.UserID, err)
		common.RespondWithError(s, i, "Unable to process transfer. Please try again.")
		return
	}

	senderName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	recipientName := common.GetDisplayName(s, i.GuildID, recipientUser.ID)

	message := fmt.Sprintf("✅ **%s** transferred **%s 💎** to **%s**. Your balance: **%s 💎**",
		senderName,
		common.FormatDiamonds(result.Amount),
		recipientName,
		common.FormatDiamonds(result.NewFromBalance))

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to transfer_points command: %v", err)
	}
}

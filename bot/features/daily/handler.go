package daily

import (
	"context"
	"errors"
	"fmt"

	"diamondbot/bot/common"
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleClaimDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.dailyService.Claim(ctx, key)
	if err != nil {
		var cooldownErr *service.CooldownError
		if errors.As(err, &cooldownErr) {
			common.RespondWithError(s, i, fmt.Sprintf(
				"You already claimed your daily reward. Come back in **%s**.",
				common.FormatCooldown(cooldownErr.Remaining)))
			return
		}

		log.Errorf("Error claiming daily reward for %d/%d: %v", key.UserID, key.GuildID, err)
		common.RespondWithError(s, i, "Unable to claim your daily reward. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)

	message := fmt.Sprintf("🎁 %s claimed **%s 💎** (streak: **%d**). New balance: **%s 💎**",
		displayName,
		common.FormatDiamonds(result.Reward),
		result.Streak,
		common.FormatDiamonds(result.NewBalance))

	if err := common.Respond(s, i, message); err != nil {
		log.Errorf("Error responding to claim_daily command: %v", err)
	}
}

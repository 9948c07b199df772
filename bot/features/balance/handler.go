package balance

import (
	"context"
	"fmt"
	"strings"

	"diamondbot/bot/common"
	"diamondbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const leaderboardSize = 10

func (f *Feature) handleGetPoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// An optional user option reads someone else's balances
	targetID := i.Member.User.ID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target := opt.UserValue(s)
			if target == nil {
				common.RespondWithError(s, i, "Invalid user.")
				return
			}
			targetID = target.ID
			userID, err := common.ParseSnowflake(target.ID)
			if err != nil {
				log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
				common.RespondWithError(s, i, "Unable to process request. Please try again.")
				return
			}
			key.UserID = userID
		}
	}

	balances, err := f.balanceService.GetBalances(ctx, key)
	if err != nil {
		log.Errorf("Error getting balances for %d/%d: %v", key.UserID, key.GuildID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetID)

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", displayName)
	fmt.Fprintf(&b, "💎 Diamonds: **%s**\n", common.FormatDiamonds(balances.Primary))
	fmt.Fprintf(&b, "🎁 Gift card: **₹%s**\n", balances.GiftCard.StringFixed(2))
	fmt.Fprintf(&b, "📈 Lifetime earned: **%s**\n", common.FormatDiamonds(balances.TotalEarned))
	fmt.Fprintf(&b, "🔥 Daily streak: **%d** (multiplier %s)", balances.DailyStreak, balances.Multiplier.String())
	if balances.LastDaily != nil {
		fmt.Fprintf(&b, "\nLast daily: %s", common.FormatDiscordTimestamp(*balances.LastDaily, "R"))
	}

	if err := common.Respond(s, i, b.String()); err != nil {
		log.Errorf("Error responding to get_points command: %v", err)
	}
}

func (f *Feature) handleGetMultipliers(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	key, err := common.InteractionAccountKey(i)
	if err != nil {
		log.Errorf("Error resolving account key: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	balances, err := f.balanceService.GetBalances(ctx, key)
	if err != nil {
		log.Errorf("Error getting balances for %d/%d: %v", key.UserID, key.GuildID, err)
		common.RespondWithError(s, i, "Unable to retrieve your multiplier. Please try again.")
		return
	}

	message := fmt.Sprintf("🔥 Daily streak: **%d** · Multiplier: **x%s**",
		balances.DailyStreak, balances.Multiplier.String())

	if err := common.RespondEphemeral(s, i, message); err != nil {
		log.Errorf("Error responding to get_multipliers command: %v", err)
	}
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		log.Errorf("Error parsing guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	accounts, err := f.balanceService.GetTopBalances(ctx, guildID, leaderboardSize)
	if err != nil {
		log.Errorf("Error getting top balances for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve the leaderboard. Please try again.")
		return
	}

	if len(accounts) == 0 {
		if err := common.RespondEphemeral(s, i, "Nobody here has any Diamonds yet."); err != nil {
			log.Errorf("Error responding to leaderboard command: %v", err)
		}
		return
	}

	embed := buildLeaderboardEmbed(s, i.GuildID, accounts)
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

func buildLeaderboardEmbed(s *discordgo.Session, guildID string, accounts []*models.Account) *discordgo.MessageEmbed {
	medals := []string{"🥇", "🥈", "🥉"}

	var b strings.Builder
	for rank, account := range accounts {
		marker := fmt.Sprintf("%d.", rank+1)
		if rank < len(medals) {
			marker = medals[rank]
		}
		name := common.GetDisplayNameInt64(s, guildID, account.UserID)
		fmt.Fprintf(&b, "%s **%s** · %s 💎\n", marker, name, common.FormatDiamonds(account.Balance))
	}

	return &discordgo.MessageEmbed{
		Title:       "💎 Diamond Leaderboard",
		Description: b.String(),
		Color:       0x5865F2,
	}
}

package common

import (
	"fmt"

	"diamondbot/models"

	"github.com/bwmarrin/discordgo"
)

// InteractionAccountKey derives the ledger key for the invoking member
func InteractionAccountKey(i *discordgo.InteractionCreate) (models.AccountKey, error) {
	if i.Member == nil || i.Member.User == nil {
		return models.AccountKey{}, fmt.Errorf("interaction has no guild member")
	}

	userID, err := ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return models.AccountKey{}, fmt.Errorf("invalid user id %q: %w", i.Member.User.ID, err)
	}

	guildID, err := ParseSnowflake(i.GuildID)
	if err != nil {
		return models.AccountKey{}, fmt.Errorf("invalid guild id %q: %w", i.GuildID, err)
	}

	return models.AccountKey{UserID: userID, GuildID: guildID}, nil
}

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	coinChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "heads", Value: 0},
		{Name: "tails", Value: 1},
	}

	currencyChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "US Dollar", Value: "USD"},
		{Name: "Euro", Value: "EUR"},
		{Name: "British Pound", Value: "GBP"},
		{Name: "Canadian Dollar", Value: "CAD"},
		{Name: "Australian Dollar", Value: "AUD"},
		{Name: "Japanese Yen", Value: "JPY"},
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "get_points",
			Description: "Check your Diamond and gift card balances",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players in this server",
		},
		{
			Name:        "get_multipliers",
			Description: "Show your daily streak and reward multiplier",
		},
		{
			Name:        "claim_daily",
			Description: "Claim your daily Diamond reward",
		},
		{
			Name:        "transfer_points",
			Description: "Transfer Diamonds to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of Diamonds to transfer",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to transfer to",
					Required:    true,
				},
			},
		},
		{
			Name:        "coinflip",
			Description: "Flip a coin, win 100 Diamonds on a correct call",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "guess",
					Description: "Your call",
					Required:    true,
					Choices:     coinChoices,
				},
			},
		},
		{
			Name:        "dice",
			Description: "Roll a die, win 100 Diamonds on a correct guess",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "guess",
					Description: "Your guess (1-6)",
					Required:    true,
					MinValue:    &[]float64{1}[0],
					MaxValue:    6,
				},
			},
		},
		{
			Name:        "tos_coin",
			Description: "Double-or-nothing coin toss with your Diamonds at stake",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "guess",
					Description: "Your call",
					Required:    true,
					Choices:     coinChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "Amount of Diamonds to stake (minimum 100)",
					Required:    true,
				},
			},
		},
		{
			Name:        "convert_points",
			Description: "Convert Diamonds into gift card credit (100 per rupee)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of Diamonds to convert (minimum 100)",
					Required:    true,
				},
			},
		},
		{
			Name:        "convert_giftcard",
			Description: "Convert gift card credit back into Diamonds",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "amount",
					Description: "Gift card amount in rupees",
					Required:    true,
				},
			},
		},
		{
			Name:        "convert_currency",
			Description: "See what your Diamonds are worth in another currency",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "currency",
					Description: "Currency to display",
					Required:    true,
					Choices:     currencyChoices,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

package bot

import (
	"context"
	"fmt"

	"diamondbot/bot/features/balance"
	"diamondbot/bot/features/convert"
	"diamondbot/bot/features/daily"
	"diamondbot/bot/features/games"
	"diamondbot/bot/features/transfer"
	"diamondbot/events"
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	eventBus *events.Bus

	balanceFeature  *balance.Feature
	dailyFeature    *daily.Feature
	gamesFeature    *games.Feature
	transferFeature *transfer.Feature
	convertFeature  *convert.Feature
}

func New(config Config, balanceService service.BalanceService, dailyService service.DailyService, gameService service.GameService, conversionService service.ConversionService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:   config,
		session:  dg,
		eventBus: eventBus,

		balanceFeature:  balance.New(balanceService),
		dailyFeature:    daily.New(dailyService),
		gamesFeature:    games.New(gameService),
		transferFeature: transfer.New(balanceService),
		convertFeature:  convert.New(conversionService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Audit log for every committed balance movement
	eventBus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if change, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"user_id":          change.UserID,
				"guild_id":         change.GuildID,
				"transaction_type": change.TransactionType,
				"change_amount":    change.ChangeAmount,
				"new_balance":      change.NewBalance,
			}).Info("Balance changed")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "get_points", "leaderboard", "get_multipliers":
		b.balanceFeature.HandleCommand(s, i)
	case "claim_daily":
		b.dailyFeature.HandleCommand(s, i)
	case "coinflip", "dice", "tos_coin":
		b.gamesFeature.HandleCommand(s, i)
	case "transfer_points":
		b.transferFeature.HandleCommand(s, i)
	case "convert_points", "convert_giftcard", "convert_currency":
		b.convertFeature.HandleCommand(s, i)
	}
}

package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"diamondbot/api"
	"diamondbot/bot"
	"diamondbot/config"
	"diamondbot/database"
	"diamondbot/events"
	"diamondbot/repository"
	"diamondbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting diamond bot...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	balanceService := service.NewBalanceService(uowFactory)
	dailyService := service.NewDailyService(uowFactory)
	gameService := service.NewGameService(uowFactory)
	conversionService := service.NewConversionService(uowFactory)

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, balanceService, dailyService, gameService, conversionService, eventBus)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// Optional read-only debug API
	var debugAPI *api.Server
	if cfg.DebugAPIAddr != "" {
		debugAPI = api.NewServer(cfg.DebugAPIAddr, balanceService, conversionService)
		debugAPI.Start()
	}

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if debugAPI != nil {
		if err := debugAPI.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down debug API: %v", err)
		}
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

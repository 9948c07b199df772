package balance

import (
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	balanceService service.BalanceService
}

func New(balanceService service.BalanceService) *Feature {
	return &Feature{
		balanceService: balanceService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "get_points":
		f.handleGetPoints(s, i)
	case "leaderboard":
		f.handleLeaderboard(s, i)
	case "get_multipliers":
		f.handleGetMultipliers(s, i)
	}
}

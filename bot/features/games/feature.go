package games

import (
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	gameService service.GameService
}

func New(gameService service.GameService) *Feature {
	return &Feature{
		gameService: gameService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "coinflip":
		f.handleCoinflip(s, i)
	case "dice":
		f.handleDice(s, i)
	case "tos_coin":
		f.handleTosCoin(s, i)
	}
}

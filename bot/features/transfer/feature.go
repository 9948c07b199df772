package transfer

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
	f.handleTransferPoints(s, i)
}

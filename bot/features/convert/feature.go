package convert

import (
	"diamondbot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	conversionService service.ConversionService
}

func New(conversionService service.ConversionService) *Feature {
	return &Feature{
		conversionService: conversionService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "convert_points":
		f.handleConvertPoints(s, i)
	case "convert_giftcard":
		f.handleConvertGiftCard(s, i)
	case "convert_currency":
		f.handleConvertCurrency(s, i)
	}
}

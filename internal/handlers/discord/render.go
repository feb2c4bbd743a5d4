package discord

import (
	"strings"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	colorWin  = 0x00ff00
	colorDraw = 0xffa500
	colorGame = 0xffd700
)

func renderRoundEmbed(result *models.RoundResult, output *messaging.GetRoundResultMessageOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       output.Title,
		Description: output.Message,
		Color:       colorWin,
	}
	if result.IsDraw {
		embed.Color = colorDraw
	}

	for _, bid := range result.Bids {
		value := messaging.Seconds(bid.BidTime)
		if bid.TimeExhausted {
			value += " (out of time)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   bid.ParticipantName,
			Value:  value,
			Inline: true,
		})
	}

	return embed
}

func renderGameEmbed(results *models.GameResults, output *messaging.GetGameResultMessageOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       output.Title,
		Description: output.Message,
		Color:       colorGame,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Game " + results.GameID,
		},
	}

	if len(output.Lines) > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{
			{
				Name:  "Standings",
				Value: strings.Join(output.Lines, "\n"),
			},
		}
	}

	return embed
}

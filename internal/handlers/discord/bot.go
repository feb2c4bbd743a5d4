package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Session is the part of *discordgo.Session the announcer uses
type Session interface {
	Open() error
	Close() error
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot posts round and game results to a Discord channel
type Bot struct {
	session   Session
	messaging messaging.Service
	config    *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token, used when Session is nil
	Token string

	// ChannelID is where results are posted
	ChannelID string

	// Messaging renders the announcement text
	Messaging messaging.Service

	// Session overrides the discordgo session
	Session Session
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	session := cfg.Session
	if session == nil {
		if cfg.Token == "" {
			return nil, errors.New("token cannot be empty")
		}

		s, err := discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		session = s
	}

	return &Bot{
		session:   session,
		messaging: cfg.Messaging,
		config:    cfg,
	}, nil
}

// Start opens the Discord connection
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	log.Info().Str("channel_id", b.config.ChannelID).Msg("Discord announcer connected")
	return nil
}

// Stop closes the Discord connection
func (b *Bot) Stop() error {
	return b.session.Close()
}

// AnnounceRound posts a finished round
func (b *Bot) AnnounceRound(ctx context.Context, result *models.RoundResult) error {
	output, err := b.messaging.GetRoundResultMessage(ctx, &messaging.GetRoundResultMessageInput{Result: result})
	if err != nil {
		return err
	}

	return b.send(renderRoundEmbed(result, output))
}

// AnnounceGame posts the final standings
func (b *Bot) AnnounceGame(ctx context.Context, results *models.GameResults) error {
	output, err := b.messaging.GetGameResultMessage(ctx, &messaging.GetGameResultMessageInput{Results: results})
	if err != nil {
		return err
	}

	return b.send(renderGameEmbed(results, output))
}

func (b *Bot) send(embed *discordgo.MessageEmbed) error {
	if _, err := b.session.ChannelMessageSendEmbed(b.config.ChannelID, embed); err != nil {
		return fmt.Errorf("failed to post to channel %s: %w", b.config.ChannelID, err)
	}
	return nil
}

package platform

import (
	"bytes"
	"context"
	"fmt"

	"viralcast/models"
	"viralcast/service"
	"viralcast/thumbnail"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// DiscordAdapter announces content to a Discord channel. The account's
// access token is a bot token and its business account id is the channel to
// post into. Discord is used as a distribution channel for community
// announcements rather than a video host, so the video stays a link.
type DiscordAdapter struct {
	thumbnails *thumbnail.Generator

	// newSession is swappable for tests
	newSession func(token string) (discordSession, error)
}

// discordSession is the slice of discordgo.Session the adapter uses
type discordSession interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// NewDiscordAdapter creates a new Discord delivery adapter
func NewDiscordAdapter() *DiscordAdapter {
	return &DiscordAdapter{
		thumbnails: thumbnail.NewGenerator(),
		newSession: func(token string) (discordSession, error) {
			return discordgo.New("Bot " + token)
		},
	}
}

// Platform returns the platform this adapter delivers to
func (a *DiscordAdapter) Platform() models.Platform {
	return models.PlatformDiscord
}

// Deliver posts the announcement message into the account's channel
func (a *DiscordAdapter) Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*service.DeliveryResult, error) {
	if account.AccessToken == "" {
		return nil, fmt.Errorf("authentication error: account %s has no bot token", account.Username)
	}
	if account.BusinessAccountID == "" {
		return nil, fmt.Errorf("authentication error: account %s has no channel id configured", account.Username)
	}

	session, err := a.newSession(account.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	channelID := account.BusinessAccountID
	send := &discordgo.MessageSend{
		Content: payload.FullCaption() + "\n" + payload.VideoURL,
	}
	if payload.ThumbnailURL != "" {
		send.Embeds = []*discordgo.MessageEmbed{{
			Image: &discordgo.MessageEmbedImage{URL: payload.ThumbnailURL},
		}}
	} else if a.thumbnails != nil {
		// No thumbnail from the pipeline; attach a generated card instead
		card, err := a.thumbnails.Generate(payload.Title)
		if err != nil {
			log.WithError(err).Warn("Failed to generate fallback thumbnail, sending without one")
		} else {
			send.Files = []*discordgo.File{{
				Name:        "thumbnail.png",
				ContentType: "image/png",
				Reader:      bytes.NewReader(card),
			}}
		}
	}

	message, err := session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord message send failed: %w", err)
	}

	// Message URLs need the guild id, which the REST response omits
	postURL := fmt.Sprintf("https://discord.com/channels/@me/%s/%s", channelID, message.ID)
	if channel, err := session.Channel(channelID, discordgo.WithContext(ctx)); err == nil && channel.GuildID != "" {
		postURL = fmt.Sprintf("https://discord.com/channels/%s/%s/%s", channel.GuildID, channelID, message.ID)
	}

	return &service.DeliveryResult{
		PostID:  message.ID,
		PostURL: postURL,
	}, nil
}

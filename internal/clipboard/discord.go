package clipboard

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// webhookExecutor is the part of *discordgo.Session the webhook writer uses
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordWebhookConfig holds configuration for posting share links to a Discord channel
type DiscordWebhookConfig struct {
	WebhookID    string
	WebhookToken string
	Username     string
	// Session is optional; a token-less session is enough to execute webhooks
	Session webhookExecutor
}

// DiscordWebhook posts share links through a channel webhook
type DiscordWebhook struct {
	id       string
	token    string
	username string
	session  webhookExecutor
}

// NewDiscordWebhook creates a webhook writer
func NewDiscordWebhook(cfg *DiscordWebhookConfig) (*DiscordWebhook, error) {
	if cfg.WebhookID == "" || cfg.WebhookToken == "" {
		return nil, fmt.Errorf("discord webhook id and token are required")
	}

	session := cfg.Session
	if session == nil {
		dg, err := discordgo.New("")
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		session = dg
	}

	return &DiscordWebhook{
		id:       cfg.WebhookID,
		token:    cfg.WebhookToken,
		username: cfg.Username,
		session:  session,
	}, nil
}

// Write posts the text as a webhook message
func (d *DiscordWebhook) Write(ctx context.Context, text string) error {
	_, err := d.session.WebhookExecute(d.id, d.token, false, &discordgo.WebhookParams{
		Content:  text,
		Username: d.username,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post share link to Discord: %w", err)
	}
	return nil
}

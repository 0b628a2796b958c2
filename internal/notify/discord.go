package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordClient abstracts the Discord API methods we use, enabling test mocks.
type discordClient interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAdapter posts notices to a Discord channel.
type DiscordAdapter struct {
	client    discordClient
	channelID string
}

// NewDiscordAdapter builds a Discord adapter from a bot token and channel ID.
func NewDiscordAdapter(botToken, channelID string) (*DiscordAdapter, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("notify: discord session: %w", err)
	}
	return &DiscordAdapter{client: session, channelID: channelID}, nil
}

func (d *DiscordAdapter) Name() string { return "discord" }

// Send posts the notice as a single message, subject bolded above the body.
func (d *DiscordAdapter) Send(n Notice) error {
	content := "**" + n.Subject + "**"
	if n.Body != "" {
		content += "\n" + n.Body
	}
	if _, err := d.client.ChannelMessageSend(d.channelID, content); err != nil {
		return fmt.Errorf("notify: discord post to %s: %w", d.channelID, err)
	}
	return nil
}

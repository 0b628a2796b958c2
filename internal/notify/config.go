package notify

import (
	"fmt"

	"github.com/hward/assetdesk/internal/config"
)

// FromConfig builds a Multi from the configured adapters. An empty
// configuration yields a Multi with no adapters, which is valid: sends
// become no-ops.
func FromConfig(cfg config.NotifyConfig) (*Multi, error) {
	var adapters []Adapter

	if cfg.Slack.BotToken != "" {
		if cfg.Slack.ChannelID == "" {
			return nil, fmt.Errorf("notify: slack.channel_id is required when slack.bot_token is set")
		}
		adapters = append(adapters, NewSlackAdapter(cfg.Slack.BotToken, cfg.Slack.ChannelID))
	}

	if cfg.Discord.BotToken != "" {
		if cfg.Discord.ChannelID == "" {
			return nil, fmt.Errorf("notify: discord.channel_id is required when discord.bot_token is set")
		}
		d, err := NewDiscordAdapter(cfg.Discord.BotToken, cfg.Discord.ChannelID)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, d)
	}

	if cfg.Command != "" {
		adapters = append(adapters, &CommandAdapter{Command: cfg.Command})
	}

	return NewMulti(adapters...), nil
}

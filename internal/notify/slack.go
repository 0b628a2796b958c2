package notify

import (
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackAdapter posts notices to a Slack channel via the Web API.
type SlackAdapter struct {
	client    slackClient
	channelID string
}

// NewSlackAdapter builds a Slack adapter from a bot token and channel ID.
func NewSlackAdapter(botToken, channelID string) *SlackAdapter {
	return &SlackAdapter{
		client:    slackapi.New(botToken),
		channelID: channelID,
	}
}

func (s *SlackAdapter) Name() string { return "slack" }

// Send posts the notice as a single message, subject bolded above the body.
func (s *SlackAdapter) Send(n Notice) error {
	text := "*" + n.Subject + "*"
	if n.Body != "" {
		text += "\n" + n.Body
	}
	_, _, err := s.client.PostMessage(s.channelID, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("notify: slack post to %s: %w", s.channelID, err)
	}
	return nil
}

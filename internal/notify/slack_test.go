package notify

import (
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
)

type fakeSlackClient struct {
	channels []string
	err      error
}

func (f *fakeSlackClient) PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.channels = append(f.channels, channelID)
	return channelID, "123.456", nil
}

func TestSlackAdapter_Send(t *testing.T) {
	fake := &fakeSlackClient{}
	s := &SlackAdapter{client: fake, channelID: "C0123"}

	if err := s.Send(Notice{Subject: "Gate pass", Body: "Laptop-007 dispatched"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(fake.channels) != 1 || fake.channels[0] != "C0123" {
		t.Errorf("posted channels = %v, want [C0123]", fake.channels)
	}
}

func TestSlackAdapter_SendError(t *testing.T) {
	fake := &fakeSlackClient{err: errors.New("channel_not_found")}
	s := &SlackAdapter{client: fake, channelID: "C0404"}

	if err := s.Send(Notice{Subject: "x"}); err == nil {
		t.Fatal("expected error from failed post")
	}
}

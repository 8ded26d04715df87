package feed

import (
	"context"
	"encoding/json"
	"fmt"

	pubnub "github.com/pubnub/go"
)

type channelPublisher interface {
	publish(channel string, message any) error
}

type pubnubClient struct {
	pn *pubnub.PubNub
}

func (c pubnubClient) publish(channel string, message any) error {
	_, _, err := c.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
	return err
}

// PubNubMirror дублирует события в PubNub: общий канал таблицы и личный канал владельца талона.
type PubNubMirror struct {
	client  channelPublisher
	channel string
}

func NewPubNubMirror(pn *pubnub.PubNub, channel string) *PubNubMirror {
	return &PubNubMirror{client: pubnubClient{pn: pn}, channel: channel}
}

func (m *PubNubMirror) Publish(ctx context.Context, ev Event) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}
	var message map[string]any
	if err := json.Unmarshal(payload, &message); err != nil {
		return err
	}

	if err := m.client.publish(m.channel, message); err != nil {
		return fmt.Errorf("feed: pubnub publish %s: %w", m.channel, err)
	}
	if owner := OwnerOf(ev); owner != "" {
		if err := m.client.publish("user-"+owner, message); err != nil {
			return fmt.Errorf("feed: pubnub publish user-%s: %w", owner, err)
		}
	}
	return nil
}

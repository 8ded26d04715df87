package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	channels []string
	messages []map[string]any
	err      error
}

func (r *recordingPublisher) publish(channel string, message any) error {
	if r.err != nil {
		return r.err
	}
	r.channels = append(r.channels, channel)
	r.messages = append(r.messages, message.(map[string]any))
	return nil
}

func TestPubNubMirror_PublishesToTableAndOwner(t *testing.T) {
	rec := &recordingPublisher{}
	mirror := &PubNubMirror{client: rec, channel: "queue_tickets"}

	require.NoError(t, mirror.Publish(context.Background(), Updated{Ticket: sampleTicket()}))
	assert.Equal(t, []string{"queue_tickets", "user-alice"}, rec.channels)
	assert.Equal(t, "UPDATE", rec.messages[0]["eventType"])

	rec.channels = nil
	require.NoError(t, mirror.Publish(context.Background(), Deleted{ID: "t1"}))
	assert.Equal(t, []string{"queue_tickets"}, rec.channels)
}

func TestFanout_MirrorFailureIgnored(t *testing.T) {
	hub, _ := startHub(t)
	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	failing := &PubNubMirror{client: &recordingPublisher{err: errors.New("403")}, channel: "queue_tickets"}
	fanout := &Fanout{Primary: hub, Mirrors: []Publisher{failing}}

	require.NoError(t, fanout.Publish(context.Background(), Deleted{ID: "t1"}))
	assert.Equal(t, Deleted{ID: "t1"}, receive(t, sub))
}

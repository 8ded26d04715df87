package feed

import (
	"testing"
	"time"

	"queuecare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTicket() models.Ticket {
	return models.Ticket{
		ID:            "t1",
		TicketNumber:  7,
		Department:    "cardiology",
		Priority:      models.PriorityUrgent,
		Status:        models.StatusWaiting,
		OwnerID:       "alice",
		EstimatedTime: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestEncode_Envelope(t *testing.T) {
	data, err := Encode(Updated{Ticket: sampleTicket()})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"eventType":"UPDATE"`)
	assert.Contains(t, string(data), `"table":"queue_tickets"`)
	assert.Contains(t, string(data), `"isReady":false`)

	data, err = Encode(Deleted{ID: "t1", OwnerID: "alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventType":"DELETE","table":"queue_tickets","old":{"id":"t1","patient_id":"alice"}}`, string(data))
}

func TestDecode_Variants(t *testing.T) {
	data, err := Encode(Inserted{Ticket: sampleTicket()})
	require.NoError(t, err)

	ev, err := Decode(data)
	require.NoError(t, err)
	ins, ok := ev.(Inserted)
	require.True(t, ok, "ожидался Inserted, получен %T", ev)
	assert.Equal(t, "cardiology", ins.Ticket.Department)
	assert.Equal(t, models.PriorityUrgent, ins.Ticket.Priority)
	assert.True(t, ins.Ticket.EstimatedTime.Equal(sampleTicket().EstimatedTime))

	ev, err = Decode([]byte(`{"eventType":"DELETE","old":{"id":"t9"}}`))
	require.NoError(t, err)
	assert.Equal(t, Deleted{ID: "t9"}, ev)
	assert.Equal(t, "", OwnerOf(ev))
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"eventType":"TRUNCATE"}`,
		`{"eventType":"INSERT"}`,
		`{"eventType":"UPDATE","new":{"department":"general"}}`,
		`{"eventType":"DELETE","old":{}}`,
	}
	for _, raw := range cases {
		_, err := Decode([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformedEvent, raw)
	}
}

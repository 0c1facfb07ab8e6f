package realtime

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(buffer int) *Client {
	return &Client{
		send: make(chan []byte, buffer),
		id:   "test-client",
	}
}

func drain(t *testing.T, c *Client) [][]byte {
	t.Helper()
	var frames [][]byte
	for {
		select {
		case data := <-c.send:
			frames = append(frames, data)
		default:
			return frames
		}
	}
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(4)
	hub.Register(client)

	hub.Join(client, EventTopic(1))
	hub.Join(client, EventTopic(1))

	assert.Equal(t, 1, hub.TopicSize(EventTopic(1)))

	hub.PublishAttendance(1, []string{"roster"})
	assert.Len(t, drain(t, client), 1, "duplicate join must not duplicate delivery")
}

func TestHub_JoinAfterUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(1)
	hub.Register(client)
	hub.Unregister(client)

	hub.Join(client, TopicAdmin)
	assert.Equal(t, 0, hub.TopicSize(TopicAdmin))
}

func TestHub_PublishAttendance_Targets(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	eventSub := newTestClient(4)
	admin := newTestClient(4)
	both := newTestClient(4)
	other := newTestClient(4)
	for _, c := range []*Client{eventSub, admin, both, other} {
		hub.Register(c)
	}
	hub.Join(eventSub, EventTopic(7))
	hub.Join(admin, TopicAdmin)
	hub.Join(both, EventTopic(7))
	hub.Join(both, TopicAdmin)
	hub.Join(other, EventTopic(8))

	hub.PublishAttendance(7, []string{"roster"})

	assert.Len(t, drain(t, eventSub), 1)
	assert.Len(t, drain(t, admin), 1)
	assert.Len(t, drain(t, both), 1, "a connection in both topics receives each frame once")
	assert.Empty(t, drain(t, other))
}

func TestHub_PublishAttendance_FrameShape(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(1)
	hub.Register(client)
	hub.Join(client, TopicAdmin)

	hub.PublishAttendance(42, []map[string]string{{"name": "ada"}})

	frames := drain(t, client)
	require.Len(t, frames, 1)

	var frame AttendanceFrame
	require.NoError(t, json.Unmarshal(frames[0], &frame))
	assert.Equal(t, "attendance-updated", frame.Event)
	assert.Equal(t, int64(42), frame.EventID)
	assert.NotNil(t, frame.AttendanceData)
	assert.False(t, frame.Timestamp.IsZero())
}

func TestHub_PublishDataChanged_ReachesAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	subscribed := newTestClient(4)
	idle := newTestClient(4)
	hub.Register(subscribed)
	hub.Register(idle)
	hub.Join(subscribed, EventTopic(1))

	hub.PublishDataChanged("events")

	for _, c := range []*Client{subscribed, idle} {
		frames := drain(t, c)
		require.Len(t, frames, 1)

		var frame DataChangedFrame
		require.NoError(t, json.Unmarshal(frames[0], &frame))
		assert.Equal(t, "data-updated", frame.Event)
		assert.Equal(t, "events", frame.Type)
	}
}

func TestHub_SlowClientDropsFrame(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	slow := newTestClient(1)
	fast := newTestClient(4)
	hub.Register(slow)
	hub.Register(fast)
	hub.Join(slow, TopicAdmin)
	hub.Join(fast, TopicAdmin)

	hub.PublishAttendance(1, "a")
	hub.PublishAttendance(1, "b")

	assert.Len(t, drain(t, slow), 1, "frame beyond the buffer is dropped, not queued")
	assert.Len(t, drain(t, fast), 2)

	// The slow client stays connected
	assert.Equal(t, 2, hub.ClientCount())
}

func TestHub_UnregisterCleansMemberships(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(1)
	hub.Register(client)
	hub.Join(client, EventTopic(1))
	hub.Join(client, TopicAdmin)

	hub.Unregister(client)

	assert.Equal(t, 0, hub.TopicSize(EventTopic(1)))
	assert.Equal(t, 0, hub.TopicSize(TopicAdmin))
	assert.Equal(t, 0, hub.ClientCount())

	// send channel is closed
	_, open := <-client.send
	assert.False(t, open)

	// A second unregister is harmless
	hub.Unregister(client)
}

func TestHub_LeaveRemovesSingleTopic(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(4)
	hub.Register(client)
	hub.Join(client, EventTopic(1))
	hub.Join(client, TopicAdmin)

	hub.Leave(client, EventTopic(1))

	assert.Equal(t, 0, hub.TopicSize(EventTopic(1)))
	assert.Equal(t, 1, hub.TopicSize(TopicAdmin))

	hub.PublishAttendance(1, "roster")
	assert.Len(t, drain(t, client), 1, "still reachable through the admin topic")
}

// Package realtime implements the topic-based WebSocket fan-out used for
// live attendance and data-change notifications.
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat/campushub/internal/pkg/metrics"
)

// Topic names. Event and student topics are parameterized by ID.
const (
	TopicAdmin = "admin"
)

// EventTopic returns the topic carrying attendance updates for one event.
func EventTopic(eventID int64) string {
	return fmt.Sprintf("event:%d", eventID)
}

// StudentTopic returns the per-student topic.
func StudentTopic(studentID int64) string {
	return fmt.Sprintf("student:%d", studentID)
}

// AttendanceFrame is pushed to event and admin subscribers after every
// attendance mutation. AttendanceData carries the full resolved roster.
type AttendanceFrame struct {
	Event          string    `json:"event"`
	EventID        int64     `json:"eventId"`
	AttendanceData any       `json:"attendanceData"`
	Timestamp      time.Time `json:"timestamp"`
}

// DataChangedFrame is pushed to every connection after a non-attendance
// mutation so clients know to refetch the named collection.
type DataChangedFrame struct {
	Event     string    `json:"event"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and their topic memberships.
type Hub struct {
	mu sync.RWMutex

	// Clients per topic
	topics map[string]map[*Client]bool

	// Topic memberships per client, so teardown can clean every topic
	clients map[*Client]map[string]bool

	logger zerolog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]bool),
		clients: make(map[*Client]map[string]bool),
		logger:  logger,
	}
}

// Register adds a connected client with no topic memberships yet.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		return
	}
	h.clients[client] = make(map[string]bool)
	metrics.WebSocketConnections.Inc()

	h.logger.Info().
		Str("connID", client.id).
		Msg("Client connected")
}

// Unregister removes a client from every topic and closes its send channel.
// Calling it for an unknown client is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	memberships, ok := h.clients[client]
	if !ok {
		return
	}

	for topic := range memberships {
		delete(h.topics[topic], client)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(h.clients, client)
	close(client.send)
	metrics.WebSocketConnections.Dec()

	h.logger.Info().
		Str("connID", client.id).
		Int("topics", len(memberships)).
		Msg("Client disconnected")
}

// Join subscribes a client to a topic. Joining a topic the client already
// belongs to changes nothing.
func (h *Hub) Join(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	memberships, ok := h.clients[client]
	if !ok {
		// Teardown already ran for this client
		return
	}
	if memberships[topic] {
		return
	}
	memberships[topic] = true

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true

	h.logger.Info().
		Str("connID", client.id).
		Str("topic", topic).
		Msg("Client joined topic")
}

// Leave removes one topic membership.
func (h *Hub) Leave(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	memberships, ok := h.clients[client]
	if !ok || !memberships[topic] {
		return
	}
	delete(memberships, topic)
	delete(h.topics[topic], client)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
}

// PublishAttendance sends the resolved roster for an event to the event
// topic and the admin topic. Delivery is best effort, at most once per
// connection even when it belongs to both topics.
func (h *Hub) PublishAttendance(eventID int64, snapshot any) {
	frame := AttendanceFrame{
		Event:          "attendance-updated",
		EventID:        eventID,
		AttendanceData: snapshot,
		Timestamp:      time.Now().UTC(),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("eventID", eventID).
			Msg("Failed to marshal attendance frame")
		return
	}

	h.mu.RLock()
	targets := make(map[*Client]bool)
	for client := range h.topics[EventTopic(eventID)] {
		targets[client] = true
	}
	for client := range h.topics[TopicAdmin] {
		targets[client] = true
	}
	h.mu.RUnlock()

	h.deliver(targets, data)
	metrics.BroadcastsTotal.WithLabelValues("attendance").Inc()

	h.logger.Debug().
		Int64("eventID", eventID).
		Int("clientCount", len(targets)).
		Msg("Attendance update broadcast")
}

// PublishDataChanged notifies every connection that a collection changed.
func (h *Hub) PublishDataChanged(kind string) {
	frame := DataChangedFrame{
		Event:     "data-updated",
		Type:      kind,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error().Err(err).Str("type", kind).Msg("Failed to marshal data-updated frame")
		return
	}

	h.mu.RLock()
	targets := make(map[*Client]bool, len(h.clients))
	for client := range h.clients {
		targets[client] = true
	}
	h.mu.RUnlock()

	h.deliver(targets, data)
	metrics.BroadcastsTotal.WithLabelValues("data").Inc()
}

// deliver writes a frame to each target without blocking. A client whose
// send buffer is full misses this frame and catches up through polling.
func (h *Hub) deliver(targets map[*Client]bool, data []byte) {
	for client := range targets {
		select {
		case client.send <- data:
		default:
			metrics.BroadcastDrops.Inc()
			h.logger.Warn().
				Str("connID", client.id).
				Msg("Dropped frame for slow client")
		}
	}
}

// TopicSize returns the number of clients subscribed to a topic.
func (h *Hub) TopicSize(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024
)

// Client is a middleman between one WebSocket connection and the hub.
type Client struct {
	hub *Hub

	// The WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound frames
	send chan []byte

	// Connection ID, for logging
	id string

	logger zerolog.Logger
}

// joinRequest is the subscription protocol spoken by clients.
// Action is one of "join-admin", "join-student", "join-event",
// "leave-student", "leave-event". ID is required for the student and
// event actions.
type joinRequest struct {
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

// readPump consumes subscription requests from the connection. It owns
// the read side and triggers teardown when the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().
					Str("connID", c.id).
					Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().
					Err(err).
					Str("connID", c.id).
					Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().
					Err(err).
					Str("connID", c.id).
					Msg("WebSocket read error")
			}
			break
		}

		var req joinRequest
		if err := json.Unmarshal(message, &req); err != nil {
			c.logger.Warn().
				Err(err).
				Str("connID", c.id).
				Str("message", string(message)).
				Msg("Failed to unmarshal subscription request")
			continue
		}

		switch req.Action {
		case "join-admin":
			c.hub.Join(c, TopicAdmin)
		case "join-student":
			c.hub.Join(c, StudentTopic(req.ID))
		case "join-event":
			c.hub.Join(c, EventTopic(req.ID))
		case "leave-student":
			c.hub.Leave(c, StudentTopic(req.ID))
		case "leave-event":
			c.hub.Leave(c, EventTopic(req.ID))
		default:
			c.logger.Warn().
				Str("connID", c.id).
				Str("action", req.Action).
				Msg("Unknown subscription action")
		}
	}
}

// writePump pumps frames from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/breakshot/backend/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin is checked by middleware before the upgrade
	},
}

// Client is one connected WebSocket consumer of a session's frames.
type Client struct {
	conn         *websocket.Conn
	sessionToken string
	runner       *game.Runner
	send         chan []byte
}

// WSMessage is the wire envelope for both directions.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed: connection is being replaced or cleaned up.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for session %s: %v", c.sessionToken, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for session %s: %v", c.sessionToken, err)
				return
			}
		}
	}
}

// enqueue marshals a message into the send buffer, dropping it if the buffer
// is full so a slow socket never stalls the caller.
func (c *Client) enqueue(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] marshal error for session %s: %v", c.sessionToken, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] send buffer full for session %s, dropping message", c.sessionToken)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.enqueue(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

package ws

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/breakshot/backend/internal/game"
)

var errInvalidAim = errors.New("invalid aim payload")

// AimData is the payload of an "aim" message: the pointer position in table
// coordinates.
type AimData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// frameEnvelope wraps a frame for the wire.
type frameEnvelope struct {
	Type string      `json:"type"`
	Data *game.Frame `json:"data"`
}

// ServeSession upgrades the connection and attaches it to the session's
// runner. Authentication has already happened in the HTTP handler. A new
// connection for the same session displaces the previous subscriber.
func ServeSession(c *gin.Context, runner *game.Runner) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:         conn,
		sessionToken: runner.Session().Token,
		runner:       runner,
		send:         make(chan []byte, 256),
	}

	log.Printf("[WS] client connected to session %s", client.sessionToken)

	frames := runner.Subscribe()

	go client.writePump()
	go client.framePump(frames)
	go client.readPump()
}

// framePump forwards simulation frames to the socket until the runner stops
// or a newer connection takes over the subscription.
func (c *Client) framePump(frames <-chan *game.Frame) {
	for frame := range frames {
		c.enqueue(frameEnvelope{Type: "frame", Data: frame})
	}
	// Subscription ended: session finished or connection replaced.
	close(c.send)
}

// readPump decodes input envelopes and feeds them to the runner.
func (c *Client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for session %s: %v", c.sessionToken, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}

		ev, ok, err := DecodeInput(msg)
		if err != nil {
			c.sendError(err.Error())
			continue
		}
		if ok {
			c.runner.Send(ev)
			continue
		}

		switch msg.Type {
		case "get_state":
			c.enqueue(frameEnvelope{Type: "frame", Data: c.runner.LastFrame()})
		default:
			c.sendError("unknown message type: " + msg.Type)
		}
	}
}

// DecodeInput maps a wire envelope onto a simulation input event. The second
// return is false for envelope types that are not simulation inputs
// (get_state and friends), which the caller handles itself.
func DecodeInput(msg WSMessage) (game.InputEvent, bool, error) {
	switch msg.Type {
	case "aim":
		var d AimData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return game.InputEvent{}, false, errInvalidAim
		}
		return game.InputEvent{Type: game.EventAim, Pointer: game.NewVec2(d.X, d.Y)}, true, nil
	case "strike":
		return game.InputEvent{Type: game.EventStrike}, true, nil
	case "power_up":
		return game.InputEvent{Type: game.EventPowerUp}, true, nil
	case "power_down":
		return game.InputEvent{Type: game.EventPowerDown}, true, nil
	case "toggle_guideline":
		return game.InputEvent{Type: game.EventToggleGuideline}, true, nil
	case "quit":
		return game.InputEvent{Type: game.EventQuit}, true, nil
	}
	return game.InputEvent{}, false, nil
}

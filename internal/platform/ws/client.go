package ws

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/storage"
)

// client is one WebSocket connection playing its own board.
// Only run writes data frames; pings go through WriteControl, which is safe
// to call concurrently.
type client struct {
	conn     *websocket.Conn
	preset   string
	game     playable
	recorder *storage.Recorder
	seeds    *rand.Rand
	logger   *log.Logger
}

// run deals the first board and serves requests until the connection drops.
func (c *client) run(seed int64) {
	defer c.finish()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(done)

	c.game.Reset(core.RuntimeConfig{Seed: seed})
	c.recorder.Begin()
	if err := c.send(c.state()); err != nil {
		return
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			} else {
				c.logger.Debug("websocket closed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := c.send(errorMessage("invalid message: " + err.Error())); err != nil {
				return
			}
			continue
		}

		if err := c.send(c.handle(msg)); err != nil {
			return
		}
	}
}

// handle answers one client request.
func (c *client) handle(msg ClientMessage) Message {
	switch msg.Type {
	case TypeSelect:
		report := c.game.Select(msg.X, msg.Y)
		reply := c.state()
		reply.Type = TypeReport
		reply.Report = reportPayload(report)
		return reply

	case TypeReset:
		c.recorder.Finish(c.game.State())
		c.game.Reset(core.RuntimeConfig{Seed: c.seeds.Int63()})
		return c.state()

	case TypeState:
		return c.state()
	}

	return errorMessage(fmt.Sprintf("unknown message type %q", msg.Type))
}

func (c *client) state() Message {
	return stateMessage(c.preset, c.game.Board(), c.game.State())
}

func (c *client) send(m Message) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(m); err != nil {
		c.logger.Debug("websocket write failed", "error", err)
		return err
	}
	return nil
}

// pingLoop keeps the connection alive until done is closed.
func (c *client) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// finish saves the run and closes the connection.
func (c *client) finish() {
	c.recorder.Finish(c.game.State())
	c.conn.Close()
}

// close asks a live connection to end; run then saves the session.
func (c *client) close() {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
	c.conn.Close()
}

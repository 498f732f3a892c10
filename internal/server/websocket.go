package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/besuhoff/predator-arena-go/internal/protocol"
	"github.com/besuhoff/predator-arena-go/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// WebsocketClient represents a connected client
type WebsocketClient struct {
	ID         string
	RemoteAddr string
	conn       *websocket.Conn
	send       chan []byte
	server     *GameServer
	codec      protocol.Codec

	msgCount   int
	msgResetAt time.Time
}

func (c *WebsocketClient) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	logger := c.server.logger.With("client", c.ID)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warnw("WebSocket read failed", "error", err)
			}
			return
		}

		if !c.allowMessage(time.Now()) {
			logger.Warnw("Rate limit exceeded, disconnecting", "remote", c.RemoteAddr)
			return
		}

		frame, err := c.codec.Decode(message)
		if err != nil {
			logger.Debugw("Dropping undecodable message", "error", err)
			continue
		}

		select {
		case c.server.inbound <- inboundFrame{client: c, frame: frame}:
		case <-c.server.done:
			return
		}
	}
}

// allowMessage counts messages in one-second windows.
func (c *WebsocketClient) allowMessage(now time.Time) bool {
	if now.After(c.msgResetAt) {
		c.msgCount = 0
		c.msgResetAt = now.Add(time.Second)
	}
	c.msgCount++
	return c.msgCount <= c.server.opts.MaxMessagesPerSecond
}

func (c *WebsocketClient) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server closed the connection"))
				return
			}

			if err := c.conn.WriteMessage(c.codec.FrameType(), message); err != nil {
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

// Send encodes msg with the client's codec and queues it.
func (c *WebsocketClient) Send(msg types.Message) {
	data, err := c.codec.Encode(msg)
	if err != nil {
		c.server.logger.Errorw("Encoding message failed", "client", c.ID, "type", msg.Type, "error", err)
		return
	}
	c.queue(data)
}

func (c *WebsocketClient) queue(data []byte) {
	select {
	case c.send <- data:
	default:
		// Buffer full, drop
	}
}

package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/scribble/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 20
	sendBufferSize = 256
)

// Message is the inbound wire envelope
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is one authenticated websocket connection
type Client struct {
	id       string
	identity models.Identity
	conn     *websocket.Conn
	send     chan []byte
	limiter  *rate.Limiter
	ctx      context.Context
	log      zerolog.Logger
}

func newClient(ctx context.Context, id string, identity models.Identity, conn *websocket.Conn, limiter *rate.Limiter, logger zerolog.Logger) *Client {
	return &Client{
		id:       id,
		identity: identity,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		limiter:  limiter,
		ctx:      ctx,
		log:      logger.With().Str("connection", id).Str("user", identity.UserID).Logger(),
	}
}

// ID returns the connection id
func (c *Client) ID() string {
	return c.id
}

// Identity returns the verified caller
func (c *Client) Identity() models.Identity {
	return c.identity
}

// enqueue hands a frame to the write pump, dropping it when the buffer is full.
// Callers hold the hub lock so send is never closed underneath them.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.log.Warn().Msg("send buffer full, frame dropped")
	}
}

// readPump decodes frames and hands them to handle until the connection fails
func (c *Client) readPump(handle func(c *Client, msg Message)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("connection closed unexpectedly")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type == "" {
			c.log.Debug().Msg("ignoring malformed frame")
			continue
		}

		handle(c, msg)
	}
}

// writePump drains send onto the socket and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

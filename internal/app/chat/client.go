/*
Package chat contains the core of the relay.

This file defines the Client struct, the WebSocket implementation of ConnectionHandle.
It manages the connection lifecycle and the two message loops (ReadPump and WritePump),
and reports its liveness state to the Pool.
*/
package chat

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// DefaultMaxMessageSize is the default read limit (in bytes) for one inbound frame.
	DefaultMaxMessageSize = 8192

	// DefaultSendQueueSize is the default capacity of the outbound queue.
	DefaultSendQueueSize = 256
)

// ClientOptions tunes a Client. Zero values select the defaults.
type ClientOptions struct {
	SendQueueSize  int
	MaxMessageSize int64
}

// Client represents an active WebSocket connection.
type Client struct {
	// id tags the connection in logs.
	id string

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel used to queue frames waiting to be sent to the client.
	send chan []byte

	// state holds a ConnState.
	state atomic.Int32

	// done is closed once the connection starts closing.
	done chan struct{}

	closeOnce sync.Once

	maxMessageSize int64

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient wraps wsConn. The connection starts open.
func NewClient(wsConn *websocket.Conn, opts ClientOptions) *Client {
	if opts.SendQueueSize <= 0 {
		opts.SendQueueSize = DefaultSendQueueSize
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = DefaultMaxMessageSize
	}

	id := randx.ConnID()

	c := &Client{
		id:             id,
		conn:           wsConn,
		send:           make(chan []byte, opts.SendQueueSize),
		done:           make(chan struct{}),
		maxMessageSize: opts.MaxMessageSize,
		logger: logx.Logger().With().
			Str("conn_id", id).
			Str("remote_addr", wsConn.RemoteAddr().String()).
			Logger(),
	}
	c.state.Store(int32(StateOpen))

	return c
}

// ID returns the connection id.
func (c *Client) ID() string {
	return c.id
}

// State reports the liveness state of the connection.
func (c *Client) State() ConnState {
	return ConnState(c.state.Load())
}

// Send queues text for the WritePump without blocking.
func (c *Client) Send(text string) error {
	if c.State() != StateOpen {
		return ErrConnClosed
	}

	select {
	case c.send <- []byte(text):
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping frame")
		return ErrSendQueueFull
	}
}

// Close starts closing the connection. The WritePump sends a close frame and
// tears down the socket, which ends the ReadPump. Calling Close more than once is safe.
func (c *Client) Close() error {
	c.state.CompareAndSwap(int32(StateOpen), int32(StateClosing))
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// ReadPump reads frames and hands each one to h, in arrival order.
// When the connection ends it marks the client closed and notifies h exactly once.
func (c *Client) ReadPump(h FrameHandler) {
	defer c.cleanupOnDisconnect(h)

	c.conn.SetReadLimit(c.maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}

		if messageType != websocket.TextMessage {
			c.logger.Debug().Int("message_type", messageType).Msg("Ignoring non-text frame")
			continue
		}

		c.logger.Debug().Bytes("frame", messageBytes).Msg("Frame received")

		if err := h.HandleFrame(c, messageBytes); err != nil {
			c.logger.Warn().Err(err).
				Bytes("message_bytes", messageBytes).
				Msg("Dropping invalid frame")
		}
	}
}

// cleanupOnDisconnect runs when the ReadPump terminates.
func (c *Client) cleanupOnDisconnect(h FrameHandler) {
	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}

	c.state.Store(int32(StateClosed))
	c.logger.Info().Msg("Client connection closed.")

	h.HandleDisconnect()
}

// WritePump writes queued frames and periodic pings to the connection until it closes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// unblocks the ReadPump
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message := <-c.send:
			if !c.writeQueuedMessage(message) {
				c.Close()
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				c.Close()
				return
			}

		case <-c.done:
			c.writeCloseMessage()
			return
		}
	}
}

// writeQueuedMessage writes one text frame.
// Returns false if the WritePump loop should terminate.
func (c *Client) writeQueuedMessage(message []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Info().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a WebSocket Ping to keep the heartbeat going.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Info().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// writeCloseMessage sends a normal-closure close frame.
func (c *Client) writeCloseMessage() {
	closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

	if err := c.conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(writeWait)); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to send close frame")
	}
}

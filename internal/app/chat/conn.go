/*
Package chat contains the core of the relay: the connection pool, the frame dispatcher,
the command interpreter, and the WebSocket client that carries frames in and out.

This file defines the ConnectionHandle abstraction the core depends on, so the pool and
the dispatcher never touch a concrete transport.
*/
package chat

import (
	"errors"
	"io"
)

// ConnState is the liveness state of a ConnectionHandle.
type ConnState int32

const (
	StateOpen ConnState = iota
	StateClosing
	StateClosed
)

// String returns the lowercase name of the state.
func (s ConnState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrConnClosed is returned when sending on a connection that is no longer open.
	ErrConnClosed = errors.New("connection closed")

	// ErrSendQueueFull is returned when a connection cannot accept more outbound frames.
	ErrSendQueueFull = errors.New("send queue full")
)

// ConnectionHandle is one open duplex channel to a client.
type ConnectionHandle interface {
	io.Closer

	// Send queues one text frame for delivery.
	Send(text string) error

	// State reports the current liveness state.
	State() ConnState
}

// FrameHandler receives the inbound traffic of a connection.
type FrameHandler interface {
	// HandleFrame processes one raw inbound frame that arrived on conn.
	HandleFrame(conn ConnectionHandle, raw []byte) error

	// HandleDisconnect is called once after a connection has closed.
	HandleDisconnect()
}

/*
Package chat contains the core of the relay.

This file defines the Dispatcher, which turns inbound frames into pool operations:
lazy registration of the sender, command interception, lifecycle notices, and plain
chat broadcast. It also handles transport close notifications by reaping a dead entry.
*/
package chat

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/metrics"
)

// Dispatcher routes inbound frames to the Pool.
type Dispatcher struct {
	pool     *Pool
	commands *Interpreter
	metrics  *metrics.Registry
	logger   zerolog.Logger
}

// NewDispatcher builds a Dispatcher over pool. m may be nil.
func NewDispatcher(pool *Pool, m *metrics.Registry) *Dispatcher {
	return &Dispatcher{
		pool:     pool,
		commands: NewInterpreter(pool),
		metrics:  m,
		logger:   logx.Component("Dispatcher"),
	}
}

// JoinNotice is the system message broadcast when username connects.
func JoinNotice(username string) string {
	return ":wave: " + username + " has entered the chat"
}

// LeaveNotice is the system message broadcast when username leaves.
func LeaveNotice(username string) string {
	return ":v: " + username + " has left the chat"
}

// HandleFrame decodes raw and dispatches it.
// A frame that is not valid JSON or carries no id is rejected without side effects.
func (d *Dispatcher) HandleFrame(conn ConnectionHandle, raw []byte) error {
	d.metrics.FrameReceived()

	var frame InboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		d.metrics.FrameMalformed()
		return errs.NewError(errs.ErrInvalidFrame, err)
	}

	if frame.ID == "" {
		d.metrics.FrameMalformed()
		return errs.NewError(errs.ErrMissingIdentity)
	}

	d.Dispatch(conn, frame)
	return nil
}

// Dispatch processes one decoded frame that arrived on conn.
// Exactly one broadcast round or one private reply results.
func (d *Dispatcher) Dispatch(conn ConnectionHandle, frame InboundFrame) {
	sender := d.resolveSender(conn, frame)

	if strings.HasPrefix(frame.Message, CommandPrefix) {
		d.runCommand(sender, strings.TrimPrefix(frame.Message, CommandPrefix))
		return
	}

	switch frame.StatusMessage {
	case StatusConnect:
		d.pool.Broadcast(JoinNotice(sender.Username), sender, true)
	case StatusDisconnect:
		d.pool.Broadcast(LeaveNotice(sender.Username), sender, true)
	default:
		d.pool.Broadcast(frame.Message, sender, false)
	}
}

// resolveSender returns the member registered under frame.ID, registering one bound to conn if absent.
func (d *Dispatcher) resolveSender(conn ConnectionHandle, frame InboundFrame) *ChatUser {
	if sender, ok := d.pool.GetConnectionByID(frame.ID); ok {
		return sender
	}

	return d.pool.AddConnection(NewChatUser(user.New(frame.ID, frame.Username), conn))
}

// runCommand answers input privately to sender.
func (d *Dispatcher) runCommand(sender *ChatUser, input string) {
	token := strings.TrimSpace(input)

	label := token
	if !d.commands.Known(token) {
		label = "unknown"
	}
	d.metrics.Command(label)

	d.logger.Debug().Str("user_id", sender.ID).Str("command", token).Msg("Command received.")

	d.pool.SendToUser(sender, d.commands.Execute(token))
}

// HandleDisconnect reaps one dead entry and announces its departure.
// If no entry is dead, it does nothing.
func (d *Dispatcher) HandleDisconnect() {
	dead, ok := d.pool.GetFirstDeadConnection()
	if !ok {
		d.logger.Debug().Msg("Disconnect notification found no dead connection.")
		return
	}

	d.metrics.Reaped()
	d.logger.Info().Str("user_id", dead.ID).Str("username", dead.Username).Msg("Reaped dead connection.")

	d.pool.Broadcast(LeaveNotice(dead.Username), dead, true)
}

/*
Package chat contains the core of the relay.

This file defines the Pool, the registry of every chat user keyed by the client-supplied id.
It owns lookup, broadcast, private delivery, and the reaping of entries whose connection closed.
Membership changes only at explicit lifecycle points; broadcasting never mutates it.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/metrics"
)

// Pool is the registry of active chat users.
type Pool struct {
	// entries maps a user id to its ChatUser.
	entries map[string]*ChatUser

	// order keeps the ids in insertion order for deterministic iteration.
	order []string

	// mu guards entries and order.
	mu sync.RWMutex

	// now stamps outbound frames.
	now func() time.Time

	metrics *metrics.Registry

	// structured logger with Pool context.
	logger zerolog.Logger
}

// NewPool constructs an empty Pool. m may be nil.
func NewPool(m *metrics.Registry) *Pool {
	return &Pool{
		entries: make(map[string]*ChatUser),
		now:     time.Now,
		metrics: m,
		logger:  logx.Component("Pool"),
	}
}

// AddConnection stores u under its id, replacing any previous entry with the same id.
// A replaced entry keeps its position in iteration order.
func (p *Pool) AddConnection(u *ChatUser) *ChatUser {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[u.ID]; exists {
		p.logger.Warn().Str("user_id", u.ID).Msg("User id already registered. Overwriting previous entry.")
	} else {
		p.order = append(p.order, u.ID)
	}
	p.entries[u.ID] = u

	p.logger.Info().
		Str("user_id", u.ID).
		Str("username", u.Username).
		Int("total_users", len(p.entries)).
		Msg("User added to pool.")

	return u
}

// GetConnectionByID returns the user registered under id.
func (p *Pool) GetConnectionByID(id string) (*ChatUser, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	u, ok := p.entries[id]
	return u, ok
}

// GetAllConnections returns a snapshot of the membership in iteration order.
func (p *Pool) GetAllConnections() []*ChatUser {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := make([]*ChatUser, 0, len(p.order))
	for _, id := range p.order {
		users = append(users, p.entries[id])
	}
	return users
}

// Len returns the number of members, regardless of connection state.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// GetActiveCount returns the number of members whose connection is open.
func (p *Pool) GetActiveCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	count := 0
	for _, u := range p.entries {
		if u.State() == StateOpen {
			count++
		}
	}
	return count
}

// RemoveUserFromPool deletes the entry keyed by u's id. Removing an absent id is a no-op.
func (p *Pool) RemoveUserFromPool(u *ChatUser) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.removeLocked(u.ID)
}

// removeLocked deletes id from the pool. The caller holds the write lock.
func (p *Pool) removeLocked(id string) bool {
	if _, ok := p.entries[id]; !ok {
		return false
	}

	delete(p.entries, id)
	if i := slices.Index(p.order, id); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
	}

	p.logger.Info().
		Str("user_id", id).
		Int("total_users", len(p.entries)).
		Msg("User removed from pool.")
	return true
}

// GetFirstDeadConnection removes and returns the first member, in iteration order,
// whose connection is closed. It returns false when every connection is open or closing.
func (p *Pool) GetFirstDeadConnection() (*ChatUser, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range p.order {
		u := p.entries[id]
		if u.State() == StateClosed {
			p.removeLocked(id)
			return u, true
		}
	}
	return nil, false
}

// Broadcast sends message, attributed to sender, to every member with an open connection.
// A system broadcast skips the sender. It returns the number of send attempts made.
func (p *Pool) Broadcast(message string, sender *ChatUser, isSystem bool) int {
	frame := OutboundFrame{
		Message:  message,
		Datetime: formatTime(p.now()),
		ID:       sender.ID,
		Username: sender.Username,
		Color:    sender.Color,
		IsSystem: isSystem,
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		p.logger.Error().Err(err).Str("user_id", sender.ID).Msg("Error marshaling frame for broadcast.")
		return 0
	}

	attempts := 0
	for _, recipient := range p.GetAllConnections() {
		if isSystem && recipient.ID == sender.ID {
			continue
		}
		if recipient.State() != StateOpen {
			continue
		}

		p.deliver(recipient, payload)
		attempts++
	}

	kind := "chat"
	if isSystem {
		kind = "system"
	}
	p.metrics.Broadcast(kind, attempts)

	p.logger.Debug().
		Str("user_id", sender.ID).
		Bool("is_system", isSystem).
		Int("recipients", attempts).
		Msg("Broadcast complete.")

	return attempts
}

// SendToUser sends a private system frame to the member currently registered under u's id.
// It reports whether a send was attempted.
func (p *Pool) SendToUser(u *ChatUser, message string) bool {
	target, ok := p.GetConnectionByID(u.ID)
	if !ok {
		p.logger.Debug().Str("user_id", u.ID).Msg("Private reply skipped. User left the pool.")
		return false
	}
	if target.State() != StateOpen {
		return false
	}

	payload, err := json.Marshal(OutboundFrame{
		Message:  message,
		Datetime: formatTime(p.now()),
		IsSystem: true,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("user_id", u.ID).Msg("Error marshaling private frame.")
		return false
	}

	p.deliver(target, payload)
	return true
}

// deliver hands payload to the recipient's connection.
// Failures, including panics from a connection closing mid-send, stay with that recipient.
func (p *Pool) deliver(recipient *ChatUser, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.SendDropped()
			p.logger.Warn().
				Str("user_id", recipient.ID).
				Str("panic", fmt.Sprint(r)).
				Msg("Recovered from panic while sending.")
		}
	}()

	if err := recipient.Conn().Send(string(payload)); err != nil {
		p.metrics.SendDropped()
		p.logger.Debug().
			Err(err).
			Str("user_id", recipient.ID).
			Msg("Send dropped.")
	}
}

// Shutdown closes every member's connection and empties the pool.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	users := make([]*ChatUser, 0, len(p.entries))
	for _, id := range p.order {
		users = append(users, p.entries[id])
	}
	p.entries = make(map[string]*ChatUser)
	p.order = nil
	p.mu.Unlock()

	for _, u := range users {
		if err := u.Conn().Close(); err != nil {
			p.logger.Error().Err(err).Str("user_id", u.ID).Msg("Connection close error during shutdown.")
		}
	}

	p.logger.Info().Int("closed", len(users)).Msg("Pool shutdown complete.")
}

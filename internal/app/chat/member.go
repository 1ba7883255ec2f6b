package chat

import "relaychat/internal/app/user"

// ChatUser binds a user identity to the connection it speaks through.
type ChatUser struct {
	user.User

	conn ConnectionHandle
}

// NewChatUser binds u to conn.
func NewChatUser(u user.User, conn ConnectionHandle) *ChatUser {
	return &ChatUser{User: u, conn: conn}
}

// Conn returns the user's connection handle.
func (u *ChatUser) Conn() ConnectionHandle {
	return u.conn
}

// State returns the liveness state of the user's connection.
func (u *ChatUser) State() ConnState {
	return u.conn.State()
}

package chat

import "time"

const (
	// StatusConnect marks a frame announcing that the client joined.
	StatusConnect = "connect"

	// StatusDisconnect marks a frame announcing that the client is leaving.
	StatusDisconnect = "disconnect"

	// CommandPrefix marks a message as a command for the interpreter.
	CommandPrefix = ">"

	// TimeLayout formats the datetime field of outbound frames.
	TimeLayout = "3:04:05 PM"
)

// InboundFrame is one message received from a client.
type InboundFrame struct {
	ID            string `json:"id"`
	Message       string `json:"message"`
	Username      string `json:"username"`
	StatusMessage string `json:"statusMessage,omitempty"`
}

// OutboundFrame is one message sent to a client.
// Private replies leave the identity fields empty.
type OutboundFrame struct {
	Message  string `json:"message"`
	Datetime string `json:"datetime"`
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Color    string `json:"color,omitempty"`
	IsSystem bool   `json:"isSystem,omitempty"`
}

func formatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

package chat

import (
	"fmt"
	"strings"
)

// HelpText is the reply to the help command.
const HelpText = "Available commands:\n" +
	CommandPrefix + "help - show this message\n" +
	CommandPrefix + "active - list the users in the chat"

// Interpreter answers the closed set of introspection commands over a Pool.
// It never mutates the pool and never broadcasts.
type Interpreter struct {
	pool     *Pool
	commands map[string]func() string
}

// NewInterpreter builds an Interpreter reading from pool.
func NewInterpreter(pool *Pool) *Interpreter {
	i := &Interpreter{pool: pool}
	i.commands = map[string]func() string{
		"help":   i.help,
		"active": i.active,
	}
	return i
}

// Known reports whether name is a command.
func (i *Interpreter) Known(name string) bool {
	_, ok := i.commands[name]
	return ok
}

// Execute runs the command named by token and returns its textual result.
func (i *Interpreter) Execute(token string) string {
	cmd, ok := i.commands[token]
	if !ok {
		return "Command not found: " + token
	}
	return cmd()
}

func (i *Interpreter) help() string {
	return HelpText
}

// active lists every member's username after the count of open connections.
func (i *Interpreter) active() string {
	users := i.pool.GetAllConnections()

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}

	return fmt.Sprintf("(%d) %s", i.pool.GetActiveCount(), strings.Join(names, ", "))
}

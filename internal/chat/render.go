// Package chat wraps the session machine into a conversation with a
// renderer, a transcript and the local commands available to the
// candidate.
package chat

import (
	"fmt"
	"io"
	"strings"
)

// Role tells who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Renderer displays messages in the order they occur.
type Renderer interface {
	Render(role Role, text string)
}

const assistantName = "TalentBot"

// ConsoleRenderer writes messages to a terminal or any other writer.
type ConsoleRenderer struct {
	out io.Writer
	// EchoUser prints user messages too. Interactive prompts already show
	// what was typed, so it is off by default.
	EchoUser bool
}

func NewConsoleRenderer(out io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{out: out}
}

func (r *ConsoleRenderer) Render(role Role, text string) {
	switch role {
	case RoleAssistant:
		fmt.Fprintf(r.out, "%s: %s\n\n", assistantName, strings.TrimSpace(text))
	case RoleUser:
		if r.EchoUser {
			fmt.Fprintf(r.out, "You: %s\n", strings.TrimSpace(text))
		}
	}
}

// Command is a local chat command. Commands are never sent to the machine.
type Command string

const (
	CommandReset  Command = "/reset"
	CommandStatus Command = "/status"
	CommandHelp   Command = "/help"
)

var commands = []Command{CommandReset, CommandStatus, CommandHelp}

// ParseCommand reports whether line is one of the local commands.
func ParseCommand(line string) (Command, bool) {
	candidate := Command(strings.ToLower(strings.TrimSpace(line)))
	for _, c := range commands {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// HelpText lists the local commands.
const HelpText = `Available commands:
  /status  show the collected details and quiz progress
  /reset   start the conversation over
  /help    show this message
Say "bye" or "exit" to end the conversation.`

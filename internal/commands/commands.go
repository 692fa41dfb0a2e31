package commands

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultRequestMessage is sent with a friend request that carries no text.
const DefaultRequestMessage = "Hi, I'd like to add you as a friend."

var (
	ErrEmptyCommand    = errors.New("empty command")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

// Command is a parsed command line.
type Command interface {
	Name() string
}

type Quit struct{}

type AddFriend struct {
	Address string
	Message string
}

// Accept accepts the selected friend request.
type Accept struct{}

// Remove removes the selected friend.
type Remove struct{}

type NewGroup struct{}

type SetName struct {
	Text string
}

type Help struct{}

func (Quit) Name() string      { return "quit" }
func (AddFriend) Name() string { return "add" }
func (Accept) Name() string    { return "accept" }
func (Remove) Name() string    { return "remove" }
func (NewGroup) Name() string  { return "group" }
func (SetName) Name() string   { return "name" }
func (Help) Name() string      { return "help" }

// Usage lists the accepted commands, one per entry.
var Usage = []string{
	"q, quit",
	"add <address> [message]",
	"accept",
	"remove, del",
	"group",
	"name <text>",
	"help, h",
}

// Parse turns a submitted command line into a Command.
func Parse(line string) (Command, error) {
	verb, rest := splitWord(strings.TrimSpace(line))
	switch verb {
	case "":
		return nil, ErrEmptyCommand
	case "q", "quit":
		return Quit{}, nil
	case "add":
		addr, msg := splitWord(rest)
		if addr == "" {
			return nil, fmt.Errorf("add: %w: address", ErrMissingArgument)
		}
		if msg == "" {
			msg = DefaultRequestMessage
		}
		return AddFriend{Address: addr, Message: msg}, nil
	case "accept":
		return Accept{}, nil
	case "remove", "del":
		return Remove{}, nil
	case "group":
		return NewGroup{}, nil
	case "name":
		if rest == "" {
			return nil, fmt.Errorf("name: %w: text", ErrMissingArgument)
		}
		return SetName{Text: rest}, nil
	case "help", "h":
		return Help{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

// splitWord splits off the first whitespace separated word. The remainder
// keeps its inner spacing.
func splitWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

package messenger

import "errors"

type EventKind string

const (
	EventRequest       EventKind = "request"
	EventFriendAdded   EventKind = "friend-added"
	EventFriendRenamed EventKind = "friend-renamed"
	EventFriendStatus  EventKind = "friend-status"
	EventFriendRemoved EventKind = "friend-removed"
	EventGroupAdded    EventKind = "group-added"
	EventError         EventKind = "error"
)

// Event is a notification from the messaging network. Only the fields that
// matter for the kind are set: Key and Message for requests, FriendID and
// Name for friend changes, GroupID for groups, Message for errors and
// status text.
type Event struct {
	Kind     EventKind
	FriendID int
	GroupID  int
	Key      string
	Name     string
	Message  string
}

var (
	ErrStopped        = errors.New("messenger stopped")
	ErrUnknownFriend  = errors.New("unknown friend")
	ErrUnknownRequest = errors.New("unknown friend request")
	ErrAlreadyFriend  = errors.New("already a friend")
	ErrEmptyName      = errors.New("name is empty")
)

// Client is the UI's view of the messaging network. Intents return once the
// network has accepted or rejected them; state changes arrive as events.
type Client interface {
	AddFriend(address, message string) error
	AcceptRequest(key string) error
	RemoveFriend(id int) error
	CreateGroup() error
	SendMessage(id int, text string) error
	SetName(name string) error
	Events() <-chan Event
	Stop() error
}

const eventBuffer = 32

// sendEvent never blocks; a full queue drops the event.
func sendEvent(events chan Event, ev Event) {
	select {
	case events <- ev:
	default:
	}
}

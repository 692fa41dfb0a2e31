package messenger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kobzarvs/stannis/internal/logger"
)

// Local is an in-process client with no network behind it. It keeps just
// enough state to answer intents the way a real network would, and lets
// callers inject events such as incoming requests.
type Local struct {
	mu         sync.Mutex
	name       string
	events     chan Event
	friends    map[int]string // id -> public key
	requests   map[string]string
	nextFriend int
	nextGroup  int
	stopped    bool
}

func NewLocal(name string) *Local {
	return &Local{
		name:     name,
		events:   make(chan Event, eventBuffer),
		friends:  make(map[int]string),
		requests: make(map[string]string),
	}
}

func (l *Local) Events() <-chan Event {
	return l.events
}

func (l *Local) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

func (l *Local) AddFriend(address, message string) error {
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	key := addr.Key()
	for _, k := range l.friends {
		if k == key {
			return ErrAlreadyFriend
		}
	}
	id := l.addFriendLocked(key)
	logger.Debug("friend request sent", "id", id, "message", message)
	return nil
}

func (l *Local) AcceptRequest(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	if _, ok := l.requests[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRequest, ShortKey(key))
	}
	delete(l.requests, key)
	l.addFriendLocked(key)
	return nil
}

func (l *Local) addFriendLocked(key string) int {
	id := l.nextFriend
	l.nextFriend++
	l.friends[id] = key
	sendEvent(l.events, Event{Kind: EventFriendAdded, FriendID: id, Key: key, Name: ShortKey(key)})
	return id
}

func (l *Local) RemoveFriend(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	if _, ok := l.friends[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFriend, id)
	}
	delete(l.friends, id)
	sendEvent(l.events, Event{Kind: EventFriendRemoved, FriendID: id})
	return nil
}

func (l *Local) CreateGroup() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	id := l.nextGroup
	l.nextGroup++
	sendEvent(l.events, Event{Kind: EventGroupAdded, GroupID: id})
	return nil
}

// SendMessage accepts text for a known friend. There is nobody to deliver
// it to, so it only reaches the log.
func (l *Local) SendMessage(id int, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	if _, ok := l.friends[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFriend, id)
	}
	logger.Debug("message sent", "friend", id, "bytes", len(text))
	return nil
}

func (l *Local) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	l.name = name
	return nil
}

// Inject delivers an event as if it came from the network.
func (l *Local) Inject(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	switch ev.Kind {
	case EventRequest:
		l.requests[ev.Key] = ev.Message
	case EventFriendAdded:
		l.friends[ev.FriendID] = ev.Key
		if ev.FriendID >= l.nextFriend {
			l.nextFriend = ev.FriendID + 1
		}
	case EventFriendRemoved:
		delete(l.friends, ev.FriendID)
	}
	sendEvent(l.events, ev)
}

func (l *Local) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	return nil
}

package contacts

import (
	"fmt"
	"strings"

	"github.com/kobzarvs/stannis/internal/messenger"
)

type Request struct {
	Key     string
	Message string
}

type Group struct {
	ID int
}

type Friend struct {
	ID     int
	Name   string
	Status string
}

// Roster owns the items of the three sections and keeps its navigator in
// step with them.
type Roster struct {
	requests []Request
	groups   []Group
	friends  []Friend
	nav      *Navigator
}

func NewRoster(height int) *Roster {
	return &Roster{nav: NewNavigator(Counts{}, height)}
}

func (r *Roster) Navigator() *Navigator {
	return r.nav
}

func (r *Roster) Counts() Counts {
	return Counts{
		Requests: len(r.requests),
		Groups:   len(r.groups),
		Friends:  len(r.friends),
	}
}

func (r *Roster) Friends() []Friend {
	return r.friends
}

// AddRequest records an incoming friend request. A repeated key only
// replaces the message.
func (r *Roster) AddRequest(key, message string) {
	for i := range r.requests {
		if r.requests[i].Key == key {
			r.requests[i].Message = message
			return
		}
	}
	r.requests = append(r.requests, Request{Key: key, Message: message})
	r.sync(Row{}, false)
}

func (r *Roster) RemoveRequest(key string) bool {
	for i := range r.requests {
		if r.requests[i].Key == key {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			r.sync(Row{Kind: KindRequest, Index: i}, true)
			return true
		}
	}
	return false
}

func (r *Roster) AddGroup(id int) {
	for _, g := range r.groups {
		if g.ID == id {
			return
		}
	}
	r.groups = append(r.groups, Group{ID: id})
	r.sync(Row{}, false)
}

// AddFriend appends a friend, or renames it if the id is already known.
func (r *Roster) AddFriend(id int, name string) {
	if i := r.friendIndex(id); i >= 0 {
		r.friends[i].Name = name
		return
	}
	r.friends = append(r.friends, Friend{ID: id, Name: name})
	r.sync(Row{}, false)
}

func (r *Roster) RenameFriend(id int, name string) bool {
	i := r.friendIndex(id)
	if i < 0 {
		return false
	}
	r.friends[i].Name = name
	return true
}

func (r *Roster) SetFriendStatus(id int, status string) bool {
	i := r.friendIndex(id)
	if i < 0 {
		return false
	}
	r.friends[i].Status = status
	return true
}

func (r *Roster) RemoveFriend(id int) bool {
	i := r.friendIndex(id)
	if i < 0 {
		return false
	}
	r.friends = append(r.friends[:i], r.friends[i+1:]...)
	r.sync(Row{Kind: KindFriend, Index: i}, true)
	return true
}

func (r *Roster) friendIndex(id int) int {
	for i, f := range r.friends {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// sync pushes the section sizes to the navigator. When an item before the
// selection was removed, the selection follows its item up by one.
func (r *Roster) sync(removed Row, didRemove bool) {
	sel, ok := r.nav.Selected()
	r.nav.SetCounts(r.Counts())
	if ok && didRemove && sel.Kind == removed.Kind && removed.Index < sel.Index {
		r.nav.Select(Row{Kind: sel.Kind, Index: sel.Index - 1})
	}
}

// SelectedRequest returns the request under the selection, if any.
func (r *Roster) SelectedRequest() (Request, bool) {
	sel, ok := r.nav.Selected()
	if !ok || sel.Kind != KindRequest {
		return Request{}, false
	}
	return r.requests[sel.Index], true
}

// SelectedFriend returns the friend under the selection, if any.
func (r *Roster) SelectedFriend() (Friend, bool) {
	sel, ok := r.nav.Selected()
	if !ok || sel.Kind != KindFriend {
		return Friend{}, false
	}
	return r.friends[sel.Index], true
}

// Label is the text drawn for a row.
func (r *Roster) Label(row Row) string {
	switch row.Kind {
	case KindHeader:
		switch row.Section() {
		case KindRequest:
			return "Requests"
		case KindGroup:
			return "Groups"
		case KindFriend:
			return "Friends"
		}
	case KindRequest:
		if row.Index < len(r.requests) {
			req := r.requests[row.Index]
			key := messenger.ShortKey(req.Key)
			if req.Message == "" {
				return key
			}
			return key + " " + req.Message
		}
	case KindGroup:
		if row.Index < len(r.groups) {
			return fmt.Sprintf("Groupchat %d", r.groups[row.Index].ID)
		}
	case KindFriend:
		if row.Index < len(r.friends) {
			f := r.friends[row.Index]
			if f.Status == "" {
				return f.Name
			}
			return f.Name + "   " + f.Status
		}
	}
	return ""
}

// Find selects the first item whose label contains query, ignoring case.
func (r *Roster) Find(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	total := r.Counts().Total()
	for abs := 0; abs < total; abs++ {
		row, _ := r.nav.counts.RowAt(abs)
		if row.Kind == KindHeader {
			continue
		}
		if strings.Contains(strings.ToLower(r.Label(row)), query) {
			return r.nav.Select(row)
		}
	}
	return false
}

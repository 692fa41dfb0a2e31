package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/stannis/internal/commands"
	"github.com/kobzarvs/stannis/internal/config"
	"github.com/kobzarvs/stannis/internal/contacts"
	"github.com/kobzarvs/stannis/internal/logger"
	"github.com/kobzarvs/stannis/internal/messenger"
	"github.com/kobzarvs/stannis/internal/prompt"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeSearch
)

// Prefix is the mode indicator shown in front of the prompt.
func (m Mode) Prefix() string {
	switch m {
	case ModeInsert:
		return "[i] "
	case ModeCommand:
		return "[:] "
	case ModeSearch:
		return "[/] "
	}
	return "[n] "
}

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeCommand:
		return "command"
	case ModeSearch:
		return "search"
	}
	return "normal"
}

// View owns the contact list, the prompt and the status line, and turns
// key presses and network events into changes to them.
type View struct {
	roster  *contacts.Roster
	prompt  *prompt.Prompt
	client  messenger.Client
	palette Palette
	keymap  map[string]string
	name    string
	mode    Mode
	status  string
	width   int
	height  int
	quit    bool
	sync    bool
}

func New(cfg config.Config, client messenger.Client) *View {
	p := prompt.New(prompt.Options{
		ScrollBefore: cfg.Prompt.ScrollBefore,
		ScrollAfter:  cfg.Prompt.ScrollAfter,
	})
	v := &View{
		roster:  contacts.NewRoster(0),
		prompt:  p,
		client:  client,
		palette: NewPalette(cfg.Theme),
		keymap:  cfg.Keymap.Normal,
		name:    cfg.Identity.Name,
	}
	v.prompt.SetPrefix(ModeNormal.Prefix(), v.width)
	return v
}

func (v *View) Roster() *contacts.Roster {
	return v.roster
}

func (v *View) Prompt() *prompt.Prompt {
	return v.prompt
}

func (v *View) Mode() Mode {
	return v.mode
}

func (v *View) Status() string {
	return v.status
}

func (v *View) SetStatus(msg string) {
	v.status = msg
}

// Quit reports whether the user asked to leave.
func (v *View) Quit() bool {
	return v.quit
}

// TakeSync reports and clears a pending full redraw request.
func (v *View) TakeSync() bool {
	s := v.sync
	v.sync = false
	return s
}

// Resize applies new terminal dimensions. The list gets every row but the
// prompt and status rows.
func (v *View) Resize(w, h int) {
	v.width = w
	v.height = h
	v.roster.Navigator().Resize(max(h-2, 0))
	v.prompt.Resize(w)
}

func (v *View) setMode(m Mode) {
	if v.mode != m {
		logger.Debug("mode changed", "from", v.mode.String(), "to", m.String())
	}
	v.mode = m
	v.prompt.SetPrefix(m.Prefix(), v.width)
}

func (v *View) HandleKey(ev *tcell.EventKey) {
	if v.mode == ModeNormal {
		v.handleNormalKey(ev)
		return
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		v.submit()
	case tcell.KeyEscape:
		v.prompt.Clear()
		v.setMode(ModeNormal)
	default:
		for _, code := range KeyCodes(ev) {
			v.prompt.Key(code, v.width)
		}
	}
}

func (v *View) handleNormalKey(ev *tcell.EventKey) {
	key := keyString(ev)
	action, ok := v.keymap[key]
	if !ok {
		return
	}
	logger.Debug("normal key", "key", key, "action", action)
	nav := v.roster.Navigator()
	switch action {
	case "move_down":
		nav.MoveDown()
	case "move_up":
		nav.MoveUp()
	case "enter_insert":
		v.setMode(ModeInsert)
	case "enter_command":
		v.setMode(ModeCommand)
	case "enter_search":
		v.setMode(ModeSearch)
	case "quit":
		v.quit = true
	case "redraw":
		v.sync = true
	default:
		v.status = "unknown action: " + action
	}
}

func (v *View) submit() {
	text := v.prompt.Text()
	v.prompt.Clear()
	switch v.mode {
	case ModeCommand:
		v.setMode(ModeNormal)
		v.runCommand(text)
	case ModeSearch:
		v.setMode(ModeNormal)
		if strings.TrimSpace(text) == "" {
			return
		}
		if !v.roster.Find(text) {
			v.status = "no match: " + text
		}
	case ModeInsert:
		v.sendMessage(text)
	}
}

func (v *View) sendMessage(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	friend, ok := v.roster.SelectedFriend()
	if !ok {
		v.status = "no friend selected"
		return
	}
	if err := v.client.SendMessage(friend.ID, text); err != nil {
		v.status = err.Error()
		return
	}
	v.status = "sent to " + friend.Name
}

func (v *View) runCommand(line string) {
	cmd, err := commands.Parse(line)
	if err != nil {
		v.status = err.Error()
		return
	}
	logger.Debug("command", "name", cmd.Name())
	switch c := cmd.(type) {
	case commands.Quit:
		v.quit = true
	case commands.AddFriend:
		err = v.client.AddFriend(c.Address, c.Message)
		if err == nil {
			v.status = "friend request sent"
		}
	case commands.Accept:
		req, ok := v.roster.SelectedRequest()
		if !ok {
			v.status = "no request selected"
			return
		}
		err = v.client.AcceptRequest(req.Key)
		if err == nil {
			v.roster.RemoveRequest(req.Key)
			v.status = "accepted " + messenger.ShortKey(req.Key)
		}
	case commands.Remove:
		friend, ok := v.roster.SelectedFriend()
		if !ok {
			v.status = "no friend selected"
			return
		}
		err = v.client.RemoveFriend(friend.ID)
		if err == nil {
			v.status = "removed " + friend.Name
		}
	case commands.NewGroup:
		err = v.client.CreateGroup()
	case commands.SetName:
		err = v.client.SetName(c.Text)
		if err == nil {
			v.name = c.Text
			v.status = "name set to " + c.Text
		}
	case commands.Help:
		v.status = strings.Join(commands.Usage, " | ")
	}
	if err != nil {
		logger.Warn("command failed", "name", cmd.Name(), "error", err)
		v.status = err.Error()
	}
}

// Apply folds a network event into the roster.
func (v *View) Apply(ev messenger.Event) {
	logger.Debug("event", "kind", string(ev.Kind), "friend", ev.FriendID)
	switch ev.Kind {
	case messenger.EventRequest:
		v.roster.AddRequest(ev.Key, ev.Message)
		v.status = "friend request from " + messenger.ShortKey(ev.Key)
	case messenger.EventFriendAdded:
		name := ev.Name
		if name == "" {
			name = messenger.ShortKey(ev.Key)
		}
		v.roster.AddFriend(ev.FriendID, name)
	case messenger.EventFriendRenamed:
		v.roster.RenameFriend(ev.FriendID, ev.Name)
	case messenger.EventFriendStatus:
		v.roster.SetFriendStatus(ev.FriendID, ev.Message)
	case messenger.EventFriendRemoved:
		v.roster.RemoveFriend(ev.FriendID)
	case messenger.EventGroupAdded:
		v.roster.AddGroup(ev.GroupID)
	case messenger.EventError:
		v.status = ev.Message
	default:
		v.status = fmt.Sprintf("unknown event %q", ev.Kind)
	}
}

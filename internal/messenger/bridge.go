package messenger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kobzarvs/stannis/internal/logger"
)

const requestTimeout = 10 * time.Second

var ErrTimeout = errors.New("bridge request timeout")

// Bridge talks to an external messenger process over its stdio using
// JSON-RPC 2.0 with Content-Length framing. Intents are requests; the
// process reports network changes as notifications.
type Bridge struct {
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	reader   *bufio.Reader
	events   chan Event
	timeout  time.Duration
	mu       sync.Mutex
	writeMu  sync.Mutex // serializes frames on stdin; never held with mu
	nextID   int
	handlers map[int]chan rpcResponse // pending requests
	stopped  bool
	log      *zap.SugaredLogger
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage
	Err    *RPCError
}

// RPCError is an error reported by the bridge process.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("bridge: %s (%d)", e.Message, e.Code)
}

type addFriendParams struct {
	Address string `json:"address"`
	Message string `json:"message"`
}

type keyParams struct {
	Key string `json:"key"`
}

type friendParams struct {
	ID int `json:"id"`
}

type sendParams struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type nameParams struct {
	Name string `json:"name"`
}

// notificationParams covers every notification the bridge sends.
type notificationParams struct {
	ID      int    `json:"id"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StartBridge spawns the bridge process and starts reading from it.
func StartBridge(command string, args ...string) (*Bridge, error) {
	cmd := exec.Command(command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	b := &Bridge{
		cmd:      cmd,
		stdin:    stdin,
		reader:   bufio.NewReader(stdout),
		events:   make(chan Event, eventBuffer),
		timeout:  requestTimeout,
		handlers: make(map[int]chan rpcResponse),
		log:      logger.Named("bridge"),
	}
	b.log.Infow("started", "command", command, "pid", cmd.Process.Pid)
	go b.readLoop()
	return b, nil
}

func (b *Bridge) Events() <-chan Event {
	return b.events
}

func (b *Bridge) AddFriend(address, message string) error {
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}
	return b.call("friend/add", addFriendParams{Address: addr.String(), Message: message})
}

func (b *Bridge) AcceptRequest(key string) error {
	return b.call("friend/accept", keyParams{Key: key})
}

func (b *Bridge) RemoveFriend(id int) error {
	return b.call("friend/remove", friendParams{ID: id})
}

func (b *Bridge) CreateGroup() error {
	return b.call("group/create", nil)
}

func (b *Bridge) SendMessage(id int, text string) error {
	return b.call("friend/send", sendParams{ID: id, Text: text})
}

func (b *Bridge) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return b.call("self/name", nameParams{Name: name})
}

func (b *Bridge) Stop() error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	b.stopped = true
	b.mu.Unlock()
	_ = b.stdin.Close()
	if b.cmd.Process == nil {
		return nil
	}
	_ = b.cmd.Process.Kill()
	_, _ = b.cmd.Process.Wait()
	return nil
}

func (b *Bridge) call(method string, params any) error {
	_, err := b.request(method, params)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// request sends a JSON-RPC request and waits for the response.
func (b *Bridge) request(method string, params any) (json.RawMessage, error) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil, ErrStopped
	}
	b.nextID++
	id := b.nextID
	ch := make(chan rpcResponse, 1)
	b.handlers[id] = ch
	b.mu.Unlock()

	msg := rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if err := b.send(msg); err != nil {
		b.forget(id)
		return nil, err
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, ErrStopped
		}
		if resp.Err != nil {
			return nil, resp.Err
		}
		return resp.Result, nil
	case <-time.After(b.timeout):
		b.forget(id)
		return nil, ErrTimeout
	}
}

func (b *Bridge) forget(id int) {
	b.mu.Lock()
	delete(b.handlers, id)
	b.mu.Unlock()
}

func (b *Bridge) send(v any) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return writeMessage(b.stdin, v)
}

func (b *Bridge) readLoop() {
	defer b.failPending()
	for {
		msg, err := readMessage(b.reader)
		if err != nil {
			b.mu.Lock()
			stopped := b.stopped
			b.mu.Unlock()
			if !stopped && !errors.Is(err, io.EOF) {
				sendEvent(b.events, Event{Kind: EventError, Message: err.Error()})
			}
			if !stopped {
				b.log.Warnw("closed", "error", err)
			}
			return
		}
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(msg, &envelope); err != nil {
			b.log.Debugw("malformed message", "error", err)
			continue
		}
		if rawMethod, ok := envelope["method"]; ok {
			var method string
			if err := json.Unmarshal(rawMethod, &method); err == nil {
				b.handleNotification(method, envelope["params"])
			}
			continue
		}
		if idRaw, ok := envelope["id"]; ok {
			var id int
			if err := json.Unmarshal(idRaw, &id); err == nil {
				b.handleResponse(id, envelope)
			}
		}
	}
}

func (b *Bridge) handleResponse(id int, envelope map[string]json.RawMessage) {
	b.mu.Lock()
	ch, ok := b.handlers[id]
	delete(b.handlers, id)
	b.mu.Unlock()
	if !ok {
		return
	}
	var resp rpcResponse
	if errRaw, ok := envelope["error"]; ok && string(errRaw) != "null" {
		resp.Err = &RPCError{}
		if err := json.Unmarshal(errRaw, resp.Err); err != nil {
			resp.Err.Message = string(errRaw)
		}
	} else {
		resp.Result = envelope["result"]
	}
	ch <- resp
}

func (b *Bridge) handleNotification(method string, raw json.RawMessage) {
	var p notificationParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			b.log.Debugw("bad notification params", "method", method, "error", err)
			return
		}
	}
	var ev Event
	switch method {
	case "friend/request":
		ev = Event{Kind: EventRequest, Key: p.Key, Message: p.Message}
	case "friend/added":
		ev = Event{Kind: EventFriendAdded, FriendID: p.ID, Key: p.Key, Name: p.Name}
	case "friend/name":
		ev = Event{Kind: EventFriendRenamed, FriendID: p.ID, Name: p.Name}
	case "friend/status":
		ev = Event{Kind: EventFriendStatus, FriendID: p.ID, Message: p.Status}
	case "friend/removed":
		ev = Event{Kind: EventFriendRemoved, FriendID: p.ID}
	case "group/added":
		ev = Event{Kind: EventGroupAdded, GroupID: p.ID}
	case "error":
		ev = Event{Kind: EventError, Message: p.Message}
	default:
		b.log.Debugw("notification ignored", "method", method)
		return
	}
	sendEvent(b.events, ev)
}

// failPending releases callers still waiting when the bridge goes away.
func (b *Bridge) failPending() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.handlers {
		delete(b.handlers, id)
		close(ch)
	}
}

func readMessage(r *bufio.Reader) ([]byte, error) {
	length := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "content-length") {
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				length = n
			}
		}
	}
	if length < 0 {
		return nil, errors.New("missing content-length")
	}
	buf := make([]byte, length)
	_, err := io.ReadFull(r, buf)
	return buf, err
}

// writeMessage frames one payload the way readMessage expects it.
func writeMessage(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(payload)); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

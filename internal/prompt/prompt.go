package prompt

import (
	"slices"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// WidthFunc reports how many terminal columns a codepoint occupies.
type WidthFunc func(r rune) int

// Options configures a Prompt. ScrollBefore and ScrollAfter place the cursor
// after a rescroll, as a fraction of the width left over after the prefix:
// ScrollBefore after a jump to the left, ScrollAfter after a jump to the right.
type Options struct {
	ScrollBefore float64
	ScrollAfter  float64
	Width        WidthFunc
}

func DefaultOptions() Options {
	return Options{
		ScrollBefore: 0.25,
		ScrollAfter:  0.75,
		Width:        runewidth.RuneWidth,
	}
}

// Span is what the prompt row should show: the prefix, then Text, with the
// terminal cursor at column Cursor. Narrow is set while the prefix alone
// does not fit the terminal.
type Span struct {
	Prefix string
	Text   string
	Cursor int
	Narrow bool
}

// Prompt is a single-row line editor. The buffer may be arbitrarily long;
// only buf[left:right] is shown after the prefix. Byte offsets always sit on
// codepoint boundaries and left <= cursor <= right holds after every call.
//
// Every operation takes the current terminal width and re-derives the
// window for it, so the width may change between calls.
type Prompt struct {
	buf          []byte
	prefix       string
	prefixWidth  int
	left         int
	right        int
	visibleWidth int
	cursor       int
	cursorTerm   int // absolute terminal column, prefix included
	collapsed    bool
	dec          Decoder
	width        WidthFunc
	before       float64
	after        float64
}

func New(opts Options) *Prompt {
	def := DefaultOptions()
	if opts.Width == nil {
		opts.Width = def.Width
	}
	if opts.ScrollBefore <= 0 || opts.ScrollBefore >= 1 {
		opts.ScrollBefore = def.ScrollBefore
	}
	if opts.ScrollAfter <= 0 || opts.ScrollAfter >= 1 {
		opts.ScrollAfter = def.ScrollAfter
	}
	return &Prompt{
		width:  opts.Width,
		before: opts.ScrollBefore,
		after:  opts.ScrollAfter,
	}
}

// Text returns the whole buffer.
func (p *Prompt) Text() string {
	return string(p.buf)
}

func (p *Prompt) Prefix() string {
	return p.prefix
}

func (p *Prompt) Len() int {
	return len(p.buf)
}

func (p *Prompt) Span() Span {
	return Span{
		Prefix: p.prefix,
		Text:   string(p.buf[p.left:p.right]),
		Cursor: p.cursorTerm,
		Narrow: p.collapsed,
	}
}

// SetPrefix replaces the mode indicator drawn before the text.
func (p *Prompt) SetPrefix(prefix string, cols int) {
	old := p.prefixWidth
	p.prefix = prefix
	p.prefixWidth = p.stringWidth(prefix)
	if !p.collapsed {
		p.cursorTerm += p.prefixWidth - old
	}
	p.fit(cols)
}

// Resize re-derives the window after a terminal width change.
func (p *Prompt) Resize(cols int) {
	p.fit(cols)
}

// Clear empties the buffer and resets the window. A collapsed prompt stays
// collapsed until the next call that knows the terminal width.
func (p *Prompt) Clear() {
	p.buf = p.buf[:0]
	p.left = 0
	p.right = 0
	p.cursor = 0
	p.visibleWidth = 0
	if !p.collapsed {
		p.cursorTerm = p.prefixWidth
	}
	p.dec.Reset()
}

// Insert puts r at the cursor. Codepoints without display width are dropped.
func (p *Prompt) Insert(r rune, cols int) {
	w := p.runeWidth(r)
	if w == 0 || !utf8.ValidRune(r) {
		return
	}
	usable := p.fit(cols)
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	p.buf = slices.Insert(p.buf, p.cursor, enc[:n]...)
	p.cursor += n
	if !usable {
		p.collapse(cols)
		return
	}
	p.right += n
	p.cursorTerm += w
	p.visibleWidth += w
	if p.cursorTerm >= cols {
		p.showRight(cols)
	}
	p.trimRight(cols)
}

// DeleteBefore removes the codepoint before the cursor (backspace).
func (p *Prompt) DeleteBefore(cols int) {
	if p.cursor == 0 {
		return
	}
	usable := p.fit(cols)
	r, n := utf8.DecodeLastRune(p.buf[:p.cursor])
	p.buf = slices.Delete(p.buf, p.cursor-n, p.cursor)
	p.cursor -= n
	if !usable {
		p.collapse(cols)
		return
	}
	p.right -= n
	if p.cursor < p.left {
		// The removed codepoint was just left of the window.
		p.left = p.cursor
		p.showLeft(cols)
		p.trimRight(cols)
		return
	}
	w := p.runeWidth(r)
	p.cursorTerm -= w
	p.visibleWidth -= w
	p.extendRight(cols)
}

// DeleteAt removes the codepoint under the cursor (forward delete).
func (p *Prompt) DeleteAt(cols int) {
	if p.cursor == len(p.buf) {
		return
	}
	usable := p.fit(cols)
	r, n := utf8.DecodeRune(p.buf[p.cursor:])
	p.buf = slices.Delete(p.buf, p.cursor, p.cursor+n)
	if !usable {
		p.collapse(cols)
		return
	}
	if p.right > p.cursor {
		p.right -= n
		p.visibleWidth -= p.runeWidth(r)
	}
	if p.left == p.right {
		p.showLeft(cols)
	}
	p.extendRight(cols)
}

// DeleteWordBefore removes everything from the start of the previous word
// up to the cursor.
func (p *Prompt) DeleteWordBefore(cols int) {
	if p.cursor == 0 {
		return
	}
	usable := p.fit(cols)
	start := prevWord(p.buf, p.cursor)
	var removedWidth int
	if usable && start >= p.left {
		removedWidth = p.bytesWidth(p.buf[start:p.cursor])
	}
	removed := p.cursor - start
	p.buf = slices.Delete(p.buf, start, p.cursor)
	p.cursor = start
	if !usable {
		p.collapse(cols)
		return
	}
	p.right -= removed
	if start >= p.left {
		p.cursorTerm -= removedWidth
		p.visibleWidth -= removedWidth
	} else {
		p.visibleWidth -= p.cursorTerm - p.prefixWidth
		p.left = start
		p.cursorTerm = p.prefixWidth
		p.showLeft(cols)
		p.trimRight(cols)
	}
	p.extendRight(cols)
}

func (p *Prompt) MoveLeft(cols int) {
	if p.cursor == 0 {
		return
	}
	_, n := utf8.DecodeLastRune(p.buf[:p.cursor])
	p.jumpLeft(p.cursor-n, cols)
}

func (p *Prompt) MoveRight(cols int) {
	if p.cursor == len(p.buf) {
		return
	}
	_, n := utf8.DecodeRune(p.buf[p.cursor:])
	p.jumpRight(p.cursor+n, cols)
}

func (p *Prompt) MoveWordLeft(cols int) {
	if p.cursor == 0 {
		return
	}
	p.jumpLeft(prevWord(p.buf, p.cursor), cols)
}

func (p *Prompt) MoveWordRight(cols int) {
	if p.cursor == len(p.buf) {
		return
	}
	p.jumpRight(nextWord(p.buf, p.cursor), cols)
}

func (p *Prompt) MoveHome(cols int) {
	if p.cursor == 0 {
		return
	}
	p.jumpLeft(0, cols)
}

func (p *Prompt) MoveEnd(cols int) {
	if p.cursor == len(p.buf) {
		return
	}
	p.jumpRight(len(p.buf), cols)
}

func (p *Prompt) jumpLeft(to, cols int) {
	if !p.fit(cols) {
		p.cursor = to
		p.collapse(cols)
		return
	}
	if to >= p.left {
		p.cursorTerm -= p.bytesWidth(p.buf[to:p.cursor])
		p.cursor = to
		return
	}
	p.visibleWidth += p.bytesWidth(p.buf[to:p.left])
	p.left = to
	p.cursor = to
	p.cursorTerm = p.prefixWidth
	p.showLeft(cols)
	p.trimRight(cols)
}

func (p *Prompt) jumpRight(to, cols int) {
	if !p.fit(cols) {
		p.cursor = to
		p.collapse(cols)
		return
	}
	p.cursorTerm += p.bytesWidth(p.buf[p.cursor:to])
	if to > p.right {
		p.visibleWidth += p.bytesWidth(p.buf[p.right:to])
		p.right = to
	}
	p.cursor = to
	// Keep room for the cell under the cursor.
	look := 1
	if p.cursor < p.right {
		r, _ := utf8.DecodeRune(p.buf[p.cursor:])
		look = p.runeWidth(r)
	}
	if p.cursorTerm+look > cols {
		p.showRight(cols)
		return
	}
	p.extendRight(cols)
}

// fit re-derives the window for cols and reports whether the editor has any
// room at all. Without room the window collapses to the cursor.
func (p *Prompt) fit(cols int) bool {
	if cols-p.prefixWidth <= 0 {
		p.collapse(cols)
		return false
	}
	if p.collapsed {
		p.collapsed = false
		p.left = p.cursor
		p.right = p.cursor
		p.visibleWidth = 0
		p.cursorTerm = p.prefixWidth
		p.showLeft(cols)
		p.extendRight(cols)
		return true
	}
	if p.cursorTerm >= cols {
		p.showRight(cols)
	}
	p.trimRight(cols)
	p.extendRight(cols)
	return true
}

func (p *Prompt) collapse(cols int) {
	p.collapsed = true
	p.left = p.cursor
	p.right = p.cursor
	p.visibleWidth = 0
	p.cursorTerm = max(cols-1, 0)
}

// showLeft moves the left edge back until the cursor sits about
// ScrollBefore of the available width in from the prefix.
func (p *Prompt) showLeft(cols int) {
	avail := cols - p.prefixWidth
	dest := p.prefixWidth + int(float64(avail)*p.before)
	for p.left > 0 && p.cursorTerm < dest {
		r, n := utf8.DecodeLastRune(p.buf[:p.left])
		w := p.runeWidth(r)
		if p.cursorTerm+w >= cols {
			break
		}
		p.left -= n
		p.cursorTerm += w
		p.visibleWidth += w
	}
}

// showRight releases codepoints from the left edge until the cursor sits
// about ScrollAfter of the available width in from the prefix, then refills
// the right side.
func (p *Prompt) showRight(cols int) {
	avail := cols - p.prefixWidth
	dest := min(p.prefixWidth+int(float64(avail)*p.after), cols-1)
	for p.left < p.cursor && p.cursorTerm > dest {
		r, n := utf8.DecodeRune(p.buf[p.left:])
		w := p.runeWidth(r)
		p.left += n
		p.cursorTerm -= w
		p.visibleWidth -= w
	}
	p.trimRight(cols)
	p.extendRight(cols)
}

// trimRight drops codepoints from the right edge while the window overflows.
// It never trims past the cursor.
func (p *Prompt) trimRight(cols int) {
	for p.prefixWidth+p.visibleWidth > cols && p.right > p.cursor {
		r, n := utf8.DecodeLastRune(p.buf[:p.right])
		p.right -= n
		p.visibleWidth -= p.runeWidth(r)
	}
}

// extendRight admits codepoints at the right edge while they fit.
func (p *Prompt) extendRight(cols int) {
	for p.right < len(p.buf) {
		r, n := utf8.DecodeRune(p.buf[p.right:])
		w := p.runeWidth(r)
		if p.prefixWidth+p.visibleWidth+w > cols {
			return
		}
		p.right += n
		p.visibleWidth += w
	}
}

func (p *Prompt) runeWidth(r rune) int {
	if w := p.width(r); w > 0 {
		return w
	}
	return 0
}

func (p *Prompt) bytesWidth(b []byte) int {
	w := 0
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		w += p.runeWidth(r)
		b = b[n:]
	}
	return w
}

func (p *Prompt) stringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += p.runeWidth(r)
	}
	return w
}

// prevWord returns the start of the word before pos: trailing spaces are
// skipped, then the word itself. Spaces are ASCII, so scanning bytes never
// splits a codepoint.
func prevWord(buf []byte, pos int) int {
	for pos > 0 && buf[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && buf[pos-1] != ' ' {
		pos--
	}
	return pos
}

// nextWord returns the start of the word after pos.
func nextWord(buf []byte, pos int) int {
	for pos < len(buf) && buf[pos] != ' ' {
		pos++
	}
	for pos < len(buf) && buf[pos] == ' ' {
		pos++
	}
	return pos
}

// Key handles one raw key code. Codes above 0xFF are named keys; the rest
// are input bytes, decoded first and then either treated as control keys
// or inserted.
func (p *Prompt) Key(code int, cols int) {
	if code > 0xFF {
		p.namedKey(tcell.Key(code), cols)
		return
	}
	if code < 0 {
		return
	}
	r, ok := p.dec.Push(byte(code))
	if !ok {
		return
	}
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		p.controlKey(r, cols)
		return
	}
	p.Insert(r, cols)
}

func (p *Prompt) controlKey(r rune, cols int) {
	switch r {
	case 0x01: // ^A
		p.MoveHome(cols)
	case 0x02: // ^B
		p.MoveLeft(cols)
	case 0x04: // ^D
		p.Clear()
	case 0x05: // ^E
		p.MoveEnd(cols)
	case 0x06: // ^F
		p.MoveRight(cols)
	case 0x08, 0x7F: // ^H, DEL
		p.DeleteBefore(cols)
	case 0x0E: // ^N
		p.MoveWordRight(cols)
	case 0x10: // ^P
		p.MoveWordLeft(cols)
	case 0x17: // ^W
		p.DeleteWordBefore(cols)
	case 0x18: // ^X
		p.DeleteAt(cols)
	}
}

func (p *Prompt) namedKey(key tcell.Key, cols int) {
	switch key {
	case tcell.KeyLeft:
		p.MoveLeft(cols)
	case tcell.KeyRight:
		p.MoveRight(cols)
	case tcell.KeyHome:
		p.MoveHome(cols)
	case tcell.KeyEnd:
		p.MoveEnd(cols)
	case tcell.KeyDelete:
		p.DeleteAt(cols)
	}
}

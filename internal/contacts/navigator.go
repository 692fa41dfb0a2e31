package contacts

import "iter"

// Kind identifies what a list row shows. Item kinds are ordered the way
// their sections are drawn.
type Kind int

const (
	KindHeader Kind = iota
	KindRequest
	KindGroup
	KindFriend
)

var sections = [...]Kind{KindRequest, KindGroup, KindFriend}

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindRequest:
		return "request"
	case KindGroup:
		return "group"
	case KindFriend:
		return "friend"
	}
	return "unknown"
}

// Row is one line of the contact list. For headers Index holds the Kind of
// the section the header introduces.
type Row struct {
	Kind  Kind
	Index int
}

func HeaderRow(section Kind) Row {
	return Row{Kind: KindHeader, Index: int(section)}
}

// Section returns the section the row belongs to.
func (r Row) Section() Kind {
	if r.Kind == KindHeader {
		return Kind(r.Index)
	}
	return r.Kind
}

// Counts holds the size of each section. Empty sections are not drawn,
// not even their header.
type Counts struct {
	Requests int
	Groups   int
	Friends  int
}

func (c Counts) Size(k Kind) int {
	switch k {
	case KindRequest:
		return c.Requests
	case KindGroup:
		return c.Groups
	case KindFriend:
		return c.Friends
	}
	return 0
}

// Total is the number of drawn rows, headers included.
func (c Counts) Total() int {
	total := 0
	for _, k := range sections {
		if n := c.Size(k); n > 0 {
			total += 1 + n
		}
	}
	return total
}

// Absolute returns the row's position in the drawn list.
func (c Counts) Absolute(r Row) int {
	abs := 0
	for _, k := range sections {
		if k == r.Section() {
			if r.Kind == KindHeader {
				return abs
			}
			return abs + 1 + r.Index
		}
		if n := c.Size(k); n > 0 {
			abs += 1 + n
		}
	}
	return abs
}

// RowAt is the inverse of Absolute.
func (c Counts) RowAt(abs int) (Row, bool) {
	if abs < 0 {
		return Row{}, false
	}
	for _, k := range sections {
		n := c.Size(k)
		if n == 0 {
			continue
		}
		if abs == 0 {
			return HeaderRow(k), true
		}
		if abs <= n {
			return Row{Kind: k, Index: abs - 1}, true
		}
		abs -= 1 + n
	}
	return Row{}, false
}

// Navigator keeps a selection and a scroll offset over the three sections.
// The selection never rests on a header, and while height > 0 it stays
// within top <= Absolute(selection) < top+height.
type Navigator struct {
	counts Counts
	sel    Row
	valid  bool
	top    int
	height int
}

func NewNavigator(c Counts, height int) *Navigator {
	n := &Navigator{height: height}
	n.SetCounts(c)
	return n
}

func (n *Navigator) Counts() Counts {
	return n.counts
}

func (n *Navigator) Selected() (Row, bool) {
	return n.sel, n.valid
}

func (n *Navigator) Top() int {
	return n.top
}

func (n *Navigator) Height() int {
	return n.height
}

func (n *Navigator) MoveUp() {
	if !n.valid {
		return
	}
	abs := n.counts.Absolute(n.sel)
	if n.top == 1 && abs == 1 && n.height > 1 {
		// Reveal the first header.
		n.top = 0
		return
	}
	prev, ok := n.prev(n.sel)
	if !ok {
		return
	}
	n.sel = prev
	if abs := n.counts.Absolute(prev); abs < n.top {
		n.top = abs
	}
}

func (n *Navigator) MoveDown() {
	if !n.valid {
		return
	}
	next, ok := n.next(n.sel)
	if !ok {
		return
	}
	n.sel = next
	n.raiseTop()
}

// Resize sets the number of visible rows. The selection never changes and
// top is only ever raised.
func (n *Navigator) Resize(height int) {
	n.height = height
	if !n.valid {
		return
	}
	if height <= 2 {
		n.top = n.counts.Absolute(n.sel)
		return
	}
	n.raiseTop()
}

// SetCounts applies new section sizes. A selection past the end of its
// section moves to the section's last row, or to a neighbouring section
// when its own became empty.
func (n *Navigator) SetCounts(c Counts) {
	n.counts = c
	switch {
	case !n.valid:
		n.sel, n.valid = n.first()
	case n.sel.Index < c.Size(n.sel.Kind):
	case c.Size(n.sel.Kind) > 0:
		n.sel.Index = c.Size(n.sel.Kind) - 1
	default:
		if row, ok := n.nextSection(n.sel.Kind); ok {
			n.sel = row
		} else if row, ok := n.prev(Row{Kind: n.sel.Kind}); ok {
			n.sel = row
		} else {
			n.valid = false
		}
	}
	n.clampTop()
}

// Select moves the selection to row if it names an existing item.
func (n *Navigator) Select(row Row) bool {
	if row.Kind == KindHeader || row.Index < 0 || row.Index >= n.counts.Size(row.Kind) {
		return false
	}
	n.sel = row
	n.valid = true
	if abs := n.counts.Absolute(row); abs < n.top {
		n.top = abs
	}
	n.raiseTop()
	return true
}

// Visible yields the drawn rows starting at top, at most height of them.
func (n *Navigator) Visible() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		total := n.counts.Total()
		for i := 0; i < n.height && n.top+i < total; i++ {
			row, _ := n.counts.RowAt(n.top + i)
			if !yield(i, row) {
				return
			}
		}
	}
}

func (n *Navigator) raiseTop() {
	abs := n.counts.Absolute(n.sel)
	if abs-n.top >= n.height {
		n.top = abs - max(n.height, 1) + 1
	}
}

func (n *Navigator) clampTop() {
	if !n.valid {
		n.top = 0
		return
	}
	abs := n.counts.Absolute(n.sel)
	if n.top > abs {
		n.top = abs
	}
	// Use rows freed at the bottom by a shrinking list.
	if spare := n.counts.Total() - n.top; spare < n.height {
		n.top = max(0, min(n.top, n.counts.Total()-n.height))
	}
	n.raiseTop()
}

func (n *Navigator) first() (Row, bool) {
	return n.nextSection(KindHeader)
}

// nextSection returns the first row of the first non-empty section after k.
func (n *Navigator) nextSection(k Kind) (Row, bool) {
	for _, s := range sections {
		if s > k && n.counts.Size(s) > 0 {
			return Row{Kind: s}, true
		}
	}
	return Row{}, false
}

func (n *Navigator) next(r Row) (Row, bool) {
	if r.Index+1 < n.counts.Size(r.Kind) {
		return Row{Kind: r.Kind, Index: r.Index + 1}, true
	}
	return n.nextSection(r.Kind)
}

func (n *Navigator) prev(r Row) (Row, bool) {
	if r.Index > 0 {
		return Row{Kind: r.Kind, Index: r.Index - 1}, true
	}
	for k := r.Kind - 1; k >= KindRequest; k-- {
		if size := n.counts.Size(k); size > 0 {
			return Row{Kind: k, Index: size - 1}, true
		}
	}
	return Row{}, false
}

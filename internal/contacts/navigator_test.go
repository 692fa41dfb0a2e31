package contacts

import (
	"math/rand/v2"
	"testing"
)

func checkNavigator(t *testing.T, n *Navigator) {
	t.Helper()
	sel, ok := n.Selected()
	if !ok {
		if n.counts.Total() != 0 {
			t.Fatalf("no selection with counts %+v", n.counts)
		}
		return
	}
	if sel.Kind == KindHeader {
		t.Fatalf("selection on header %+v", sel)
	}
	if sel.Index < 0 || sel.Index >= n.counts.Size(sel.Kind) {
		t.Fatalf("selection %+v out of range for %+v", sel, n.counts)
	}
	if n.height <= 0 {
		return
	}
	abs := n.counts.Absolute(sel)
	if abs < n.top || abs >= n.top+n.height {
		t.Fatalf("selection %d outside [%d, %d)", abs, n.top, n.top+n.height)
	}
}

func TestAbsoluteRowAtInverse(t *testing.T) {
	for _, c := range []Counts{
		{0, 0, 0},
		{1, 0, 0},
		{0, 2, 3},
		{2, 0, 5},
		{3, 4, 5},
	} {
		total := c.Total()
		for abs := 0; abs < total; abs++ {
			row, ok := c.RowAt(abs)
			if !ok {
				t.Fatalf("%+v: RowAt(%d) missing", c, abs)
			}
			if got := c.Absolute(row); got != abs {
				t.Fatalf("%+v: Absolute(RowAt(%d)) = %d", c, abs, got)
			}
		}
		if _, ok := c.RowAt(total); ok {
			t.Fatalf("%+v: RowAt(%d) past the end", c, total)
		}
	}
}

func TestAbsoluteFormula(t *testing.T) {
	c := Counts{Requests: 2, Groups: 3, Friends: 4}
	if got := c.Absolute(Row{Kind: KindRequest, Index: 1}); got != 2 {
		t.Fatalf("request 1 = %d, want 2", got)
	}
	if got := c.Absolute(Row{Kind: KindGroup, Index: 0}); got != 4 {
		t.Fatalf("group 0 = %d, want 4", got)
	}
	if got := c.Absolute(Row{Kind: KindFriend, Index: 3}); got != 11 {
		t.Fatalf("friend 3 = %d, want 11", got)
	}
	if got := c.Total(); got != 12 {
		t.Fatalf("Total = %d, want 12", got)
	}
}

func TestMoveAcrossSections(t *testing.T) {
	n := NewNavigator(Counts{Requests: 0, Groups: 2, Friends: 3}, 10)
	if sel, _ := n.Selected(); sel != (Row{Kind: KindGroup, Index: 0}) {
		t.Fatalf("initial selection = %+v, want group 0", sel)
	}
	n.MoveUp()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindGroup, Index: 0}) {
		t.Fatalf("MoveUp at first row moved to %+v", sel)
	}
	n.MoveDown()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindGroup, Index: 1}) {
		t.Fatalf("selection = %+v, want group 1", sel)
	}
	n.MoveDown()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindFriend, Index: 0}) {
		t.Fatalf("selection = %+v, want friend 0", sel)
	}
	n.MoveDown()
	n.MoveDown()
	n.MoveDown()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindFriend, Index: 2}) {
		t.Fatalf("selection = %+v, want friend 2", sel)
	}
	n.MoveUp()
	n.MoveUp()
	n.MoveUp()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindGroup, Index: 1}) {
		t.Fatalf("selection = %+v, want group 1", sel)
	}
}

func TestScrollDown(t *testing.T) {
	n := NewNavigator(Counts{Requests: 5, Groups: 5, Friends: 7}, 5)
	if n.counts.Total() != 20 {
		t.Fatalf("Total = %d, want 20", n.counts.Total())
	}
	for i := 0; i < 30; i++ {
		n.MoveDown()
		checkNavigator(t, n)
	}
	sel, _ := n.Selected()
	if abs := n.counts.Absolute(sel); abs != 19 {
		t.Fatalf("selection at %d, want 19", abs)
	}
	if n.Top() != 15 {
		t.Fatalf("Top = %d, want 15", n.Top())
	}
}

func TestMoveUpRevealsFirstHeader(t *testing.T) {
	n := NewNavigator(Counts{Requests: 3, Friends: 3}, 3)
	n.MoveDown()
	n.MoveDown()
	if n.Top() != 1 {
		t.Fatalf("Top = %d, want 1", n.Top())
	}
	n.MoveUp()
	n.MoveUp()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindRequest, Index: 0}) || n.Top() != 1 {
		t.Fatalf("selection %+v top %d, want request 0 at top 1", sel, n.Top())
	}
	n.MoveUp()
	if sel, _ := n.Selected(); sel != (Row{Kind: KindRequest, Index: 0}) || n.Top() != 0 {
		t.Fatalf("selection %+v top %d, want request 0 at top 0", sel, n.Top())
	}
}

func TestEmptyNavigator(t *testing.T) {
	n := NewNavigator(Counts{}, 10)
	n.MoveUp()
	n.MoveDown()
	n.Resize(1)
	if _, ok := n.Selected(); ok {
		t.Fatalf("empty navigator has a selection")
	}
	if n.Top() != 0 {
		t.Fatalf("Top = %d, want 0", n.Top())
	}
	count := 0
	for range n.Visible() {
		count++
	}
	if count != 0 {
		t.Fatalf("Visible yielded %d rows, want 0", count)
	}
}

func TestResize(t *testing.T) {
	n := NewNavigator(Counts{Friends: 20}, 10)
	for i := 0; i < 8; i++ {
		n.MoveDown()
	}
	n.Resize(4)
	if n.Top() != 6 {
		t.Fatalf("Top = %d, want 6", n.Top())
	}
	n.Resize(20)
	if n.Top() != 6 {
		t.Fatalf("Top = %d after growing, want 6", n.Top())
	}
	n.Resize(2)
	if n.Top() != 9 {
		t.Fatalf("Top = %d, want 9", n.Top())
	}
	if sel, _ := n.Selected(); sel != (Row{Kind: KindFriend, Index: 8}) {
		t.Fatalf("selection changed to %+v", sel)
	}
}

func TestSetCountsClampsSelection(t *testing.T) {
	n := NewNavigator(Counts{Requests: 2, Groups: 1, Friends: 4}, 10)
	n.Select(Row{Kind: KindFriend, Index: 3})
	n.SetCounts(Counts{Requests: 2, Groups: 1, Friends: 2})
	if sel, _ := n.Selected(); sel != (Row{Kind: KindFriend, Index: 1}) {
		t.Fatalf("selection = %+v, want friend 1", sel)
	}
	n.SetCounts(Counts{Requests: 2, Groups: 1})
	if sel, _ := n.Selected(); sel != (Row{Kind: KindGroup, Index: 0}) {
		t.Fatalf("selection = %+v, want group 0", sel)
	}
	n.Select(Row{Kind: KindRequest, Index: 1})
	n.SetCounts(Counts{Groups: 1})
	if sel, _ := n.Selected(); sel != (Row{Kind: KindGroup, Index: 0}) {
		t.Fatalf("selection = %+v, want group 0", sel)
	}
	n.SetCounts(Counts{})
	if _, ok := n.Selected(); ok {
		t.Fatalf("selection survived empty counts")
	}
	n.SetCounts(Counts{Friends: 1})
	if sel, ok := n.Selected(); !ok || sel != (Row{Kind: KindFriend, Index: 0}) {
		t.Fatalf("selection = %+v, %v, want friend 0", sel, ok)
	}
}

func TestSelectRejectsHeaders(t *testing.T) {
	n := NewNavigator(Counts{Groups: 2}, 10)
	if n.Select(HeaderRow(KindGroup)) {
		t.Fatalf("Select accepted a header")
	}
	if n.Select(Row{Kind: KindFriend, Index: 0}) {
		t.Fatalf("Select accepted a missing friend")
	}
}

func TestVisible(t *testing.T) {
	n := NewNavigator(Counts{Requests: 1, Groups: 1, Friends: 2}, 4)
	var got []Row
	for i, row := range n.Visible() {
		if i != len(got) {
			t.Fatalf("physical row %d, want %d", i, len(got))
		}
		got = append(got, row)
	}
	want := []Row{
		HeaderRow(KindRequest),
		{Kind: KindRequest, Index: 0},
		HeaderRow(KindGroup),
		{Kind: KindGroup, Index: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("Visible yielded %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	// Restartable and stoppable.
	for range n.Visible() {
		break
	}
	count := 0
	for range n.Visible() {
		count++
	}
	if count != 4 {
		t.Fatalf("second pass yielded %d rows, want 4", count)
	}
}

func TestRandomMovesKeepSelectionVisible(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	n := NewNavigator(Counts{Requests: 2, Groups: 3, Friends: 5}, 4)
	for i := 0; i < 5000; i++ {
		switch rng.IntN(6) {
		case 0, 1:
			n.MoveUp()
		case 2, 3:
			n.MoveDown()
		case 4:
			n.Resize(1 + rng.IntN(12))
		case 5:
			n.SetCounts(Counts{
				Requests: rng.IntN(4),
				Groups:   rng.IntN(4),
				Friends:  rng.IntN(8),
			})
		}
		checkNavigator(t, n)
	}
}

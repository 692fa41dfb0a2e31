package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/stannis/internal/contacts"
)

// Render draws the list, the prompt row and the status row. It only reads
// view state; callers apply size changes with Resize first.
func (v *View) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	promptY := h - 2
	statusY := h - 1
	if h < 2 {
		promptY = h - 1
		statusY = -1
	}
	listHeight := max(h-2, 0)

	s.SetStyle(v.palette.Default)
	s.Clear()

	nav := v.roster.Navigator()
	sel, hasSel := nav.Selected()
	for y, row := range nav.Visible() {
		if y >= listHeight {
			break
		}
		if row.Kind == contacts.KindHeader {
			v.drawHeader(s, y, w, v.roster.Label(row))
			continue
		}
		style := v.palette.Default
		if hasSel && row == sel {
			style = v.palette.Selected
		}
		clearLine(s, y, w, style)
		drawText(s, 1, y, w, v.roster.Label(row), style)
	}

	span := v.prompt.Span()
	clearLine(s, promptY, w, v.palette.Prompt)
	x := drawText(s, 0, promptY, w, span.Prefix, v.palette.Prompt)
	if !span.Narrow {
		drawText(s, x, promptY, w, span.Text, v.palette.Prompt)
	}

	if statusY >= 0 {
		v.drawStatus(s, statusY, w)
	}

	if v.mode == ModeNormal {
		s.HideCursor()
		s.Show()
		return
	}
	cx := min(span.Cursor, w-1)
	s.ShowCursor(cx, promptY)
	s.Show()
}

func (v *View) drawHeader(s tcell.Screen, y, w int, title string) {
	clearLine(s, y, w, v.palette.Default)
	x := drawText(s, 0, y, w, title, v.palette.Header)
	if x < w {
		x++
	}
	for ; x < w; x++ {
		s.SetContent(x, y, '─', nil, v.palette.Separator)
	}
}

func (v *View) drawStatus(s tcell.Screen, y, w int) {
	clearLine(s, y, w, v.palette.Status)
	right := v.name + " "
	rightWidth := runewidth.StringWidth(right)
	leftEnd := w
	if rightWidth < w {
		leftEnd = w - rightWidth - 1
		drawText(s, w-rightWidth, y, w, right, v.palette.Status)
	}
	drawText(s, 1, y, leftEnd, v.status, v.palette.Status)
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes text from column x, stopping before a codepoint that
// would cross maxX. It returns the column after the last one written.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw <= 0 {
			continue
		}
		if x+rw > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

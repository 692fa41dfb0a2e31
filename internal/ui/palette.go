package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/stannis/internal/config"
)

// Palette holds every style the view draws with. It is built once from the
// theme and never changes afterwards.
type Palette struct {
	Default   tcell.Style
	Header    tcell.Style
	Separator tcell.Style
	Selected  tcell.Style
	Status    tcell.Style
	Prompt    tcell.Style
}

func NewPalette(theme config.Theme) Palette {
	def := config.Default().Theme
	fg := parseColor(theme.Foreground, parseColor(def.Foreground, tcell.ColorWhite))
	bg := parseColor(theme.Background, parseColor(def.Background, tcell.ColorBlack))
	color := func(name, fallback string) tcell.Color {
		return parseColor(name, parseColor(fallback, fg))
	}
	return Palette{
		Default:   tcell.StyleDefault.Foreground(fg).Background(bg),
		Header:    tcell.StyleDefault.Foreground(color(theme.HeaderForeground, def.HeaderForeground)).Background(bg).Bold(true),
		Separator: tcell.StyleDefault.Foreground(color(theme.SeparatorForeground, def.SeparatorForeground)).Background(bg),
		Selected: tcell.StyleDefault.
			Foreground(color(theme.SelectedForeground, def.SelectedForeground)).
			Background(color(theme.SelectedBackground, def.SelectedBackground)).
			Bold(true),
		Status: tcell.StyleDefault.
			Foreground(color(theme.StatusForeground, def.StatusForeground)).
			Background(color(theme.StatusBackground, def.StatusBackground)),
		Prompt: tcell.StyleDefault.
			Foreground(color(theme.PromptForeground, def.PromptForeground)).
			Background(color(theme.PromptBackground, def.PromptBackground)),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

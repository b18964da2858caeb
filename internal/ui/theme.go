package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/everyride/marchmagic/internal/engine"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Winner     lipgloss.Color
	Loser      lipgloss.Color
	Warning    lipgloss.Color
	Rounds     map[engine.RoundID]lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#cba6f7"),
		Border:     lipgloss.Color("#585b70"),
		Winner:     lipgloss.Color("#94e2d5"),
		Loser:      lipgloss.Color("#6c7086"),
		Warning:    lipgloss.Color("#f9e2af"),
		Rounds: map[engine.RoundID]lipgloss.Color{
			engine.RoundR1: lipgloss.Color("#89b4fa"),
			engine.RoundR2: lipgloss.Color("#94e2d5"),
			engine.RoundR3: lipgloss.Color("#a6e3a1"),
			engine.RoundR4: lipgloss.Color("#f9e2af"),
			engine.RoundR5: lipgloss.Color("#f38ba8"),
		},
	},
	"dracula": {
		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#343746"),
		Text:       lipgloss.Color("#f8f8f2"),
		Muted:      lipgloss.Color("#6272a4"),
		Accent:     lipgloss.Color("#ff79c6"),
		Border:     lipgloss.Color("#44475a"),
		Winner:     lipgloss.Color("#50fa7b"),
		Loser:      lipgloss.Color("#6272a4"),
		Warning:    lipgloss.Color("#f1fa8c"),
		Rounds: map[engine.RoundID]lipgloss.Color{
			engine.RoundR1: lipgloss.Color("#8be9fd"),
			engine.RoundR2: lipgloss.Color("#50fa7b"),
			engine.RoundR3: lipgloss.Color("#f1fa8c"),
			engine.RoundR4: lipgloss.Color("#ffb86c"),
			engine.RoundR5: lipgloss.Color("#ff79c6"),
		},
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

func (p palette) roundColor(id engine.RoundID) lipgloss.Color {
	if c, ok := p.Rounds[id]; ok {
		return c
	}
	return p.Accent
}

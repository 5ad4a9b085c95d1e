package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-timestep/internal/core"
)

// palette holds the ANSI color for each core.Color; empty means the
// terminal default.
var palette = [...]lipgloss.Color{
	core.ColorRed:         "1",
	core.ColorGreen:       "2",
	core.ColorYellow:      "3",
	core.ColorBlue:        "4",
	core.ColorMagenta:     "5",
	core.ColorCyan:        "6",
	core.ColorWhite:       "7",
	core.ColorBrightWhite: "15",
	core.ColorOrange:      "208",
	core.ColorGray:        "245",
}

func cellStyle(c core.Color) lipgloss.Style {
	st := lipgloss.NewStyle()
	if int(c) < len(palette) && palette[c] != "" {
		st = st.Foreground(palette[c])
	}
	if c == core.ColorBrightWhite {
		st = st.Bold(true)
	}
	return st
}

// RenderScreen styles a screen buffer for the terminal, one style span per
// run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	var line, span strings.Builder
	for y := range rows {
		line.Reset()
		span.Reset()
		color := s.GetCell(0, y).Color
		for x := range s.Width() {
			c := s.GetCell(x, y)
			if c.Color != color {
				line.WriteString(cellStyle(color).Render(span.String()))
				span.Reset()
				color = c.Color
			}
			span.WriteRune(c.Rune)
		}
		line.WriteString(cellStyle(color).Render(span.String()))
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}

// Package preview draws a resolved timeline in the terminal.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

var tileBase = lipgloss.NewStyle().
	Width(config.PreviewTileWidth).
	Padding(1, 2).
	MarginRight(1).
	MarginBottom(1)

// Render lays snapshots out as coloured tiles, config.PreviewColumns per row.
func Render(snaps []engine.Snapshot, showsBackground bool) string {
	if len(snaps) == 0 {
		return ""
	}

	var rows []string
	for start := 0; start < len(snaps); start += config.PreviewColumns {
		end := start + config.PreviewColumns
		if end > len(snaps) {
			end = len(snaps)
		}

		tiles := make([]string, 0, end-start)
		for _, s := range snaps[start:end] {
			tiles = append(tiles, Tile(s, showsBackground))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return strings.Join(rows, "\n")
}

// Tile renders a single snapshot the way the widget window lays it out:
// emoji and weekday on the first line, the large day number below.
func Tile(s engine.Snapshot, showsBackground bool) string {
	weekdayColor, dayColor := s.Config.TextColors(showsBackground)

	style := tileBase.Copy()
	if showsBackground {
		style = style.Background(lipgloss.Color(s.Config.BackgroundColor.Hex()))
	}

	weekday := lipgloss.NewStyle().
		Bold(true).
		Italic(s.Entry.ShowFunFont).
		Foreground(lipgloss.Color(weekdayColor.Hex())).
		Render(s.Weekday)

	day := lipgloss.NewStyle().
		Bold(true).
		Italic(s.Entry.ShowFunFont).
		Foreground(lipgloss.Color(dayColor.Hex())).
		Render(s.Day)

	header := s.Config.Emoji + " " + weekday
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", day))
}

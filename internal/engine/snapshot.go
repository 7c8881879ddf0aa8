package engine

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// Snapshot is a DayEntry joined with everything needed to draw it.
// It decouples the UI from the theme and calendar logic.
type Snapshot struct {
	Entry  DayEntry
	Config DisplayConfig

	// Weekday is the localized wide weekday name ("Tuesday").
	Weekday string

	// Day is the day-of-month label ("5").
	Day string
}

// Summary is the one-line text used for calendar events and tray labels.
func (s Snapshot) Summary() string {
	return fmt.Sprintf(config.FormatSummary, s.Config.Emoji, s.Weekday, s.Day)
}

// snapshotJSON is the wire shape served on the JSON feed.
type snapshotJSON struct {
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	Day          string `json:"day"`
	Emoji        string `json:"emoji"`
	Background   string `json:"background"`
	WeekdayColor string `json:"weekday_color"`
	DayColor     string `json:"day_color"`
	FunFont      bool   `json:"fun_font"`
}

// EncodeSnapshotsJSON renders snapshots for the JSON feed.
func EncodeSnapshotsJSON(snaps []Snapshot) ([]byte, error) {
	out := make([]snapshotJSON, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, snapshotJSON{
			Date:         s.Entry.Date.Format(config.DateFormatFullDash),
			Weekday:      s.Weekday,
			Day:          s.Day,
			Emoji:        s.Config.Emoji,
			Background:   s.Config.BackgroundColor.Hex(),
			WeekdayColor: s.Config.WeekdayTextColor.Hex(),
			DayColor:     s.Config.DayTextColor.Hex(),
			FunFont:      s.Entry.ShowFunFont,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	return data, nil
}

// snapshot resolves one entry and formats its labels.
func (g *Generator) snapshot(resolver *Resolver, entry DayEntry) (Snapshot, error) {
	cfg, err := resolver.Resolve(entry.Date)
	if err != nil {
		return Snapshot{}, err
	}

	weekday := entry.Date.Weekday().String()
	if g.FormatWeekday != nil {
		weekday = g.FormatWeekday(entry.Date.Weekday())
	}

	return Snapshot{
		Entry:   entry,
		Config:  cfg,
		Weekday: weekday,
		Day:     strconv.Itoa(entry.Date.Day()),
	}, nil
}

// Snapshots resolves every entry of a timeline, in order.
func (g *Generator) Snapshots(resolver *Resolver, tl Timeline) ([]Snapshot, error) {
	snaps := make([]Snapshot, 0, len(tl.Entries))
	for _, e := range tl.Entries {
		s, err := g.snapshot(resolver, e)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

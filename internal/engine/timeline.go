package engine

import (
	"time"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// DayEntry is one scheduled snapshot of the widget.
type DayEntry struct {
	// Date is the start of the displayed day.
	Date time.Time

	// ShowFunFont asks the renderer for the decorative typeface.
	ShowFunFont bool
}

// RefreshPolicy tells the host when a new timeline is needed.
type RefreshPolicy int

const (
	// PolicyAtEnd requests a new timeline once the last entry's date has passed.
	PolicyAtEnd RefreshPolicy = iota
	// PolicyNever marks placeholder timelines the host replaces on its own.
	PolicyNever
)

func (p RefreshPolicy) String() string {
	switch p {
	case PolicyAtEnd:
		return "at_end"
	case PolicyNever:
		return "never"
	default:
		return "unknown"
	}
}

// Timeline is an ordered run of consecutive day entries.
type Timeline struct {
	Entries []DayEntry
	Policy  RefreshPolicy
}

// RefreshAt returns the instant after which the host must regenerate.
// The boolean is false when the policy never expires.
func (t Timeline) RefreshAt() (time.Time, bool) {
	if t.Policy != PolicyAtEnd || len(t.Entries) == 0 {
		return time.Time{}, false
	}
	return t.Entries[len(t.Entries)-1].Date, true
}

// Current returns the index of the latest entry whose date is not after now.
// It returns -1 when now precedes the whole timeline.
func (t Timeline) Current(now time.Time) int {
	idx := -1
	for i, e := range t.Entries {
		if e.Date.After(now) {
			break
		}
		idx = i
	}
	return idx
}

// GenerateEntries produces count consecutive start-of-day entries beginning
// with the day of ref. A count of zero or less selects the default of seven.
// Each call returns a fresh slice.
func (g *Generator) GenerateEntries(ref time.Time, count int, showFunFont bool) ([]DayEntry, error) {
	if count <= 0 {
		count = config.DefaultEntryCount
	}

	entries := make([]DayEntry, 0, count)
	for offset := 0; offset < count; offset++ {
		shifted, err := g.Calendar.AddDays(ref, offset)
		if err != nil {
			return nil, err
		}
		start, err := g.Calendar.StartOfDay(shifted)
		if err != nil {
			return nil, err
		}

		if offset > 0 && !isNextDay(entries[offset-1].Date, start) {
			return nil, &DateArithmeticError{Op: OpAddDays, Date: ref, Offset: offset, Err: ErrNotConsecutive}
		}

		entries = append(entries, DayEntry{Date: start, ShowFunFont: showFunFont})
	}
	return entries, nil
}

// Timeline wraps GenerateEntries with the refresh-at-end policy.
func (g *Generator) Timeline(ref time.Time, count int, showFunFont bool) (Timeline, error) {
	entries, err := g.GenerateEntries(ref, count, showFunFont)
	if err != nil {
		return Timeline{}, err
	}
	return Timeline{Entries: entries, Policy: PolicyAtEnd}, nil
}

// Placeholder returns a single-entry timeline for today, used while the
// first real refresh is running.
func (g *Generator) Placeholder() (Timeline, error) {
	start, err := g.Calendar.StartOfDay(g.Calendar.Now())
	if err != nil {
		return Timeline{}, err
	}
	return Timeline{Entries: []DayEntry{{Date: start}}, Policy: PolicyNever}, nil
}

func isNextDay(prev, next time.Time) bool {
	y, m, d := prev.Date()
	want := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
	ny, nm, nd := next.Date()
	return want.Year() == ny && want.Month() == nm && want.Day() == nd
}

package engine

import (
	"time"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Calendar provides the day-granularity arithmetic used by the resolver and
// the timeline generator. Implementations decide the timezone that defines
// "start of day".
type Calendar interface {
	Clock

	// StartOfDay truncates t to midnight in the calendar's location.
	StartOfDay(t time.Time) (time.Time, error)

	// AddDays shifts t by n calendar days, keeping the wall-clock time.
	AddDays(t time.Time, n int) (time.Time, error)

	// MonthOf returns the month number (1-12) of t in the calendar's location.
	MonthOf(t time.Time) int
}

// LocalCalendar is the Gregorian calendar in a fixed location.
// A nil Location means time.Local, a nil Clock means RealClock.
type LocalCalendar struct {
	Clock    Clock
	Location *time.Location
}

// NewLocalCalendar returns a calendar bound to the system timezone and clock.
func NewLocalCalendar() *LocalCalendar {
	return &LocalCalendar{Clock: RealClock{}}
}

// Now returns the clock's current instant expressed in the calendar's location.
func (c *LocalCalendar) Now() time.Time {
	if c.Clock == nil {
		return time.Now().In(c.location())
	}
	return c.Clock.Now().In(c.location())
}

// StartOfDay implements Calendar.
func (c *LocalCalendar) StartOfDay(t time.Time) (time.Time, error) {
	loc := c.location()
	y, m, d := t.In(loc).Date()
	if !yearSupported(y) {
		return time.Time{}, &DateArithmeticError{Op: OpStartOfDay, Date: t, Err: ErrDateOutOfRange}
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// AddDays implements Calendar.
// AddDate normalizes on the wall clock, so a DST jump between t and the
// result does not move the time of day.
func (c *LocalCalendar) AddDays(t time.Time, n int) (time.Time, error) {
	local := t.In(c.location())
	if !yearSupported(local.Year()) {
		return time.Time{}, &DateArithmeticError{Op: OpAddDays, Date: t, Offset: n, Err: ErrDateOutOfRange}
	}

	shifted := local.AddDate(0, 0, n)
	if !yearSupported(shifted.Year()) {
		return time.Time{}, &DateArithmeticError{Op: OpAddDays, Date: t, Offset: n, Err: ErrDateOutOfRange}
	}
	return shifted, nil
}

// MonthOf implements Calendar.
func (c *LocalCalendar) MonthOf(t time.Time) int {
	return int(t.In(c.location()).Month())
}

func (c *LocalCalendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func yearSupported(year int) bool {
	return year >= config.MinCalendarYear && year <= config.MaxCalendarYear
}

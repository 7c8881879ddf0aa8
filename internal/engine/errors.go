package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrConfiguration  = errors.New(config.ErrConfiguration)
	ErrDateArithmetic = errors.New(config.ErrDateArithmetic)

	ErrDateOutOfRange = errors.New(config.ErrDateRange)
	ErrNotConsecutive = errors.New(config.ErrDateNotConsecutive)

	ErrThemeTooLarge = errors.New(config.ErrThemeTooLarge)
	ErrThemeNotYAML  = errors.New(config.ErrThemeNotYAML)
)

// Operations reported by DateArithmeticError.
const (
	OpStartOfDay = "start_of_day"
	OpAddDays    = "add_days"
)

// ConfigurationError reports a month that has no usable theme entry.
// Month carries the offending value, which may lie outside 1-12.
type ConfigurationError struct {
	Month  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s (month %d)", config.ErrConfiguration, e.Reason, e.Month)
}

// Is makes errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// DateArithmeticError reports a start-of-day or day-offset computation the
// calendar could not represent.
type DateArithmeticError struct {
	Op     string
	Date   time.Time
	Offset int
	Err    error
}

func (e *DateArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s %s%+d: %v",
		config.ErrDateArithmetic,
		e.Op,
		e.Date.Format(config.DateFormatFullDash),
		e.Offset,
		e.Err,
	)
}

func (e *DateArithmeticError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDateArithmetic) succeed.
func (e *DateArithmeticError) Is(target error) bool {
	return target == ErrDateArithmetic
}

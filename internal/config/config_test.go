package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"UIDSalt", config.UIDSalt},
		{"DefaultPort", config.DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 7, config.DefaultEntryCount, "A timeline covers one week")
	assert.Equal(t, config.ThemeModeBuiltin, config.DefaultThemeMode)
	assert.Equal(t, 24*time.Hour, config.DefaultICalRefresh)

	assert.Equal(t, 1, config.MinCalendarYear)
	assert.Equal(t, 9999, config.MaxCalendarYear)

	assert.Greater(t, config.GradientDarken, 0.0)
	assert.Less(t, config.GradientDarken, 1.0)

	// Verify Timeout parsing works as expected
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Monthly-Widget/"), "UserAgent must start with AppName/")
}

// TestWeekdayKeys_Order maps time.Weekday values to their translation keys.
func TestWeekdayKeys_Order(t *testing.T) {
	assert.Equal(t, config.TKeyWeekdaySunday, config.WeekdayKeys[time.Sunday])
	assert.Equal(t, config.TKeyWeekdayMonday, config.WeekdayKeys[time.Monday])
	assert.Equal(t, config.TKeyWeekdaySaturday, config.WeekdayKeys[time.Saturday])

	seen := make(map[string]bool)
	for _, k := range config.WeekdayKeys {
		assert.NotEmpty(t, k)
		assert.False(t, seen[k], "duplicate weekday key %s", k)
		seen[k] = true
	}
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	// Timeouts
	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	// Scheduler
	assert.Greater(t, config.MinWakeup, 0*time.Second)
	assert.Greater(t, config.RetryWakeup, config.MinWakeup)

	// Limits
	assert.Greater(t, config.MaxThemeSize, 0, "MaxThemeSize must be positive")
	assert.LessOrEqual(t, config.MaxThemeSize, 16*1024*1024, "A theme file is small text")
	assert.Less(t, config.MinPort, config.MaxPort)
}

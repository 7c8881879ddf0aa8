package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

func novemberSnapshot(t *testing.T, funFont bool) engine.Snapshot {
	t.Helper()
	cfg, err := engine.DefaultMonthTable().ResolveMonth(11)
	require.NoError(t, err)
	return engine.Snapshot{
		Entry:   engine.DayEntry{Date: novemberMorning, ShowFunFont: funFont},
		Config:  cfg,
		Weekday: "Monday",
		Day:     "4",
	}
}

func TestWidgetView_SetSnapshot(t *testing.T) {
	v := NewWidgetView()
	snap := novemberSnapshot(t, false)

	v.SetSnapshot(snap, true)

	assert.Equal(t, "🍁", v.Emoji.Text)
	assert.Equal(t, "Monday", v.Weekday.Text)
	assert.Equal(t, "4", v.Day.Text)

	top, bottom := snap.Config.Gradient()
	assert.Equal(t, top, v.Background.StartColor)
	assert.Equal(t, bottom, v.Background.EndColor)
	assert.Equal(t, snap.Config.WeekdayTextColor, v.Weekday.Color)
	assert.Equal(t, snap.Config.DayTextColor, v.Day.Color)

	assert.Equal(t, fyne.TextStyle{Bold: true}, v.Weekday.TextStyle)
	assert.Equal(t, float32(config.WeekdayTextSize), v.Weekday.TextSize)
}

func TestWidgetView_NoBackground(t *testing.T) {
	v := NewWidgetView()
	snap := novemberSnapshot(t, false)

	v.SetSnapshot(snap, false)

	assert.Equal(t, color.Transparent, v.Background.StartColor)
	assert.Equal(t, color.Transparent, v.Background.EndColor)

	white, _ := snap.Config.TextColors(false)
	assert.Equal(t, white, v.Weekday.Color)
	assert.Equal(t, white, v.Day.Color)
}

func TestWidgetView_FunFont(t *testing.T) {
	v := NewWidgetView()

	v.SetSnapshot(novemberSnapshot(t, true), true)
	assert.Equal(t, fyne.TextStyle{Monospace: true, Italic: true}, v.Weekday.TextStyle)
	assert.Equal(t, fyne.TextStyle{Monospace: true, Italic: true}, v.Day.TextStyle)
	assert.Equal(t, float32(config.FunWeekdayTextSize), v.Weekday.TextSize)

	// Turning it off restores the regular style.
	v.SetSnapshot(novemberSnapshot(t, false), true)
	assert.Equal(t, fyne.TextStyle{Bold: true}, v.Weekday.TextStyle)
	assert.Equal(t, float32(config.WeekdayTextSize), v.Weekday.TextSize)
}

func TestShowWidgetWindow(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.performRefresh(false)

	app.ShowWidgetWindow()
	require.NotNil(t, app.widgetWindow)
	require.NotNil(t, app.widgetView)
	assert.Equal(t, "4", app.widgetView.Day.Text)

	// A second call reuses the window.
	w := app.widgetWindow
	app.ShowWidgetWindow()
	assert.Same(t, w, app.widgetWindow)

	// Moving to the next day updates the open window.
	app.Calendar = frozenCalendar(novemberMorning.AddDate(0, 0, 1))
	app.showCurrent()
	assert.Equal(t, "5", app.widgetView.Day.Text)

	app.widgetWindow.Close()
	assert.Nil(t, app.widgetWindow)
	assert.Nil(t, app.widgetView)
}

func TestShowWidgetWindow_BackgroundPreference(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetBool(config.PrefShowBackground, false)
	app.performRefresh(false)

	app.ShowWidgetWindow()
	require.NotNil(t, app.widgetView)
	assert.Equal(t, color.Transparent, app.widgetView.Background.StartColor)
}

package ui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// startWorker runs the background worker until the returned stop func is called.
func startWorker(t *testing.T, app *MonthlyWidgetApp) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(app.Ctx)
	app.Ctx = ctx

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.backgroundWorker()
	}()

	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("worker did not stop")
		}
	}
}

// Meant for `go test -race`: the worker swaps the localizer while the UI
// keeps translating.
func TestBackgroundWorker_LanguageSwitchWhileTranslating(t *testing.T) {
	app, _, _ := setupTestApp(t)
	stop := startWorker(t, app)

	langs := []string{"en", "fr"}
	deadline := time.Now().Add(300 * time.Millisecond)
	for i := 0; time.Now().Before(deadline); i++ {
		app.Preferences.SetString(config.PrefLanguage, langs[i%2])
		app.RequestRefresh(config.ReasonPreferences)

		assert.Contains(t, []string{"Settings...", "Paramètres..."}, app.GetMsg(config.TKeyMenuSettings))
		_ = app.FormatWeekday(time.Monday)
	}
	stop()

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

// Meant for `go test -race`: closing the widget window must not race the
// worker redrawing it.
func TestBackgroundWorker_WidgetWindowReopened(t *testing.T) {
	app, _, _ := setupTestApp(t)
	stop := startWorker(t, app)

	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		app.RequestRefresh(config.ReasonPreferences)
		app.ShowWidgetWindow()

		app.viewMut.Lock()
		w := app.widgetWindow
		app.viewMut.Unlock()

		if w != nil {
			w.Close()
		}
	}
	stop()

	app.viewMut.Lock()
	defer app.viewMut.Unlock()
	assert.Nil(t, app.widgetWindow)
	assert.Nil(t, app.widgetView)
}

func TestUpdateWidgetView_ClosedWindow(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.performRefresh(false)

	snap, ok := app.CurrentSnapshot()
	assert.True(t, ok)

	// No window open: nothing to draw, no panic.
	assert.NotPanics(t, func() { app.updateWidgetView(snap, true) })

	app.ShowWidgetWindow()
	app.widgetWindow.Close()
	assert.NotPanics(t, func() { app.updateWidgetView(snap, true) })
}

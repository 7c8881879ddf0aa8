package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"github.com/tartampluch/monthly-widget/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// MonthlyWidgetApp encapsulates the UI state, preferences, and background logic.
type MonthlyWidgetApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Ctx         context.Context

	// The worker swaps the localizer while UI callbacks read it.
	locMut    sync.RWMutex
	localizer *i18n.Localizer

	Server   *server.FeedServer
	Fetcher  engine.ThemeFetcher
	Calendar engine.Calendar // Injected for testability (e.g. frozen clocks)
	Watcher  *ThemeWatcher   // Optional; nil disables theme hot reload

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayWidgetItem   *fyne.MenuItem
	TrayUpcomingItem *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Timeline State (last known good)
	StateMut  sync.RWMutex
	Timeline  engine.Timeline
	Snapshots []engine.Snapshot

	settingsWindow fyne.Window
	upcomingWindow fyne.Window

	// viewMut guards the widget window, which the worker redraws.
	viewMut      sync.Mutex
	widgetWindow fyne.Window
	widgetView   *WidgetView
}

// NewMonthlyWidgetApp constructs the application and wires dependencies.
func NewMonthlyWidgetApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher engine.ThemeFetcher) *MonthlyWidgetApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &MonthlyWidgetApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Calendar:           engine.NewLocalCalendar(),
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Run launches the application services and the main UI loop.
func (app *MonthlyWidgetApp) Run() {
	app.SetupI18n()
	app.watchPreferences()
	app.syncThemeWatch()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowWidgetWindow()

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences requests a regeneration whenever a setting changes
// (fun font, theme source, language, background).
func (app *MonthlyWidgetApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		app.RequestRefresh(config.ReasonPreferences)
	})
}

// RequestRefresh wakes the background worker without blocking. A pending
// request already covers a new one.
func (app *MonthlyWidgetApp) RequestRefresh(reason string) {
	select {
	case app.configChan <- reason:
	default:
	}
}

// syncThemeWatch points the theme watcher at the configured local file.
func (app *MonthlyWidgetApp) syncThemeWatch() {
	if app.Watcher == nil {
		return
	}

	path := ""
	if app.Preferences.String(config.PrefThemeMode) == config.ThemeModeLocal {
		path = app.Preferences.String(config.PrefLocalPath)
	}
	if err := app.Watcher.Watch(path); err != nil {
		slog.Warn(config.ErrWatcherAdd,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, path,
			config.LogKeyError, err)
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *MonthlyWidgetApp) setupTrayMenu() {
	// The status item shows today's entry and opens the widget.
	app.TrayStatusItem = fyne.NewMenuItem(app.trayLoadingLabel(), func() {
		app.ShowWidgetWindow()
	})

	app.TrayWidgetItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuWidget), func() {
		app.ShowWidgetWindow()
	})

	app.TrayUpcomingItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuUpcoming), func() {
		app.ShowUpcomingWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		app.RequestRefresh(config.ReasonManual)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayWidgetItem,
		app.TrayUpcomingItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *MonthlyWidgetApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayWidgetItem.Label = app.GetMsg(config.TKeyMenuWidget)
	app.TrayUpcomingItem.Label = app.GetMsg(config.TKeyMenuUpcoming)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker sleeps until the next start of day or the timeline's
// refresh instant, whichever comes first.
func (app *MonthlyWidgetApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.showPlaceholder()
	app.performRefresh(false)

	wait := app.nextWakeup()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyWakeIn, wait)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case reason := <-app.configChan:
			log.Info(config.MsgPrefsChanged, config.LogKeyReason, reason)
			app.syncThemeWatch()
			app.UpdateLocalizer()
			fyne.Do(app.RefreshTrayMenu)
			app.performRefresh(reason == config.ReasonManual)
			timer.Reset(app.nextWakeup())

		case <-timer.C:
			log.Debug(config.MsgWorkerWake)
			app.tick()
			timer.Reset(app.nextWakeup())
		}
	}
}

// tick regenerates an expired timeline, otherwise advances the displayed day.
func (app *MonthlyWidgetApp) tick() {
	app.StateMut.RLock()
	tl := app.Timeline
	app.StateMut.RUnlock()

	if timelineExpired(tl, app.Calendar.Now()) {
		slog.Info(config.MsgTimelineExpired, config.LogKeyComponent, config.CompWorker)
		app.performRefresh(false)
		return
	}

	slog.Debug(config.MsgDayAdvanced, config.LogKeyComponent, config.CompWorker)
	app.showCurrent()
}

// timelineExpired reports whether a new timeline is needed at now.
// Empty and placeholder timelines are always expired.
func timelineExpired(tl engine.Timeline, now time.Time) bool {
	if len(tl.Entries) == 0 || tl.Policy == engine.PolicyNever {
		return true
	}
	refreshAt, ok := tl.RefreshAt()
	return ok && !now.Before(refreshAt)
}

// nextWakeup computes how long the worker sleeps.
func (app *MonthlyWidgetApp) nextWakeup() time.Duration {
	app.StateMut.RLock()
	tl := app.Timeline
	app.StateMut.RUnlock()

	d, err := wakeupDelay(app.Calendar, tl, app.Calendar.Now())
	if err != nil {
		slog.Warn(config.ErrSchedule,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err)
		return config.RetryWakeup
	}
	return d
}

// wakeupDelay returns the time until the next start of day or the timeline's
// refresh instant, whichever is earlier, never less than config.MinWakeup.
func wakeupDelay(cal engine.Calendar, tl engine.Timeline, now time.Time) (time.Duration, error) {
	if len(tl.Entries) == 0 || tl.Policy == engine.PolicyNever {
		return config.RetryWakeup, nil
	}

	tomorrow, err := cal.AddDays(now, 1)
	if err != nil {
		return 0, err
	}
	next, err := cal.StartOfDay(tomorrow)
	if err != nil {
		return 0, err
	}

	if refreshAt, ok := tl.RefreshAt(); ok && refreshAt.Before(next) {
		next = refreshAt
	}

	d := next.Sub(now)
	if d < config.MinWakeup {
		d = config.MinWakeup
	}
	return d, nil
}

// performRefresh runs the engine pipeline and publishes the result.
// On failure the last known good timeline stays on screen.
func (app *MonthlyWidgetApp) performRefresh(manual bool) {
	slog.Info(config.MsgRefreshReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	gen := &engine.Generator{
		Calendar:      app.Calendar,
		Fetcher:       app.Fetcher,
		FormatWeekday: app.FormatWeekday,
	}

	res, err := gen.RunRefresh(app.Ctx, app.loadRefreshConfig())
	if err != nil {
		slog.Error(config.MsgRefreshFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleRefreshError, app.GetMsg(config.TKeyNotifError)))
		}
		fyne.Do(func() { app.updateTrayStatus(nil) })
		return
	}

	app.StateMut.Lock()
	app.Timeline = res.Timeline
	app.Snapshots = res.Snapshots
	app.StateMut.Unlock()

	app.Server.Update(res.ICS, res.JSON)
	app.showCurrent()

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// showPlaceholder displays today with the built-in theme until the first
// refresh succeeds.
func (app *MonthlyWidgetApp) showPlaceholder() {
	gen := &engine.Generator{Calendar: app.Calendar, FormatWeekday: app.FormatWeekday}

	tl, err := gen.Placeholder()
	if err != nil {
		slog.Warn(config.ErrPlaceholder, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}
	snaps, err := gen.Snapshots(engine.NewResolver(app.Calendar, engine.DefaultMonthTable()), tl)
	if err != nil {
		slog.Warn(config.ErrPlaceholder, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}

	app.StateMut.Lock()
	if len(app.Timeline.Entries) == 0 {
		app.Timeline = tl
		app.Snapshots = snaps
	}
	app.StateMut.Unlock()

	app.showCurrent()
}

// CurrentSnapshot returns the snapshot the widget should display now.
func (app *MonthlyWidgetApp) CurrentSnapshot() (engine.Snapshot, bool) {
	app.StateMut.RLock()
	defer app.StateMut.RUnlock()

	if len(app.Snapshots) == 0 {
		return engine.Snapshot{}, false
	}
	idx := app.Timeline.Current(app.Calendar.Now())
	if idx < 0 || idx >= len(app.Snapshots) {
		idx = 0
	}
	return app.Snapshots[idx], true
}

// showCurrent pushes the current snapshot to the tray and the widget window.
// Callable from the worker: canvas updates run on the Fyne thread.
func (app *MonthlyWidgetApp) showCurrent() {
	snap, ok := app.CurrentSnapshot()
	if !ok {
		return
	}
	showsBackground := app.showsBackground()

	fyne.Do(func() {
		app.updateTrayStatus(&snap)
		app.updateWidgetView(snap, showsBackground)
	})
}

// updateTrayStatus shows today's summary, or the error label when snap is nil.
func (app *MonthlyWidgetApp) updateTrayStatus(snap *engine.Snapshot) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	if snap == nil {
		label := app.GetMsg(config.TKeyLblTrayError)
		if label == config.TKeyLblTrayError {
			label = config.FallbackTrayError
		}
		app.TrayStatusItem.Label = label
	} else {
		app.TrayStatusItem.Label = snap.Summary()
	}
	app.Menu.Refresh()
}

func (app *MonthlyWidgetApp) trayLoadingLabel() string {
	label := app.GetMsg(config.TKeyLblTrayLoading)
	if label == config.TKeyLblTrayLoading {
		return config.FallbackTrayLoading
	}
	return label
}

// loadRefreshConfig assembles the engine configuration from UI preferences and Keyring.
func (app *MonthlyWidgetApp) loadRefreshConfig() engine.RefreshConfig {
	cfg := engine.RefreshConfig{
		Mode:        app.Preferences.StringWithFallback(config.PrefThemeMode, config.DefaultThemeMode),
		LocalPath:   app.Preferences.String(config.PrefLocalPath),
		WebURL:      app.Preferences.String(config.PrefThemeURL),
		WebUser:     app.Preferences.String(config.PrefUsername),
		Count:       config.DefaultEntryCount,
		ShowFunFont: app.Preferences.Bool(config.PrefFunFont),
	}

	if cfg.Mode == config.ThemeModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

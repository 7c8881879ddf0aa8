package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// WidgetView draws one snapshot: emoji and weekday on top, the day number
// below, over the month's gradient.
type WidgetView struct {
	Background *canvas.LinearGradient
	Emoji      *canvas.Text
	Weekday    *canvas.Text
	Day        *canvas.Text

	content fyne.CanvasObject
}

// NewWidgetView builds an empty view. Call SetSnapshot to fill it.
func NewWidgetView() *WidgetView {
	v := &WidgetView{
		Background: canvas.NewVerticalGradient(color.Transparent, color.Transparent),
		Emoji:      canvas.NewText("", color.White),
		Weekday:    canvas.NewText("", color.White),
		Day:        canvas.NewText("", color.White),
	}
	v.Emoji.TextSize = config.EmojiTextSize
	v.Weekday.TextSize = config.WeekdayTextSize
	v.Weekday.TextStyle = fyne.TextStyle{Bold: true}
	v.Day.TextSize = config.DayTextSize
	v.Day.TextStyle = fyne.TextStyle{Bold: true}

	header := container.NewHBox(v.Emoji, v.Weekday, layout.NewSpacer())
	body := container.NewVBox(header, v.Day)
	v.content = container.NewStack(v.Background, container.NewPadded(body))
	return v
}

// Content returns the canvas object to place in a window.
func (v *WidgetView) Content() fyne.CanvasObject {
	return v.content
}

// SetSnapshot redraws the view for s.
func (v *WidgetView) SetSnapshot(s engine.Snapshot, showsBackground bool) {
	if showsBackground {
		top, bottom := s.Config.Gradient()
		v.Background.StartColor = top
		v.Background.EndColor = bottom
	} else {
		v.Background.StartColor = color.Transparent
		v.Background.EndColor = color.Transparent
	}

	weekdayColor, dayColor := s.Config.TextColors(showsBackground)

	v.Emoji.Text = s.Config.Emoji

	v.Weekday.Text = s.Weekday
	v.Weekday.Color = weekdayColor
	v.Weekday.TextStyle = textStyle(s.Entry.ShowFunFont)
	v.Weekday.TextSize = config.WeekdayTextSize
	if s.Entry.ShowFunFont {
		v.Weekday.TextSize = config.FunWeekdayTextSize
	}

	v.Day.Text = s.Day
	v.Day.Color = dayColor
	v.Day.TextStyle = textStyle(s.Entry.ShowFunFont)

	v.Background.Refresh()
	v.Emoji.Refresh()
	v.Weekday.Refresh()
	v.Day.Refresh()
}

// textStyle maps the fun-font flag to a Fyne style. No decorative font is
// bundled, so the fun variant uses the monospace italic face.
func textStyle(funFont bool) fyne.TextStyle {
	if funFont {
		return fyne.TextStyle{Monospace: true, Italic: true}
	}
	return fyne.TextStyle{Bold: true}
}

// ShowWidgetWindow opens the widget window, or focuses it if already open.
func (app *MonthlyWidgetApp) ShowWidgetWindow() {
	app.viewMut.Lock()
	defer app.viewMut.Unlock()

	if app.widgetWindow != nil {
		app.widgetWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWidget, config.LogKeyComponent, config.CompUI)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinWidget))
	view := NewWidgetView()

	if snap, ok := app.CurrentSnapshot(); ok {
		view.SetSnapshot(snap, app.showsBackground())
	}

	w.SetContent(view.Content())
	w.Resize(fyne.NewSize(config.WidgetWindowWidth, config.WidgetWindowHeight))
	w.SetOnClosed(func() {
		app.viewMut.Lock()
		app.widgetWindow = nil
		app.widgetView = nil
		app.viewMut.Unlock()
	})

	app.widgetWindow = w
	app.widgetView = view
	w.Show()
}

// updateWidgetView redraws the open widget window, if any.
func (app *MonthlyWidgetApp) updateWidgetView(snap engine.Snapshot, showsBackground bool) {
	app.viewMut.Lock()
	defer app.viewMut.Unlock()

	if app.widgetView != nil {
		app.widgetView.SetSnapshot(snap, showsBackground)
	}
}

// showsBackground reports whether the themed background is drawn.
func (app *MonthlyWidgetApp) showsBackground() bool {
	return app.Preferences.BoolWithFallback(config.PrefShowBackground, config.DefaultShowBackground)
}

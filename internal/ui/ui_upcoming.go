package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// sortSnapshots orders snaps in place by the given table column.
func sortSnapshots(snaps []engine.Snapshot, col int, asc bool) {
	sort.SliceStable(snaps, func(i, j int) bool {
		if asc {
			return snapshotLess(snaps[i], snaps[j], col)
		}
		return snapshotLess(snaps[j], snaps[i], col)
	})
}

func snapshotLess(a, b engine.Snapshot, col int) bool {
	switch col {
	case config.ColIDWeekday:
		return strings.ToLower(a.Weekday) < strings.ToLower(b.Weekday)
	case config.ColIDEmoji:
		return a.Config.Emoji < b.Config.Emoji
	default: // config.ColIDDate
		return a.Entry.Date.Before(b.Entry.Date)
	}
}

// ShowUpcomingWindow lists the snapshots of the current timeline.
// If the window is already open, it requests focus.
func (app *MonthlyWidgetApp) ShowUpcomingWindow() {
	if app.upcomingWindow != nil {
		app.upcomingWindow.RequestFocus()
		return
	}

	app.upcomingWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinUpcoming))
	app.upcomingWindow.Resize(fyne.NewSize(config.UpcomingWinWidth, config.UpcomingWinHeight))

	// Local copy, the worker may swap the timeline while the window is open.
	app.StateMut.RLock()
	rows := make([]engine.Snapshot, len(app.Snapshots))
	copy(rows, app.Snapshots)
	app.StateMut.RUnlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	currentSortCol := config.ColIDDate
	sortAsc := true

	performSort := func() {
		sortSnapshots(rows, currentSortCol, sortAsc)
		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	dateFormat := app.dateFormat()

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			s := rows[id.Row]

			switch id.Col {
			case config.ColIDDate:
				label.SetText(s.Entry.Date.Format(dateFormat))
			case config.ColIDWeekday:
				label.SetText(s.Weekday)
			case config.ColIDEmoji:
				label.SetText(s.Config.Emoji)
			}
		},
	)

	var refreshTable func()

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDWeekday:
			titleKey = config.TKeyColWeekday
		case config.ColIDEmoji:
			titleKey = config.TKeyColEmoji
		}

		text := app.GetMsg(titleKey)
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDWeekday, config.ColWidthWeekday)
	table.SetColumnWidth(config.ColIDEmoji, config.ColWidthEmoji)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	app.upcomingWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.upcomingWindow.SetOnClosed(func() {
		app.upcomingWindow = nil
	})
	app.upcomingWindow.Show()
}

package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// RefreshConfig contains all parameters required to rebuild the timeline.
type RefreshConfig struct {
	Mode        string // config.ThemeModeBuiltin, config.ThemeModeLocal or config.ThemeModeWeb
	LocalPath   string // Absolute path to a theme .yaml file
	WebURL      string // URL of a theme .yaml file
	WebUser     string // HTTP Basic Auth Username
	WebPass     string // HTTP Basic Auth Password
	Count       int    // Number of entries, zero for the default
	ShowFunFont bool
}

// Result is everything a refresh produces for the host.
type Result struct {
	Timeline  Timeline
	Snapshots []Snapshot
	ICS       []byte
	JSON      []byte
}

// Generator is the core service turning "now" into a themed timeline.
type Generator struct {
	Calendar Calendar     // Day arithmetic and the current instant.
	Fetcher  ThemeFetcher // Only needed for config.ThemeModeWeb.

	// FormatWeekday allows the UI to inject localized weekday names.
	FormatWeekday func(time.Weekday) string
}

// RunRefresh loads the theme, generates the timeline and resolves every entry.
func (g *Generator) RunRefresh(ctx context.Context, cfg RefreshConfig) (Result, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgRefreshStarted)

	// 1. Theme
	table, err := g.loadTheme(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("%s: %w", config.ErrThemeLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// 2. Timeline
	now := g.Calendar.Now()
	tl, err := g.Timeline(now, cfg.Count, cfg.ShowFunFont)
	if err != nil {
		return Result{}, err
	}

	// 3. Resolution
	snaps, err := g.Snapshots(NewResolver(g.Calendar, table), tl)
	if err != nil {
		return Result{}, err
	}

	// 4. Feeds
	ics, err := encodeCalendar(now, snaps)
	if err != nil {
		return Result{}, err
	}
	jsonData, err := EncodeSnapshotsJSON(snaps)
	if err != nil {
		return Result{}, err
	}

	refreshAt, _ := tl.RefreshAt()
	log.Info(config.MsgTimelineBuilt,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyEntries, len(tl.Entries)),
			slog.String(config.LogKeyDate, tl.Entries[0].Date.Format(config.DateFormatFullDash)),
			slog.String(config.LogKeyEmoji, snaps[0].Config.Emoji),
			slog.Bool(config.LogKeyFunFont, cfg.ShowFunFont),
			slog.Time(config.LogKeyRefreshAt, refreshAt),
		),
	)
	log.Debug(config.MsgRefreshDone, config.LogKeyDuration, time.Since(start).Milliseconds())

	return Result{Timeline: tl, Snapshots: snaps, ICS: ics, JSON: jsonData}, nil
}

// loadTheme returns the month table selected by the configuration.
func (g *Generator) loadTheme(ctx context.Context, cfg RefreshConfig) (MonthTable, error) {
	switch cfg.Mode {
	case "", config.ThemeModeBuiltin:
		return DefaultMonthTable(), nil

	case config.ThemeModeLocal:
		if cfg.LocalPath == "" {
			return MonthTable{}, errors.New(config.ErrLocalPathEmpty)
		}
		f, err := os.Open(cfg.LocalPath)
		if err != nil {
			return MonthTable{}, err
		}
		defer func() { _ = f.Close() }()
		return LoadMonthTable(f)

	case config.ThemeModeWeb:
		if cfg.WebURL == "" {
			return MonthTable{}, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return MonthTable{}, errors.New(config.ErrFetcherMissing)
		}
		data, err := g.Fetcher.FetchTheme(ctx, WebTheme{URL: cfg.WebURL, User: cfg.WebUser, Pass: cfg.WebPass})
		if err != nil {
			return MonthTable{}, err
		}
		return LoadMonthTable(bytes.NewReader(data))

	default:
		return MonthTable{}, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// encodeCalendar publishes the timeline as all-day iCalendar events.
func encodeCalendar(now time.Time, snaps []Snapshot) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: the feed changes once a day.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, s := range snaps {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, entryUID(s.Entry.Date))
		event.Props.SetText(config.PropSummary, s.Summary())
		event.Props.SetText(config.PropDescription, fmt.Sprintf(config.FormatDescription,
			s.Config.BackgroundColor.Hex(),
			s.Config.WeekdayTextColor.Hex(),
			s.Config.DayTextColor.Hex(),
		))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(s.Entry.Date)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// entryUID is stable for a given calendar day across refreshes.
func entryUID(date time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, date.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, hash[:config.UIDHashLength], config.ICalDomain)
}

package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/monthly-widget/internal/config"
	"gopkg.in/yaml.v3"
)

//go:embed themes/default.yaml
var defaultThemeData []byte

var (
	colorWhite = colorful.Color{R: 1, G: 1, B: 1}
	colorBlack = colorful.Color{R: 0, G: 0, B: 0}

	defaultMonthTable = mustLoadMonthTable(defaultThemeData)

	monthsByName = func() map[string]time.Month {
		m := make(map[string]time.Month, 12)
		for month := time.January; month <= time.December; month++ {
			m[strings.ToLower(month.String())] = month
		}
		return m
	}()
)

// DisplayConfig is the immutable appearance of the widget for one month.
type DisplayConfig struct {
	Emoji            string
	BackgroundColor  colorful.Color
	WeekdayTextColor colorful.Color
	DayTextColor     colorful.Color
}

// Gradient returns the top and bottom colours of the background fill.
func (c DisplayConfig) Gradient() (top, bottom colorful.Color) {
	return c.BackgroundColor, c.BackgroundColor.BlendLuv(colorBlack, config.GradientDarken).Clamped()
}

// TextColors returns the weekday and day colours. Without the themed
// background behind them the texts fall back to white.
func (c DisplayConfig) TextColors(showsBackground bool) (weekday, day colorful.Color) {
	if !showsBackground {
		return colorWhite, colorWhite
	}
	return c.WeekdayTextColor, c.DayTextColor
}

// MonthTable holds one DisplayConfig per month, January first.
type MonthTable [12]DisplayConfig

// ResolveMonth looks up the config of a month number (1-12).
func (t MonthTable) ResolveMonth(month int) (DisplayConfig, error) {
	if month < 1 || month > len(t) {
		return DisplayConfig{}, &ConfigurationError{Month: month, Reason: config.ErrThemeMonth}
	}
	return t[month-1], nil
}

// DefaultMonthTable returns the built-in seasonal table.
func DefaultMonthTable() MonthTable {
	return defaultMonthTable
}

// Resolver maps calendar dates to their month's DisplayConfig.
type Resolver struct {
	Calendar Calendar
	Table    MonthTable
}

// NewResolver creates a resolver over the given table.
func NewResolver(cal Calendar, table MonthTable) *Resolver {
	return &Resolver{Calendar: cal, Table: table}
}

// Resolve returns the DisplayConfig of the month containing date.
func (r *Resolver) Resolve(date time.Time) (DisplayConfig, error) {
	return r.Table.ResolveMonth(r.Calendar.MonthOf(date))
}

// themeEntry is the YAML shape of one month.
type themeEntry struct {
	Emoji      string    `yaml:"emoji"`
	Background *hexColor `yaml:"background"`
	Weekday    *hexColor `yaml:"weekday"`
	Day        *hexColor `yaml:"day"`
}

type hexColor struct {
	colorful.Color
}

func (h *hexColor) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}

	c, err := colorful.Hex(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s %q: %w", config.ErrThemeColor, value, err)
	}
	h.Color = c
	return nil
}

// LoadMonthTable decodes a YAML theme keyed by lower-case English month
// names. All twelve months must be present.
func LoadMonthTable(r io.Reader) (MonthTable, error) {
	var raw map[string]themeEntry

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return MonthTable{}, fmt.Errorf("%s: %w", config.ErrThemeDecode, err)
	}

	var table MonthTable
	var seen [12]bool

	for name, entry := range raw {
		month, ok := monthsByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return MonthTable{}, fmt.Errorf("%s: %q", config.ErrThemeUnknownMonth, name)
		}
		// Keys differing only in case name the same month.
		if seen[month-1] {
			return MonthTable{}, &ConfigurationError{Month: int(month), Reason: config.ErrThemeDuplicate}
		}

		if strings.TrimSpace(entry.Emoji) == "" {
			return MonthTable{}, &ConfigurationError{Month: int(month), Reason: config.ErrThemeEmoji}
		}
		if entry.Background == nil || entry.Weekday == nil || entry.Day == nil {
			return MonthTable{}, &ConfigurationError{Month: int(month), Reason: config.ErrThemeColorMissing}
		}

		table[month-1] = DisplayConfig{
			Emoji:            entry.Emoji,
			BackgroundColor:  entry.Background.Color,
			WeekdayTextColor: entry.Weekday.Color,
			DayTextColor:     entry.Day.Color,
		}
		seen[month-1] = true
	}

	for i, ok := range seen {
		if !ok {
			return MonthTable{}, &ConfigurationError{Month: i + 1, Reason: config.ErrThemeMissing}
		}
	}

	return table, nil
}

func mustLoadMonthTable(data []byte) MonthTable {
	table, err := LoadMonthTable(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("%s: %v", config.ErrThemeEmbedded, err))
	}
	return table
}

package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Monthly-Widget/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Monthly Widget"
	AppID             = "com.github.tartampluch.monthly-widget"
	KeyringService    = "com.github.tartampluch.monthly-widget"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagPreview      = "preview"
	FlagFunFont      = "fun-font"
	FlagTheme        = "theme"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescPreview  = "Print the upcoming week in the terminal and exit"
	FlagDescFunFont  = "Use the fun font in the terminal preview"
	FlagDescTheme    = "Path to a month theme .yaml file"
	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Widget window, roughly the size of a small home-screen widget.
	WidgetWindowWidth  = 170
	WidgetWindowHeight = 170

	// Text sizes of the widget window.
	EmojiTextSize      = 28
	WeekdayTextSize    = 20
	FunWeekdayTextSize = 24
	DayTextSize        = 80

	// Preference Keys
	PrefLanguage       = "language"
	PrefThemeMode      = "theme_mode"
	PrefThemeURL       = "theme_url"
	PrefUsername       = "username"
	PrefLocalPath      = "theme_path"
	PrefFunFont        = "fun_font"
	PrefShowBackground = "show_background"
	PrefServerPort     = "server_port"
	PrefLastRun        = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Upcoming Days Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	UpcomingWinWidth  = 420
	UpcomingWinHeight = 320

	// Table Column IDs
	ColIDDate    = 0
	ColIDWeekday = 1
	ColIDEmoji   = 2
	ColCount     = 3

	// Table Layout
	ColWidthDate    = 140
	ColWidthWeekday = 160
	ColWidthEmoji   = 80

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	LogMsgOpenWin     = "Opening Upcoming Days Window"
	LogMsgSorted      = "Upcoming days sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Terminal Preview
// -----------------------------------------------------------------------------

const (
	PreviewTileWidth = 22
	PreviewColumns   = 4
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinWidget      = "win_widget_title"
	TKeyWinUpcoming    = "win_upcoming_title"
	TKeyMenuWidget     = "menu_widget"
	TKeyMenuUpcoming   = "menu_upcoming"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyNotifStart     = "notif_refresh_start"
	TKeyNotifSuccess   = "notif_refresh_success"
	TKeyNotifError     = "notif_err_refresh"
	TKeyModeBuiltin    = "mode_builtin"
	TKeyModeLocal      = "mode_local"
	TKeyModeWeb        = "mode_web"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblAppearance  = "lbl_appearance"
	TKeyLblFunFont     = "lbl_fun_font"
	TKeyLblBackground  = "lbl_show_background"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_theme_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblSource      = "lbl_source"
	TKeyLblTrayError   = "tray_status_error"
	TKeyLblTrayLoading = "tray_status_loading"

	// Column Headers & Formats
	TKeyColDate    = "col_date"
	TKeyColWeekday = "col_weekday"
	TKeyColEmoji   = "col_emoji"
	TKeyFormatDate = "format_date_short" // Date format pattern (e.g., "2006-01-02")

	// Weekday names (wide)
	TKeyWeekdaySunday    = "weekday_sunday"
	TKeyWeekdayMonday    = "weekday_monday"
	TKeyWeekdayTuesday   = "weekday_tuesday"
	TKeyWeekdayWednesday = "weekday_wednesday"
	TKeyWeekdayThursday  = "weekday_thursday"
	TKeyWeekdayFriday    = "weekday_friday"
	TKeyWeekdaySaturday  = "weekday_saturday"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// WeekdayKeys maps time.Weekday (Sunday = 0) to its translation key.
var WeekdayKeys = [7]string{
	TKeyWeekdaySunday,
	TKeyWeekdayMonday,
	TKeyWeekdayTuesday,
	TKeyWeekdayWednesday,
	TKeyWeekdayThursday,
	TKeyWeekdayFriday,
	TKeyWeekdaySaturday,
}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	ThemeModeBuiltin      = "builtin"
	ThemeModeLocal        = "local"
	ThemeModeWeb          = "web"
	DefaultThemeMode      = ThemeModeBuiltin
	DefaultPort           = "18081"
	DefaultLanguage       = "en"
	DefaultShowBackground = true
	UIDSalt               = "monthly-widget-v1-" // Salt for deterministic UID generation

	// DefaultEntryCount is the number of days in a generated timeline.
	DefaultEntryCount = 7

	// Supported calendar range, the years an iCalendar DATE can carry.
	MinCalendarYear = 1
	MaxCalendarYear = 9999

	// GradientDarken is how far the bottom of the background gradient is
	// blended toward black.
	GradientDarken = 0.25
)

// -----------------------------------------------------------------------------
// Scheduler
// -----------------------------------------------------------------------------

const (
	// MinWakeup bounds the scheduler's sleep when a deadline is already due.
	MinWakeup = 1 * time.Second

	// RetryWakeup is used when the next deadline cannot be computed or the
	// last refresh failed.
	RetryWakeup = 1 * time.Minute

	// Refresh reasons sent on the scheduler channel.
	ReasonPreferences = "preferences"
	ReasonThemeFile   = "theme_file"
	ReasonManual      = "manual"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Monthly Widget//Engine//EN"
	ICalCalName = "Monthly Widget"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "monthlywidget"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropDescription = "DESCRIPTION"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash = "2006-01-02"

	// Limits
	MinPort      = 1
	MaxPort      = 65535
	MaxThemeSize = 1024 * 1024 // 1MB, a theme is a few hundred bytes

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s"
	FormatUID       = "%x@%s"

	// Labels
	FormatSummary     = "%s %s %s"
	FormatDescription = "background=%s weekday=%s day=%s"

	// File Extensions
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	SchemeHTTP         = "http"
	SchemeHTTPS        = "https"
	RouteRoot          = "/"
	RouteTimelineJSON  = "/timeline.json"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	MimeHTML            = "text/html"
	AcceptTheme         = "application/yaml, text/yaml, text/plain;q=0.9, */*;q=0.5"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty     = "configuration error: theme file path is empty"
	ErrWebURLEmpty        = "configuration error: theme URL is empty"
	ErrFetcherMissing     = "internal error: network fetcher is not initialized"
	ErrModeUnsupport      = "configuration error: unsupported theme mode"
	ErrConfiguration      = "configuration error"
	ErrThemeMonth         = "month outside 1-12"
	ErrThemeMissing       = "theme has no entry for month"
	ErrThemeEmoji         = "theme emoji is empty"
	ErrThemeColorMissing  = "theme colour is missing"
	ErrThemeDuplicate     = "month appears more than once in theme"
	ErrThemeColor         = "invalid theme colour"
	ErrThemeUnknownMonth  = "unknown month name in theme"
	ErrThemeDecode        = "failed to decode month theme"
	ErrThemeLoad          = "failed to load month theme"
	ErrThemeEmbedded      = "built-in month theme is invalid"
	ErrDateArithmetic     = "date arithmetic error"
	ErrDateRange          = "date outside supported calendar range"
	ErrDateNotConsecutive = "day offset did not produce the next calendar day"
	ErrServerStartup      = "server startup failed"
	ErrServerShutdown     = "server shutdown failed"
	ErrPortRequired       = "server port is required"
	ErrInvalidURL         = "invalid URL structure"
	ErrProtocol           = "unsupported protocol scheme (http/https only)"
	ErrRequestBuild       = "failed to create request"
	ErrNetwork            = "network error during theme download"
	ErrHTTPStatus         = "theme server returned unexpected status"
	ErrThemeTooLarge      = "theme file exceeds the size limit"
	ErrThemeNotYAML       = "theme URL returned a web page, not YAML"
	ErrICalEncode         = "failed to encode iCalendar data"
	ErrJSONEncode         = "failed to encode timeline JSON"
	ErrLogFile            = "failed to open log file"
	ErrCacheDir           = "could not determine user cache dir"
	ErrCreateDir          = "could not create app cache dir"
	ErrAppFailed          = "application failed unexpectedly"
	ErrPreviewFailed      = "preview failed"
	ErrWriteResp          = "failed to write response body"
	ErrLocalesAccess      = "failed to access embedded locales"
	ErrLocaleLoad         = "failed to load locale file"
	ErrTrayNotSupported   = "system tray not supported on this platform/driver"
	ErrWatcherCreate      = "failed creating theme watcher"
	ErrWatcherAdd         = "failed watching theme directory"
	ErrWatcher            = "theme watcher error"
	ErrSchedule           = "failed to compute next wake-up"
	ErrKeyringSave        = "failed to save credentials to keyring"
	ErrPlaceholder        = "failed to build placeholder timeline"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Timeline initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayError   = "Monthly Widget: Refresh Error"
	FallbackTrayLoading = "Monthly Widget"

	TitleStartupError = "Startup Error"
	TitleRefreshError = "Refresh Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgRefreshStarted  = "Timeline refresh started"
	MsgRefreshFailed   = "Timeline refresh failed. Check logs."
	MsgRefreshReq      = "Refresh requested"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgWorkerWake      = "Worker woke up"
	MsgTimelineExpired = "Timeline expired, regenerating"
	MsgDayAdvanced     = "Displayed day advanced"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgTimelineBuilt   = "Timeline generation successful"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Feed cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgThemeChanged    = "Theme file changed"
	MsgThemeWatch      = "Watching theme file"
	MsgPrefsChanged    = "Preferences changed"
	MsgSettingsSaved   = "Saving preferences"
	MsgRefreshDone     = "Refresh finished"
	MsgThemeDownload   = "Downloading theme"
	MsgThemeDownloaded = "Theme downloaded"
	MsgThemeBadStatus  = "Theme server returned error status"
	MsgOpenWidget      = "Opening widget window"
	MsgOpenSettings    = "Opening settings window"
	MsgWinFocus        = "Window already open, requesting focus"

	PlaceholderURL  = "https://..."
	PlaceholderPath = "/path/to/theme.yaml"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyReason    = "reason"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyEntries   = "entries"
	LogKeyDate      = "date"
	LogKeyEmoji     = "emoji"
	LogKeyFunFont   = "fun_font"
	LogKeyRefreshAt = "refresh_at"
	LogKeyWakeIn    = "wake_in"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompWatcher = "watcher"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompPreview = "preview"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)

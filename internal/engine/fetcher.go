package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// WebTheme locates a month theme published over HTTP(S).
type WebTheme struct {
	URL  string
	User string // Basic auth, optional
	Pass string
}

// redactURL drops the query string and credentials so the URL can be logged.
func redactURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// ThemeFetcher downloads the raw YAML of a web theme.
type ThemeFetcher interface {
	FetchTheme(ctx context.Context, src WebTheme) ([]byte, error)
}

// HTTPFetcher is the net/http ThemeFetcher.
type HTTPFetcher struct {
	Client *http.Client

	// MaxSize caps the theme body; zero means config.MaxThemeSize.
	MaxSize int64
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		MaxSize: config.MaxThemeSize,
	}
}

// FetchTheme downloads src and returns its body. Bodies larger than MaxSize
// fail with ErrThemeTooLarge, HTML pages (typically a login or error page in
// front of the file) with ErrThemeNotYAML.
func (f *HTTPFetcher) FetchTheme(ctx context.Context, src WebTheme) ([]byte, error) {
	u, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, redactURL(u)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptTheme)
	if src.User != "" || src.Pass != "" {
		req.SetBasicAuth(src.User, src.Pass)
	}

	log.Debug(config.MsgThemeDownload)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn(config.MsgThemeBadStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrHTTPStatus, resp.Status)
	}

	if ct := resp.Header.Get(config.HeaderContentType); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil && mediaType == config.MimeHTML {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotYAML, mediaType)
		}
	}

	limit := f.MaxSize
	if limit <= 0 {
		limit = config.MaxThemeSize
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrThemeTooLarge, resp.ContentLength, limit)
	}

	// One byte past the limit tells a full-size theme from a truncated one.
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrThemeTooLarge, limit)
	}

	log.Debug(config.MsgThemeDownloaded, slog.Int(config.LogKeySizeBytes, len(data)))
	return data, nil
}

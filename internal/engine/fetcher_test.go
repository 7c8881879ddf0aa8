package engine_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// TestHTTPFetcher_FetchTheme_Success checks headers, basic auth and the body.
func TestHTTPFetcher_FetchTheme_Success(t *testing.T) {
	theme := singleColourTheme(t, "⛄️")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "testuser", user)
		assert.Equal(t, "securepass", pass)

		assert.Equal(t, config.UserAgent, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "yaml")

		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(theme))
	}))
	defer ts.Close()

	data, err := engine.NewHTTPFetcher().FetchTheme(context.Background(), engine.WebTheme{
		URL:  ts.URL + "/theme.yaml?token=abc",
		User: "testuser",
		Pass: "securepass",
	})
	require.NoError(t, err)
	assert.Equal(t, theme, string(data))

	// What was downloaded is a loadable table.
	_, err = engine.LoadMonthTable(strings.NewReader(string(data)))
	assert.NoError(t, err)
}

// TestHTTPFetcher_FetchTheme_Status verifies proper error handling for non-200 statuses.
func TestHTTPFetcher_FetchTheme_Status(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			data, err := engine.NewHTTPFetcher().FetchTheme(context.Background(), engine.WebTheme{URL: ts.URL})

			require.Error(t, err)
			assert.Nil(t, data)
			assert.Contains(t, err.Error(), config.ErrHTTPStatus)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestHTTPFetcher_FetchTheme_Timeout ensures the client respects context deadlines.
func TestHTTPFetcher_FetchTheme_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().FetchTheme(ctx, engine.WebTheme{URL: ts.URL})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_FetchTheme_BadURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"control character", string([]byte{0x7f}), config.ErrInvalidURL},
		{"ftp", "ftp://example.com/theme.yaml", config.ErrProtocol},
		{"file", "file:///etc/theme.yaml", config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewHTTPFetcher().FetchTheme(context.Background(), engine.WebTheme{URL: tt.url})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// An oversized theme is rejected instead of being cut into invalid YAML.
func TestHTTPFetcher_FetchTheme_TooLarge(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		size          int
		contentLength bool
		wantErr       bool
	}{
		{"at the limit", limit, true, false},
		{"declared over the limit", limit + 1, true, true},
		{"streamed over the limit", limit * 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !tt.contentLength {
					// Flushing before the body forces chunked encoding.
					w.WriteHeader(http.StatusOK)
					w.(http.Flusher).Flush()
				}
				_, _ = w.Write([]byte(strings.Repeat("x", tt.size)))
			}))
			defer ts.Close()

			fetcher := engine.NewHTTPFetcher()
			fetcher.MaxSize = limit

			data, err := fetcher.FetchTheme(context.Background(), engine.WebTheme{URL: ts.URL})
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, data, tt.size)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, engine.ErrThemeTooLarge)
			assert.Nil(t, data)
		})
	}
}

func TestHTTPFetcher_FetchTheme_DefaultLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", config.MaxThemeSize+1)))
	}))
	defer ts.Close()

	_, err := (&engine.HTTPFetcher{Client: http.DefaultClient}).FetchTheme(context.Background(), engine.WebTheme{URL: ts.URL})
	assert.ErrorIs(t, err, engine.ErrThemeTooLarge)
}

func TestHTTPFetcher_FetchTheme_HTMLPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>Please log in</body></html>"))
	}))
	defer ts.Close()

	_, err := engine.NewHTTPFetcher().FetchTheme(context.Background(), engine.WebTheme{URL: ts.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrThemeNotYAML)
}

// TestHTTPFetcher_FetchTheme_NoAuthWithoutCredentials checks that anonymous
// requests carry no Authorization header.
func TestHTTPFetcher_FetchTheme_NoAuthWithoutCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("january: {}\n"))
	}))
	defer ts.Close()

	data, err := engine.NewHTTPFetcher().FetchTheme(context.Background(), engine.WebTheme{URL: ts.URL})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

// Log records use the shared config messages and never the query string.
func TestHTTPFetcher_FetchTheme_Logging(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("january: {}\n"))
	}))
	defer ts.Close()

	_, err := engine.NewHTTPFetcher().FetchTheme(context.Background(), engine.WebTheme{URL: ts.URL + "/t.yaml?token=secret"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"`+config.MsgThemeDownload+`"`)
	assert.Contains(t, out, `"msg":"`+config.MsgThemeDownloaded+`"`)
	assert.Contains(t, out, `"`+config.LogKeyComponent+`":"`+config.CompFetcher+`"`)
	assert.NotContains(t, out, "secret")
}

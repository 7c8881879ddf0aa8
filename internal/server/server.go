package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// payload is one rendered representation of the timeline with its HTTP
// caching metadata.
type payload struct {
	data        []byte
	contentType string
	etag        string
}

// cacheItem is the set of payloads produced by a single refresh.
type cacheItem struct {
	calendar     payload
	timeline     payload
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer publishes the current timeline over HTTP.
type FeedServer struct {
	// Readers vastly outnumber refreshes (once a day), so the cache is
	// swapped atomically instead of being guarded by a lock.
	cache atomic.Pointer[cacheItem]
	Port  string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
	}
}

// Handler returns the routes served by the feed server.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteTimelineJSON, s.handleTimelineRequest)
	return mux
}

// Start binds the listener and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces both feeds.
func (s *FeedServer) Update(ics, timelineJSON []byte) {
	item := &cacheItem{
		calendar:     newPayload(ics, config.MimeTextCalendar),
		timeline:     newPayload(timelineJSON, config.MimeJSON),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(ics)+len(timelineJSON),
		config.LogKeyETag, item.calendar.etag,
	)
}

func newPayload(data []byte, contentType string) payload {
	hash := sha256.Sum256(data)
	return payload{
		data:        data,
		contentType: contentType,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
}

func (s *FeedServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot {
		http.NotFound(w, r)
		return
	}
	s.serve(w, r, func(item *cacheItem) payload { return item.calendar })
}

func (s *FeedServer) handleTimelineRequest(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, func(item *cacheItem) payload { return item.timeline })
}

// serve writes the selected payload with HTTP caching support.
func (s *FeedServer) serve(w http.ResponseWriter, r *http.Request, pick func(*cacheItem) payload) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	p := pick(item)

	w.Header().Set(config.HeaderContentType, p.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, p.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == p.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(p.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

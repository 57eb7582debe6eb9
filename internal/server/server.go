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

	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
	"github.com/tartampluch/go-schedule3d/internal/locale"
)

// cacheItem stores the published calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// Options configures the scene API.
type Options struct {
	// SeedPeople is registered in every new browser session.
	SeedPeople []string
	Holidays   engine.HolidayChecker
	// Translator localizes scene labels per request; nil keeps English.
	Translator *locale.Translator
	Clock      engine.Clock

	// AuthUser and AuthPass enable HTTP basic auth when both are set.
	AuthUser string
	AuthPass string
}

// Server exposes the scene API and the calendar published by the desktop
// window.
type Server struct {
	// The calendar is read on every client poll but only replaced when the
	// desktop session changes, so reads go through an atomic pointer.
	cache atomic.Pointer[cacheItem]
	Port  string

	opts     Options
	sessions *SessionStore
}

// New creates a server listening on port once started.
func New(port string, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = engine.RealClock{}
	}
	return &Server{
		Port:     port,
		opts:     opts,
		sessions: NewSessionStore(opts.Clock, opts.SeedPeople),
	}
}

// Handler returns the routed, optionally authenticated handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	mux.HandleFunc(config.RoutePeopleList, s.handleListPeople)
	mux.HandleFunc(config.RoutePeopleAdd, s.handleAddPerson)
	mux.HandleFunc(config.RoutePeopleVisible, s.handleSetVisible)
	mux.HandleFunc(config.RouteEventsList, s.handleListEvents)
	mux.HandleFunc(config.RouteEventsAdd, s.handleAddEvent)
	mux.HandleFunc(config.RouteEventsDelete, s.handleDeleteEvent)
	mux.HandleFunc(config.RouteWeeks, s.handleWeeks)
	mux.HandleFunc(config.RouteScene, s.handleScene)
	mux.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)

	if s.opts.AuthUser != "" && s.opts.AuthPass != "" {
		slog.Info(config.MsgAuthEnabled,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyUser, s.opts.AuthUser,
		)
		return basicAuth(mux, s.opts.AuthUser, s.opts.AuthPass)
	}
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Update atomically replaces the published calendar.
func (s *Server) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: s.opts.Clock.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendarRequest serves the published calendar with conditional GET support.
func (s *Server) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
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
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	_, _ = io.WriteString(w, config.HTTPMsgOK)
}

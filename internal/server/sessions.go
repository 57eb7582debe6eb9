package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
)

// sessionEntry guards one browser's Session.
type sessionEntry struct {
	mu       sync.Mutex
	session  *engine.Session
	lastSeen time.Time
}

// SessionStore maps session cookies to independent event stores. Sessions
// idle for longer than config.SessionCookieMaxAge are dropped.
type SessionStore struct {
	clock engine.Clock
	seed  []string

	mu      sync.Mutex
	entries map[uuid.UUID]*sessionEntry
}

// NewSessionStore creates an empty store; new sessions are seeded with seed.
func NewSessionStore(clock engine.Clock, seed []string) *SessionStore {
	return &SessionStore{
		clock:   clock,
		seed:    seed,
		entries: make(map[uuid.UUID]*sessionEntry),
	}
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

// Do runs fn with exclusive access to the caller's session, creating the
// session (and its cookie) when the request has none or an expired one.
func (st *SessionStore) Do(w http.ResponseWriter, r *http.Request, fn func(s *engine.Session)) {
	entry := st.lookup(w, r)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
}

func (st *SessionStore) lookup(w http.ResponseWriter, r *http.Request) *sessionEntry {
	now := st.clock.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	if c, err := r.Cookie(config.SessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if entry, ok := st.entries[id]; ok && now.Sub(entry.lastSeen) <= config.SessionCookieMaxAge {
				entry.lastSeen = now
				return entry
			}
		}
	}

	st.sweep(now)

	session := engine.NewSession(st.seed...)
	entry := &sessionEntry{session: session, lastSeen: now}
	st.entries[session.ID] = entry

	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    session.ID.String(),
		Path:     "/",
		MaxAge:   int(config.SessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info(config.MsgSessionCreated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySession, session.ID,
		config.LogKeyCount, len(st.entries),
	)
	return entry
}

// sweep drops idle sessions. Callers hold st.mu.
func (st *SessionStore) sweep(now time.Time) {
	for id, entry := range st.entries {
		if now.Sub(entry.lastSeen) > config.SessionCookieMaxAge {
			delete(st.entries, id)
		}
	}
}

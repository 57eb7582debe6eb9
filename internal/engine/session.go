package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// Session is the state of one interactive session: the known people, the
// visible subset and the event store. It is not safe for concurrent use;
// callers sharing a Session across goroutines must serialize access.
type Session struct {
	ID uuid.UUID

	people  []string
	visible map[string]bool
	events  []Event

	// NewID generates event identifiers. Tests may replace it.
	NewID func() uuid.UUID
}

// NewSession creates an empty event store seeded with people, all visible.
func NewSession(seed ...string) *Session {
	s := &Session{
		ID:      uuid.New(),
		visible: make(map[string]bool),
		NewID:   uuid.New,
	}
	for _, name := range seed {
		// Seeds come from settings and may contain blanks.
		_, _ = s.AddPerson(name)
	}
	return s
}

// AddPerson registers name and makes it visible. It reports false without
// error when the person already exists.
func (s *Session) AddPerson(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	if s.Knows(name) {
		slog.Debug(config.MsgPersonExists,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyName, name)
		return false, nil
	}
	s.people = append(s.people, name)
	s.visible[name] = true

	slog.Debug(config.MsgPersonAdded,
		config.LogKeyComponent, config.CompSession,
		config.LogKeySession, s.ID,
		config.LogKeyName, name)
	return true, nil
}

// Knows reports whether name is a registered person.
func (s *Session) Knows(name string) bool {
	for _, p := range s.people {
		if p == name {
			return true
		}
	}
	return false
}

// People returns the registered people in registration order.
func (s *Session) People() []string {
	out := make([]string, len(s.people))
	copy(out, s.people)
	return out
}

// Visible returns the visible people in registration order.
func (s *Session) Visible() []string {
	out := make([]string, 0, len(s.people))
	for _, p := range s.people {
		if s.visible[p] {
			out = append(out, p)
		}
	}
	return out
}

// SetVisible replaces the visible set. Unknown names are ignored.
func (s *Session) SetVisible(names []string) {
	s.visible = make(map[string]bool, len(names))
	for _, n := range names {
		if s.Knows(n) {
			s.visible[n] = true
		}
	}
}

// AddEvent validates in and appends the resulting event to the store.
func (s *Session) AddEvent(in EventInput) (Event, error) {
	in.Person = strings.TrimSpace(in.Person)
	if !s.Knows(in.Person) {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownPerson, in.Person)
	}
	if err := in.Validate(); err != nil {
		slog.Debug(config.MsgEventRejected,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyError, err)
		return Event{}, err
	}

	ev := newEvent(s.NewID(), in)
	s.events = append(s.events, ev)

	slog.Debug(config.MsgEventAdded,
		config.LogKeyComponent, config.CompSession,
		config.LogKeySession, s.ID,
		config.LogKeyEventID, ev.ID,
		config.LogKeyName, ev.Person)
	return ev, nil
}

// Events returns a copy of the store in insertion order.
func (s *Session) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of stored events.
func (s *Session) Len() int {
	return len(s.events)
}

// DeleteEvent removes the event at position index.
func (s *Session) DeleteEvent(index int) (Event, error) {
	if index < 0 || index >= len(s.events) {
		return Event{}, fmt.Errorf("%w: index %d", ErrNoSuchEvent, index)
	}
	ev := s.events[index]
	s.events = append(s.events[:index], s.events[index+1:]...)

	slog.Debug(config.MsgEventDeleted,
		config.LogKeyComponent, config.CompSession,
		config.LogKeySession, s.ID,
		config.LogKeyEventID, ev.ID)
	return ev, nil
}

// DeleteEventByID removes the event with the given identifier.
func (s *Session) DeleteEventByID(id uuid.UUID) (Event, error) {
	for i, ev := range s.events {
		if ev.ID == id {
			return s.DeleteEvent(i)
		}
	}
	return Event{}, fmt.Errorf("%w: %s", ErrNoSuchEvent, id)
}

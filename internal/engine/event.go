package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// Sentinel errors returned by the add/delete operations.
var (
	ErrEmptyName     = errors.New(config.ErrEmptyName)
	ErrUnknownPerson = errors.New(config.ErrUnknownPerson)
	ErrInvalidDate   = errors.New(config.ErrInvalidDate)
	ErrInvalidHour   = errors.New(config.ErrInvalidHour)
	ErrEmptyRange    = errors.New(config.ErrEmptyRange)
	ErrNoSuchEvent   = errors.New(config.ErrNoSuchEvent)
)

// Event is one person's time block on a single calendar day.
// Events are immutable once created.
type Event struct {
	ID uuid.UUID `json:"id"`

	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`

	// StartHour and EndHour are whole hours, EndHour exclusive (1..24).
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`

	Person string `json:"person"`
	Title  string `json:"title"`
	Place  string `json:"place"`
	Note   string `json:"note"`

	// Weekday is derived from the date at creation, Monday = 0.
	Weekday int `json:"weekday"`
}

// Date returns midnight of the event's day in the local zone.
func (e Event) Date() time.Time {
	return time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether both events fall on the same calendar date.
func (e Event) SameDay(o Event) bool {
	return e.Year == o.Year && e.Month == o.Month && e.Day == o.Day
}

// EventInput carries the fields of the add-event action.
type EventInput struct {
	Person    string `json:"person"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Title     string `json:"title"`
	Place     string `json:"place"`
	Note      string `json:"note"`
}

// Validate checks the numeric ranges of the input. Person membership is
// checked by the Session, which owns the list of known people.
func (in EventInput) Validate() error {
	if in.Year < config.MinYear || in.Year > config.MaxYear {
		return ErrInvalidDate
	}
	if in.Month < 1 || in.Month > 12 {
		return ErrInvalidDate
	}
	if in.Day < 1 || in.Day > DaysIn(in.Year, in.Month) {
		return ErrInvalidDate
	}
	if in.StartHour < config.MinStartHour || in.StartHour > config.MaxStartHour {
		return ErrInvalidHour
	}
	if in.EndHour < config.MinEndHour || in.EndHour > config.MaxEndHour {
		return ErrInvalidHour
	}
	// Stricter than the input widgets: a zero or negative range would draw nothing useful.
	if in.StartHour >= in.EndHour {
		return ErrEmptyRange
	}
	return nil
}

// DaysIn returns the number of days of month in year.
func DaysIn(year, month int) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayWeekday converts Go's Sunday-first weekday to Monday = 0 .. Sunday = 6.
func MondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % config.DaysPerWeek
}

func newEvent(id uuid.UUID, in EventInput) Event {
	date := time.Date(in.Year, time.Month(in.Month), in.Day, 0, 0, 0, 0, time.UTC)
	return Event{
		ID:        id,
		Year:      in.Year,
		Month:     in.Month,
		Day:       in.Day,
		StartHour: in.StartHour,
		EndHour:   in.EndHour,
		Person:    in.Person,
		Title:     in.Title,
		Place:     in.Place,
		Note:      in.Note,
		Weekday:   MondayWeekday(date),
	}
}

package holiday

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
	"github.com/teambition/rrule-go"
)

// feedEntry is one VEVENT of a holiday feed: the days [start, end) and an
// optional yearly recurrence.
type feedEntry struct {
	start time.Time
	end   time.Time
	rule  *rrule.ROption
}

// Feed is a holiday calendar read from an iCalendar source. Every day an
// event covers counts as a holiday; DTEND is exclusive.
type Feed struct {
	location string
	fetcher  engine.Fetcher

	mu      sync.RWMutex
	entries []feedEntry
	years   map[int]map[civil]bool
}

// LoadFeed reads location (file path or http(s) URL) into a Feed.
func LoadFeed(ctx context.Context, f engine.Fetcher, location string) (*Feed, error) {
	feed := &Feed{location: location, fetcher: f}
	if err := feed.Reload(ctx); err != nil {
		return nil, err
	}
	return feed, nil
}

// Location is the source the feed was loaded from.
func (f *Feed) Location() string { return f.location }

// Reload fetches and parses the source again. On failure the previous data
// is kept.
func (f *Feed) Reload(ctx context.Context) error {
	rc, err := engine.OpenSource(ctx, f.fetcher, f.location)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrHolidayFeed, err)
	}
	defer func() { _ = rc.Close() }()

	entries, err := parseFeed(rc)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.entries = entries
	f.years = make(map[int]map[civil]bool)
	f.mu.Unlock()

	slog.Info(config.MsgHolidaysLoaded,
		config.LogKeyComponent, config.CompHoliday,
		config.LogKeyPath, f.location,
		config.LogKeyCount, len(entries))
	return nil
}

func (f *Feed) IsHoliday(date time.Time) bool {
	return f.year(date.Year())[civilOf(date)]
}

func (f *Feed) year(year int) map[civil]bool {
	f.mu.RLock()
	days, ok := f.years[year]
	f.mu.RUnlock()
	if ok {
		return days
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if days, ok := f.years[year]; ok {
		return days
	}
	days = expandEntries(f.entries, year)
	f.years[year] = days
	return days
}

func parseFeed(r io.Reader) ([]feedEntry, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalDecode, err)
	}

	var entries []feedEntry
	for _, ev := range cal.Events() {
		entry, ok := parseEntry(ev)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(ev *ical.VEvent) (feedEntry, bool) {
	prop := ev.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		slog.Warn(config.MsgSkippedHoliday, config.LogKeyComponent, config.CompHoliday)
		return feedEntry{}, false
	}

	var entry feedEntry
	var err error
	if isAllDay(prop) {
		entry.start, err = ev.GetAllDayStartAt()
		if err == nil {
			entry.end, err = ev.GetAllDayEndAt()
		}
	} else {
		entry.start, err = ev.GetStartAt()
		if err == nil {
			entry.end, err = ev.GetEndAt()
		}
	}
	if entry.start.IsZero() {
		slog.Warn(config.MsgSkippedHoliday,
			config.LogKeyComponent, config.CompHoliday,
			config.LogKeyError, err)
		return feedEntry{}, false
	}
	// A missing or empty DTEND covers the start day only.
	if err != nil || !entry.end.After(entry.start) {
		entry.end = startOfDay(entry.start).AddDate(0, 0, 1)
	}

	if rp := ev.GetProperty(ical.ComponentPropertyRrule); rp != nil && rp.Value != "" {
		opt, rerr := rrule.StrToROption(rp.Value)
		if rerr != nil {
			slog.Warn(config.ErrRRuleParse,
				config.LogKeyComponent, config.CompHoliday,
				config.LogKeyError, rerr)
		} else {
			entry.rule = opt
		}
	}
	return entry, true
}

// isAllDay reports a DATE-valued DTSTART, either via VALUE=DATE or by the
// absence of a time part.
func isAllDay(prop *ical.IANAProperty) bool {
	if vs, ok := prop.ICalParameters[config.ICalParamValue]; ok && len(vs) > 0 && strings.EqualFold(vs[0], config.ICalValueDate) {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

func expandEntries(entries []feedEntry, year int) map[civil]bool {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)
	days := make(map[civil]bool)

	for _, e := range entries {
		if e.rule == nil {
			markDays(days, e.start, e.end, year)
			continue
		}
		opt := *e.rule
		opt.Dtstart = e.start
		rr, err := rrule.NewRRule(opt)
		if err != nil {
			continue
		}
		span := e.end.Sub(e.start)
		// Occurrences starting in the previous year may spill into this one.
		for _, occ := range rr.Between(from.AddDate(0, 0, -1), to, false) {
			markDays(days, occ, occ.Add(span), year)
		}
	}
	return days
}

// markDays records every day in [start, end) that falls in year.
func markDays(days map[civil]bool, start, end time.Time, year int) {
	for d := startOfDay(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Year() == year {
			days[civilOf(d)] = true
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

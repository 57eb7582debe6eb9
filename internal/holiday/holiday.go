// Package holiday classifies calendar dates as public holidays. The scene only
// uses the answer to pick a segment colour.
package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
)

// Checker reports whether a date is a holiday. Only the year, month and day of
// the argument are considered.
type Checker interface {
	IsHoliday(date time.Time) bool
}

var _ engine.HolidayChecker = Checker(nil)

// None never reports a holiday.
type None struct{}

func (None) IsHoliday(time.Time) bool { return false }

// Union reports a holiday when any of its members does.
type Union []Checker

func (u Union) IsHoliday(date time.Time) bool {
	for _, c := range u {
		if c != nil && c.IsHoliday(date) {
			return true
		}
	}
	return false
}

// civil is a calendar date without a location.
type civil struct {
	year  int
	month time.Month
	day   int
}

func civilOf(t time.Time) civil {
	y, m, d := t.Date()
	return civil{y, m, d}
}

// FromSettings builds the checker described by the settings file: the
// built-in calendar for the configured area plus every configured feed. The
// feeds are also returned so the caller can schedule their refresh.
func FromSettings(ctx context.Context, s config.HolidaySettings, f engine.Fetcher) (Checker, []*Feed, error) {
	var union Union

	switch s.Area {
	case config.HolidayAreaJapan:
		jp, err := NewJapan()
		if err != nil {
			return nil, nil, err
		}
		union = append(union, jp)
	case config.HolidayAreaNone, "":
	default:
		return nil, nil, fmt.Errorf("%s: %q", config.ErrHolidayArea, s.Area)
	}

	var feeds []*Feed
	for _, location := range s.Feeds {
		feed, err := LoadFeed(ctx, f, location)
		if err != nil {
			return nil, nil, err
		}
		feeds = append(feeds, feed)
		union = append(union, feed)
	}

	switch len(union) {
	case 0:
		return None{}, feeds, nil
	case 1:
		return union[0], feeds, nil
	}
	return union, feeds, nil
}

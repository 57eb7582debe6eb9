package engine

import (
	"fmt"

	"github.com/tartampluch/go-schedule3d/internal/config"
)

// Labeler supplies the human-readable strings of a scene. It lets the UI
// inject localized text into the logic layer.
type Labeler interface {
	WholeMonth() string
	Week(n, startDay, endDay int) string
	EventTooltip(e Event) string
	OverlapTooltip(o Overlap) string
	NoticeEmptyStore() string
	NoticeNoMatch() string
	AxisTitles() (date, person, hour string)
}

// DefaultLabeler renders the English fallbacks.
type DefaultLabeler struct{}

func (DefaultLabeler) WholeMonth() string { return config.FallbackWholeMonth }

func (DefaultLabeler) Week(n, startDay, endDay int) string {
	return fmt.Sprintf(config.FallbackWeekBucket, n, startDay, endDay)
}

func (DefaultLabeler) EventTooltip(e Event) string {
	return fmt.Sprintf(config.FallbackTooltipEvent,
		e.Title, e.Person,
		e.Year, e.Month, e.Day, weekdayName(e.Weekday),
		e.StartHour, e.EndHour,
		e.Place, e.Note)
}

func (DefaultLabeler) OverlapTooltip(o Overlap) string {
	a, b := o.First, o.Second
	return fmt.Sprintf(config.FallbackTooltipOverlap,
		a.Person, a.Title, a.StartHour, a.EndHour,
		b.Person, b.Title, b.StartHour, b.EndHour,
		o.StartHour, o.EndHour,
		a.Year, a.Month, a.Day, weekdayName(a.Weekday))
}

func (DefaultLabeler) NoticeEmptyStore() string { return config.FallbackNoticeEmpty }

func (DefaultLabeler) NoticeNoMatch() string { return config.FallbackNoticeNoMatch }

func (DefaultLabeler) AxisTitles() (string, string, string) {
	return config.FallbackAxisDate, config.FallbackAxisPerson, config.FallbackAxisTime
}

func weekdayName(wd int) string {
	if wd < 0 || wd >= config.DaysPerWeek {
		return ""
	}
	return config.FallbackWeekdays[wd]
}

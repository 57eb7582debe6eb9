package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// ExportICS encodes events as an iCalendar document. Times are written as
// floating local date-times since the store has no notion of zones.
func ExportICS(events []Event, clock Clock) ([]byte, error) {
	if len(events) == 0 {
		// A valid empty VCALENDAR keeps subscribed clients from flagging the feed.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(clock.Now().UTC())

	for _, e := range events {
		ev := ical.NewEvent()
		ev.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, e.ID, config.ICalDomain))
		ev.Props.Set(dtStamp)
		ev.Props.SetText(config.PropSummary, e.Title)
		ev.Props.SetText(config.PropCategories, e.Person)
		if e.Place != "" {
			ev.Props.SetText(config.PropLocation, e.Place)
		}
		if e.Note != "" {
			ev.Props.SetText(config.PropDesc, e.Note)
		}

		day := time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.UTC)
		ev.Props.Set(floatingProp(config.PropDTStart, day.Add(time.Duration(e.StartHour)*time.Hour)))
		// EndHour 24 rolls over to midnight of the next day.
		ev.Props.Set(floatingProp(config.PropDTEnd, day.Add(time.Duration(e.EndHour)*time.Hour)))

		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// floatingProp sets the value by hand to avoid the TZID/UTC forms of SetDateTime.
func floatingProp(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = t.Format(config.ICalFloatingLayout)
	return prop
}

package engine

import (
	"slices"
	"time"

	"github.com/tartampluch/go-schedule3d/internal/config"
)

// HolidayChecker classifies calendar dates. Only used to pick a colour.
type HolidayChecker interface {
	IsHoliday(date time.Time) bool
}

// Selection is the period chosen in the view controls. Zero Year or Month
// selects the first period that has events; Week 0 is the whole month.
type Selection struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Week  int `json:"week"`
}

// Axis describes one axis of the 3D scene.
type Axis struct {
	Title      string     `json:"title"`
	Range      [2]float64 `json:"range"`
	Dtick      float64    `json:"dtick,omitempty"`
	TickValues []float64  `json:"tickvals,omitempty"`
	TickText   []string   `json:"ticktext,omitempty"`
}

// Scene is everything the presentation layer needs to draw one view.
type Scene struct {
	// Empty is set when the store has no events at all; nothing else is filled
	// in except Notice.
	Empty  bool   `json:"empty"`
	Notice string `json:"notice,omitempty"`

	Selection Selection    `json:"selection"`
	Years     []int        `json:"years"`
	Months    []int        `json:"months"`
	Buckets   []WeekBucket `json:"buckets"`
	Bucket    WeekBucket   `json:"bucket"`

	Events   []Event   `json:"events"`
	Overlaps []Overlap `json:"overlaps"`
	Segments []Segment `json:"segments"`

	XAxis Axis `json:"xaxis"`
	YAxis Axis `json:"yaxis"`
	ZAxis Axis `json:"zaxis"`
}

// RenderInput bundles the state a render pass reads.
type RenderInput struct {
	Events    []Event
	Visible   []string
	Selection Selection
	Holidays  HolidayChecker
	Labels    Labeler
}

// Render recomputes the whole scene from the event store and the view
// controls. It has no side effects.
func Render(in RenderInput) Scene {
	labels := in.Labels
	if labels == nil {
		labels = DefaultLabeler{}
	}

	if len(in.Events) == 0 {
		return Scene{Empty: true, Notice: labels.NoticeEmptyStore()}
	}

	sel := resolveSelection(in.Events, in.Selection)
	buckets := WeekBuckets(sel.Year, sel.Month, labels)
	bucket := FindBucket(buckets, sel.Week)
	sel.Week = bucket.Week

	filtered := Filter(in.Events, Criteria{
		Year:     sel.Year,
		Month:    sel.Month,
		StartDay: bucket.StartDay,
		EndDay:   bucket.EndDay,
		Visible:  in.Visible,
	})
	overlaps := DetectOverlaps(filtered)
	layout := NewLayout(in.Visible)

	segments := make([]Segment, 0, len(filtered)+len(overlaps))
	for _, e := range filtered {
		holiday := in.Holidays != nil && in.Holidays.IsHoliday(e.Date())
		segments = append(segments, layout.EventSegment(e, holiday, labels.EventTooltip(e)))
	}
	for _, o := range overlaps {
		segments = append(segments, layout.ConflictSegment(o, labels.OverlapTooltip(o)))
	}

	dateTitle, personTitle, hourTitle := labels.AxisTitles()
	tickVals, tickText := layout.Ticks()

	scene := Scene{
		Selection: sel,
		Years:     AvailableYears(in.Events),
		Months:    AvailableMonths(in.Events, sel.Year),
		Buckets:   buckets,
		Bucket:    bucket,
		Events:    filtered,
		Overlaps:  overlaps,
		Segments:  segments,
		// Reversed so the selected range reads consistently from the default camera.
		XAxis: Axis{
			Title: dateTitle,
			Range: [2]float64{float64(bucket.EndDay), float64(bucket.StartDay)},
			Dtick: config.DayAxisDtick,
		},
		YAxis: Axis{
			Title:      personTitle,
			TickValues: tickVals,
			TickText:   tickText,
			Range:      [2]float64{0, 1},
		},
		// Inverted so midnight is at the top.
		ZAxis: Axis{
			Title: hourTitle,
			Range: [2]float64{config.HourAxisMax, config.HourAxisMin},
			Dtick: config.HourAxisDtick,
		},
	}
	if len(filtered) == 0 {
		scene.Notice = labels.NoticeNoMatch()
	}
	return scene
}

// resolveSelection snaps sel onto a year and month that have events.
func resolveSelection(events []Event, sel Selection) Selection {
	years := AvailableYears(events)
	if !slices.Contains(years, sel.Year) {
		sel.Year = years[0]
	}
	months := AvailableMonths(events, sel.Year)
	if !slices.Contains(months, sel.Month) {
		sel.Month = months[0]
	}
	return sel
}

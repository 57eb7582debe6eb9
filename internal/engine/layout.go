package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// SegmentKind distinguishes regular event segments from conflict markers.
type SegmentKind string

const (
	SegmentEvent    SegmentKind = "event"
	SegmentConflict SegmentKind = "conflict"
)

// Point is a position in the scene: X = day, Y = person position, Z = hour.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Segment is one drawable line of the scene.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	From    Point       `json:"from"`
	To      Point       `json:"to"`
	Color   string      `json:"color"`
	Width   int         `json:"width"`
	Tooltip string      `json:"tooltip"`

	// EventID is the zero UUID for conflict segments.
	EventID uuid.UUID `json:"event_id"`
}

// Layout assigns each visible person a vertical position and a colour.
//
// Both are a function of the person's index in the visible list, so they
// change whenever the visible set changes.
type Layout struct {
	people    []string
	positions map[string]float64
	colors    map[string]string
}

// NewLayout spreads visible evenly over [0, 1] and around the hue circle.
func NewLayout(visible []string) Layout {
	l := Layout{
		people:    make([]string, len(visible)),
		positions: make(map[string]float64, len(visible)),
		colors:    make(map[string]string, len(visible)),
	}
	copy(l.people, visible)

	n := len(visible)
	for i, name := range visible {
		l.positions[name] = float64(i) / float64(max(1, n-1))
		hue := (i * config.HueCircle) / max(1, n)
		l.colors[name] = fmt.Sprintf(config.FormatPersonColor, hue)
	}
	return l
}

// Position returns the y coordinate of name.
func (l Layout) Position(name string) (float64, bool) {
	y, ok := l.positions[name]
	return y, ok
}

// Color returns the colour of name, or "" for people outside the layout.
func (l Layout) Color(name string) string {
	return l.colors[name]
}

// Ticks returns the y-axis tick positions and their labels.
func (l Layout) Ticks() ([]float64, []string) {
	vals := make([]float64, len(l.people))
	text := make([]string, len(l.people))
	for i, name := range l.people {
		vals[i] = l.positions[name]
		text[i] = name
	}
	return vals, text
}

// EventSegment maps e to a vertical line at (day, person). Holidays use a
// neutral colour instead of the person's colour.
func (l Layout) EventSegment(e Event, holiday bool, tooltip string) Segment {
	y := l.positions[e.Person]
	color := l.colors[e.Person]
	if holiday {
		color = config.ColorHoliday
	}
	return Segment{
		Kind:    SegmentEvent,
		From:    Point{X: float64(e.Day), Y: y, Z: float64(e.StartHour)},
		To:      Point{X: float64(e.Day), Y: y, Z: float64(e.EndHour)},
		Color:   color,
		Width:   config.WidthEvent,
		Tooltip: tooltip,
		EventID: e.ID,
	}
}

// ConflictSegment maps o to a line halfway between the two people involved.
func (l Layout) ConflictSegment(o Overlap, tooltip string) Segment {
	y := (l.positions[o.First.Person] + l.positions[o.Second.Person]) / 2
	return Segment{
		Kind:    SegmentConflict,
		From:    Point{X: float64(o.Day), Y: y, Z: float64(o.StartHour)},
		To:      Point{X: float64(o.Day), Y: y, Z: float64(o.EndHour)},
		Color:   config.ColorConflict,
		Width:   config.WidthConflict,
		Tooltip: tooltip,
	}
}

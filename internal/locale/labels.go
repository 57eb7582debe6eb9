package locale

import (
	"strconv"

	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
)

// Labels renders scene strings through a Translator.
type Labels struct {
	T *Translator
}

var _ engine.Labeler = Labels{}

func (l Labels) WholeMonth() string { return l.T.Msg(config.TKeyWholeMonth) }

func (l Labels) Week(n, startDay, endDay int) string {
	return l.T.Template(config.TKeyWeekBucket, map[string]any{
		"Week":  n,
		"Start": startDay,
		"End":   endDay,
	})
}

func (l Labels) Weekday(wd int) string {
	if wd < 0 || wd >= config.DaysPerWeek {
		return ""
	}
	return l.T.Msg(config.TKeyPrefixWeekday + strconv.Itoa(wd))
}

func (l Labels) EventTooltip(e engine.Event) string {
	return l.T.Template(config.TKeyTooltipEvent, map[string]any{
		"Title":   e.Title,
		"Person":  e.Person,
		"Year":    e.Year,
		"Month":   e.Month,
		"Day":     e.Day,
		"Weekday": l.Weekday(e.Weekday),
		"Start":   e.StartHour,
		"End":     e.EndHour,
		"Place":   e.Place,
		"Note":    e.Note,
	})
}

func (l Labels) OverlapTooltip(o engine.Overlap) string {
	a, b := o.First, o.Second
	return l.T.Template(config.TKeyTooltipOverlap, map[string]any{
		"PersonA": a.Person,
		"TitleA":  a.Title,
		"StartA":  a.StartHour,
		"EndA":    a.EndHour,
		"PersonB": b.Person,
		"TitleB":  b.Title,
		"StartB":  b.StartHour,
		"EndB":    b.EndHour,
		"Start":   o.StartHour,
		"End":     o.EndHour,
		"Year":    a.Year,
		"Month":   a.Month,
		"Day":     a.Day,
		"Weekday": l.Weekday(a.Weekday),
	})
}

func (l Labels) NoticeEmptyStore() string { return l.T.Msg(config.TKeyNoticeEmpty) }

func (l Labels) NoticeNoMatch() string { return l.T.Msg(config.TKeyNoticeNoMatch) }

func (l Labels) AxisTitles() (string, string, string) {
	return l.T.Msg(config.TKeyAxisDate), l.T.Msg(config.TKeyAxisPerson), l.T.Msg(config.TKeyAxisTime)
}

// EventRow is the one-line description used in event lists.
func (l Labels) EventRow(e engine.Event) string {
	return l.T.Template(config.TKeyFormatEventRow, map[string]any{
		"Year":   e.Year,
		"Month":  e.Month,
		"Day":    e.Day,
		"Start":  e.StartHour,
		"End":    e.EndHour,
		"Person": e.Person,
		"Title":  e.Title,
	})
}

// Conflicts is the overlap counter shown next to the scene.
func (l Labels) Conflicts(n int) string {
	return l.T.Template(config.TKeyLblConflicts, map[string]any{"Count": n})
}

// OverlapRow is the one-line description of a conflict in the scene list.
func (l Labels) OverlapRow(o engine.Overlap) string {
	return l.T.Template(config.TKeyFormatOverlapRow, map[string]any{
		"Day":     o.Day,
		"Start":   o.StartHour,
		"End":     o.EndHour,
		"PersonA": o.First.Person,
		"PersonB": o.Second.Person,
	})
}

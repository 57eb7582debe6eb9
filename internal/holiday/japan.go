package holiday

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/teambition/rrule-go"
)

// yearly is a national holiday expressed as a recurrence rule, in force for
// the years [from, to]. A zero bound is open.
type yearly struct {
	rule   string
	from   int
	to     int
	except []int
}

var japaneseRules = []yearly{
	{rule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
	// Coming of Age Day
	{rule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=15", to: 1999},
	{rule: "FREQ=YEARLY;BYMONTH=1;BYDAY=2MO", from: 2000},
	{rule: "FREQ=YEARLY;BYMONTH=2;BYMONTHDAY=11"},
	// Emperor's Birthday
	{rule: "FREQ=YEARLY;BYMONTH=2;BYMONTHDAY=23", from: 2020},
	{rule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=23", from: 1989, to: 2018},
	// Golden Week
	{rule: "FREQ=YEARLY;BYMONTH=4;BYMONTHDAY=29"},
	{rule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=3"},
	{rule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=4", from: 2007},
	{rule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=5"},
	// Marine Day
	{rule: "FREQ=YEARLY;BYMONTH=7;BYMONTHDAY=20", from: 1996, to: 2002},
	{rule: "FREQ=YEARLY;BYMONTH=7;BYDAY=3MO", from: 2003, except: []int{2020, 2021}},
	// Mountain Day
	{rule: "FREQ=YEARLY;BYMONTH=8;BYMONTHDAY=11", from: 2016, except: []int{2020, 2021}},
	// Respect for the Aged Day
	{rule: "FREQ=YEARLY;BYMONTH=9;BYMONTHDAY=15", to: 2002},
	{rule: "FREQ=YEARLY;BYMONTH=9;BYDAY=3MO", from: 2003},
	// Sports Day
	{rule: "FREQ=YEARLY;BYMONTH=10;BYMONTHDAY=10", to: 1999},
	{rule: "FREQ=YEARLY;BYMONTH=10;BYDAY=2MO", from: 2000, except: []int{2020, 2021}},
	{rule: "FREQ=YEARLY;BYMONTH=11;BYMONTHDAY=3"},
	{rule: "FREQ=YEARLY;BYMONTH=11;BYMONTHDAY=23"},
}

// One-off holidays set by special legislation.
var japaneseSpecial = map[int][]civil{
	2019: {{2019, time.May, 1}, {2019, time.October, 22}},
	2020: {{2020, time.July, 23}, {2020, time.July, 24}, {2020, time.August, 10}},
	2021: {{2021, time.July, 22}, {2021, time.July, 23}, {2021, time.August, 8}},
}

// substituteFrom is the first year a Sunday holiday moves to the next
// non-holiday day instead of the Monday only.
const substituteFrom = 2007

type compiledRule struct {
	yearly
	opt *rrule.ROption
}

// Japan is the Japanese national holiday calendar, including equinox days,
// substitute holidays and citizens' holidays. Years are computed on first use
// and cached.
type Japan struct {
	rules []compiledRule

	mu    sync.Mutex
	years map[int]map[civil]bool
}

// NewJapan parses the holiday rules.
func NewJapan() (*Japan, error) {
	j := &Japan{years: make(map[int]map[civil]bool)}
	for _, y := range japaneseRules {
		opt, err := rrule.StrToROption(y.rule)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", config.ErrRRuleParse, y.rule, err)
		}
		j.rules = append(j.rules, compiledRule{yearly: y, opt: opt})
	}
	return j, nil
}

func (j *Japan) IsHoliday(date time.Time) bool {
	return j.year(date.Year())[civilOf(date)]
}

// Holidays returns the holidays of year in chronological order.
func (j *Japan) Holidays(year int) []time.Time {
	days := j.year(year)
	var out []time.Time
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		if days[civilOf(d)] {
			out = append(out, d)
		}
	}
	return out
}

func (j *Japan) year(year int) map[civil]bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if days, ok := j.years[year]; ok {
		return days
	}
	days := j.compute(year)
	j.years[year] = days

	slog.Debug(config.MsgHolidayYear,
		config.LogKeyComponent, config.CompHoliday,
		config.LogKeyYear, year,
		config.LogKeyCount, len(days))
	return days
}

func (j *Japan) compute(year int) map[civil]bool {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	national := make(map[civil]bool)
	for _, r := range j.rules {
		if !r.inForce(year) {
			continue
		}
		opt := *r.opt
		opt.Dtstart = start
		rr, err := rrule.NewRRule(opt)
		if err != nil {
			slog.Warn(config.ErrRRuleParse,
				config.LogKeyComponent, config.CompHoliday,
				config.LogKeyYear, year,
				config.LogKeyError, err)
			continue
		}
		for _, t := range rr.Between(start, end, true) {
			national[civilOf(t)] = true
		}
	}
	if vernal, autumnal, ok := equinoxes(year); ok {
		national[civil{year, time.March, vernal}] = true
		national[civil{year, time.September, autumnal}] = true
	}
	for _, d := range japaneseSpecial[year] {
		national[d] = true
	}

	days := make(map[civil]bool, len(national)+4)
	for d := range national {
		days[d] = true
	}

	// Citizens' holiday: a weekday squeezed between two national holidays.
	for d := start.AddDate(0, 0, 1); d.Before(end); d = d.AddDate(0, 0, 1) {
		if national[civilOf(d)] || d.Weekday() == time.Sunday {
			continue
		}
		if national[civilOf(d.AddDate(0, 0, -1))] && national[civilOf(d.AddDate(0, 0, 1))] {
			days[civilOf(d)] = true
		}
	}

	// Substitute holiday for national holidays falling on a Sunday.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday || !national[civilOf(d)] {
			continue
		}
		next := d.AddDate(0, 0, 1)
		if year >= substituteFrom {
			for days[civilOf(next)] {
				next = next.AddDate(0, 0, 1)
			}
		} else if days[civilOf(next)] {
			continue
		}
		days[civilOf(next)] = true
	}
	return days
}

func (y yearly) inForce(year int) bool {
	if y.from != 0 && year < y.from {
		return false
	}
	if y.to != 0 && year > y.to {
		return false
	}
	for _, e := range y.except {
		if e == year {
			return false
		}
	}
	return true
}

// equinoxes approximates the March and September equinox days. The formula
// holds for 1980 through 2099.
func equinoxes(year int) (vernal, autumnal int, ok bool) {
	if year < 1980 || year > 2099 {
		return 0, 0, false
	}
	n := float64(year - 1980)
	leap := float64((year - 1980) / 4)
	vernal = int(20.8431 + 0.242194*n - leap)
	autumnal = int(23.2488 + 0.242194*n - leap)
	return vernal, autumnal, true
}

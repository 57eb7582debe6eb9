package engine

import (
	"time"

	"github.com/tartampluch/go-schedule3d/internal/config"
)

// WeekBucket is an inclusive day range of the selected month: either the
// whole month (Week == 0) or one Monday-first calendar row.
type WeekBucket struct {
	Week     int    `json:"week"`
	Label    string `json:"label"`
	StartDay int    `json:"start_day"`
	EndDay   int    `json:"end_day"`
}

// WeekBuckets lays out year/month as Monday-first calendar rows. The first
// bucket always spans the whole month; row buckets follow, numbered from 1,
// each clipped to the days belonging to the month.
func WeekBuckets(year, month int, labels Labeler) []WeekBucket {
	if labels == nil {
		labels = DefaultLabeler{}
	}
	last := DaysIn(year, month)
	offset := MondayWeekday(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))

	buckets := []WeekBucket{{
		Week:     config.WholeMonthWeek,
		Label:    labels.WholeMonth(),
		StartDay: 1,
		EndDay:   last,
	}}

	for day := 1; day <= last; day++ {
		row := (offset+day-1)/config.DaysPerWeek + 1
		if row > len(buckets)-1 {
			buckets = append(buckets, WeekBucket{Week: row, StartDay: day})
		}
		buckets[row].EndDay = day
	}

	for i := 1; i < len(buckets); i++ {
		b := &buckets[i]
		b.Label = labels.Week(b.Week, b.StartDay, b.EndDay)
	}
	return buckets
}

// FindBucket returns the bucket numbered week, falling back to the whole month.
func FindBucket(buckets []WeekBucket, week int) WeekBucket {
	for _, b := range buckets {
		if b.Week == week {
			return b
		}
	}
	return buckets[0]
}

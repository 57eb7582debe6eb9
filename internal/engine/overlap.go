package engine

// Overlap is the time intersection of two different people's events on the
// same day. It is derived on every render and never stored.
type Overlap struct {
	First     Event `json:"first"`
	Second    Event `json:"second"`
	Day       int   `json:"day"`
	StartHour int   `json:"start_hour"`
	EndHour   int   `json:"end_hour"`
}

type dayKey struct{ year, month, day int }

// DetectOverlaps compares every pair of events sharing a calendar day and
// belonging to different people, emitting one Overlap per strictly positive
// intersection. Three or more events overlapping at the same time produce
// one Overlap per pair; regions are never merged.
//
// A person's own events are never compared, so self double-booking is not
// reported.
func DetectOverlaps(events []Event) []Overlap {
	var order []dayKey
	byDay := make(map[dayKey][]Event)
	for _, e := range events {
		k := dayKey{e.Year, e.Month, e.Day}
		if _, ok := byDay[k]; !ok {
			order = append(order, k)
		}
		byDay[k] = append(byDay[k], e)
	}

	out := make([]Overlap, 0)
	for _, k := range order {
		group := byDay[k]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.Person == b.Person {
					continue
				}
				start := max(a.StartHour, b.StartHour)
				end := min(a.EndHour, b.EndHour)
				if start >= end {
					continue
				}
				out = append(out, Overlap{
					First:     a,
					Second:    b,
					Day:       k.day,
					StartHour: start,
					EndHour:   end,
				})
			}
		}
	}
	return out
}

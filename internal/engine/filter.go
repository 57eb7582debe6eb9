package engine

import "sort"

// Criteria narrows the event store to one displayed period and set of people.
type Criteria struct {
	Year     int
	Month    int
	StartDay int // inclusive
	EndDay   int // inclusive
	Visible  []string
}

// Filter returns the events matching c, in store order.
func Filter(events []Event, c Criteria) []Event {
	visible := make(map[string]bool, len(c.Visible))
	for _, p := range c.Visible {
		visible[p] = true
	}

	out := make([]Event, 0)
	for _, e := range events {
		if e.Year != c.Year || e.Month != c.Month {
			continue
		}
		if e.Day < c.StartDay || e.Day > c.EndDay {
			continue
		}
		if !visible[e.Person] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AvailableYears returns the distinct years present in events, ascending.
func AvailableYears(events []Event) []int {
	seen := make(map[int]bool)
	for _, e := range events {
		seen[e.Year] = true
	}
	return sortedKeys(seen)
}

// AvailableMonths returns the distinct months of year present in events, ascending.
func AvailableMonths(events []Event, year int) []int {
	seen := make(map[int]bool)
	for _, e := range events {
		if e.Year == year {
			seen[e.Month] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

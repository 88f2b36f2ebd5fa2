package streak

import (
	"sort"
	"time"
)

// DayFormat is the layout for practice-day markers. Day boundaries use the
// server-local calendar date; time of day is truncated before comparison.
const DayFormat = "2006-01-02"

// ActivityWindowDays bounds the rolling window: markers aged 7 or more whole
// days are dropped on every update.
const ActivityWindowDays = 7

// DayMarker returns the marker for t's local calendar day.
func DayMarker(t time.Time) string {
	return t.Format(DayFormat)
}

// MarkDay inserts today's marker into the activity window if absent and
// drops every marker older than the trailing window. The input slice is not
// modified; the result is sorted ascending with no duplicates. Markers that
// fail to parse are discarded rather than kept forever.
func MarkDay(activity []string, today time.Time) []string {
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	cutoff := midnight.AddDate(0, 0, -(ActivityWindowDays - 1))

	seen := make(map[string]struct{}, len(activity)+1)
	kept := make([]string, 0, ActivityWindowDays)

	appendMarker := func(marker string) {
		day, err := time.ParseInLocation(DayFormat, marker, today.Location())
		if err != nil {
			return
		}
		if day.Before(cutoff) || day.After(midnight) {
			return
		}
		if _, dup := seen[marker]; dup {
			return
		}
		seen[marker] = struct{}{}
		kept = append(kept, marker)
	}

	for _, marker := range activity {
		appendMarker(marker)
	}
	appendMarker(DayMarker(today))

	sort.Strings(kept)
	return kept
}

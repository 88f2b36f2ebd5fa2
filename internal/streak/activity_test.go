package streak

import (
	"reflect"
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2025, 6, 15, 13, 45, 0, 0, time.Local)
	return base.AddDate(0, 0, offset)
}

func TestMarkDayInsertsToday(t *testing.T) {
	got := MarkDay(nil, day(0))
	want := []string{"2025-06-15"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MarkDay(nil) = %v, want %v", got, want)
	}
}

func TestMarkDayIsIdempotentWithinADay(t *testing.T) {
	first := MarkDay(nil, day(0))
	second := MarkDay(first, day(0).Add(4*time.Hour))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second call changed the window: %v vs %v", first, second)
	}
}

func TestMarkDayDropsMarkersOutsideWindow(t *testing.T) {
	activity := []string{}
	for offset := 0; offset <= 9; offset++ {
		activity = MarkDay(activity, day(offset))
	}

	if len(activity) != ActivityWindowDays {
		t.Fatalf("window holds %d markers, want %d: %v", len(activity), ActivityWindowDays, activity)
	}
	// Day 9 is the latest; day 3 is the oldest allowed (6 days earlier).
	if activity[0] != "2025-06-18" || activity[len(activity)-1] != "2025-06-24" {
		t.Errorf("unexpected window bounds: %v", activity)
	}
}

func TestMarkDaySortsAndDeduplicates(t *testing.T) {
	activity := []string{"2025-06-14", "2025-06-12", "2025-06-14"}
	got := MarkDay(activity, day(0))
	want := []string{"2025-06-12", "2025-06-14", "2025-06-15"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MarkDay = %v, want %v", got, want)
	}
}

func TestMarkDayDiscardsGarbageAndFutureMarkers(t *testing.T) {
	activity := []string{"not-a-date", "2025-06-20", "2025-06-14"}
	got := MarkDay(activity, day(0))
	want := []string{"2025-06-14", "2025-06-15"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MarkDay = %v, want %v", got, want)
	}
}

func TestMarkDayDoesNotMutateInput(t *testing.T) {
	activity := []string{"2025-06-14"}
	MarkDay(activity, day(0))
	if !reflect.DeepEqual(activity, []string{"2025-06-14"}) {
		t.Errorf("input slice was mutated: %v", activity)
	}
}

package timetricks

import (
	"fmt"
	"testing"
	"time"
)

func ExampleSameDay() {
	t := time.Date(2025, time.March, 1, 23, 59, 0, 0, time.Local)
	fmt.Println(SameDay(t, t.Add(-time.Hour)))
	fmt.Println(SameDay(t, t.Add(time.Hour)))
	// Output:
	// true
	// false
}

func TestNextBoundary(t *testing.T) {
	table := []struct {
		in       time.Time
		interval time.Duration
		want     time.Time
	}{{
		in:       time.Date(2025, time.March, 1, 14, 22, 31, 0, time.UTC),
		interval: time.Hour,
		want:     time.Date(2025, time.March, 1, 15, 0, 0, 0, time.UTC),
	}, {
		// Exactly on a boundary rolls to the next one.
		in:       time.Date(2025, time.March, 1, 14, 0, 0, 0, time.UTC),
		interval: time.Hour,
		want:     time.Date(2025, time.March, 1, 15, 0, 0, 0, time.UTC),
	}, {
		in:       time.Date(2025, time.March, 1, 23, 59, 0, 0, time.UTC),
		interval: 30 * time.Minute,
		want:     time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
	}}

	for _, tc := range table {
		if got := NextBoundary(tc.in, tc.interval); !got.Equal(tc.want) {
			t.Errorf("NextBoundary(%s, %s) = %s, want %s", tc.in, tc.interval, got, tc.want)
		}
	}
}

func TestDay(t *testing.T) {
	if got := Day(time.Now()); got != "today" {
		t.Errorf("got %q, want today", got)
	}
	if got := Day(time.Now().Add(24 * time.Hour)); got != "tomorrow" {
		t.Errorf("got %q, want tomorrow", got)
	}
	other := time.Date(1999, time.January, 5, 12, 0, 0, 0, time.Local)
	if got := Day(other); got != "01/05" {
		t.Errorf("got %q, want 01/05", got)
	}
}

func TestTrimClock(t *testing.T) {
	in := time.Date(2025, time.March, 1, 14, 22, 31, 0, time.Local)
	got := TrimClock(in)
	h, m, s := got.Clock()
	if h != 0 || m != 0 || s != 0 {
		t.Errorf("TrimClock left %02d:%02d:%02d on the clock", h, m, s)
	}
	if !SameDay(in, got) {
		t.Errorf("TrimClock changed the day: %s", got)
	}
}

package tide

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/timetricks"
)

// day builds a series with the given heights, one per hour from midnight.
func day(heights ...float64) Series {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	s := make(Series, len(heights))
	for i, h := range heights {
		s[i] = Sample{Time: base.Add(time.Duration(i) * time.Hour), Height: h}
	}
	return s
}

func TestFromPredictionsTruncates(t *testing.T) {
	preds := make(noaa.Predictions, 26)
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	for i := range preds {
		preds[i] = noaa.Prediction{
			Time:   noaa.Time(base.Add(time.Duration(i) * time.Hour)),
			Height: noaa.Height(float64(i)),
		}
	}

	s := FromPredictions(preds)
	if len(s) != HoursPerDay {
		t.Errorf("got %d samples, want %d", len(s), HoursPerDay)
	}
	if s[23].Height != 23 {
		t.Errorf("last sample height %f, want 23", s[23].Height)
	}
}

func TestLevels(t *testing.T) {
	table := []struct {
		name string
		in   Series
		want []int
	}{{
		name: "full range",
		in:   day(0, 3.5, 7),
		want: []int{0, 3, 7},
	}, {
		name: "flat day maps to middle",
		in:   day(2.5, 2.5, 2.5),
		want: []int{4, 4, 4},
	}, {
		name: "negative levels",
		in:   day(-1, 0, 1),
		want: []int{0, 3, 7},
	}, {
		name: "empty",
		in:   nil,
		want: nil,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Levels(8)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("incorrect levels (-want,+got): %s", diff)
			}
		})
	}
}

// Levels must be monotonic in the water level: a higher sample never maps to
// a lower row.
func TestLevelsMonotonic(t *testing.T) {
	s := day(0.1, 1.7, 2.3, 2.3, 3.1, 2.8, 1.2, 0.4, -0.6, -1.1, 0.2, 1.9)
	levels := s.Levels(8)
	for i := range s {
		for j := range s {
			if s[i].Height > s[j].Height && levels[i] < levels[j] {
				t.Errorf("hour %d (%.1f ft, row %d) below hour %d (%.1f ft, row %d)",
					i, s[i].Height, levels[i], j, s[j].Height, levels[j])
			}
		}
	}
}

func TestHourIndex(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		now := timetricks.SetClock(time.Now(), time.Duration(hour), 12)
		if got := HourIndex(now); got != hour {
			t.Errorf("HourIndex at %02d:12 = %d, want %d", hour, got, hour)
		}
	}
}

func TestTrend(t *testing.T) {
	s := day(1, 2, 2, 1)
	base := s[0].Time

	table := []struct {
		hour int
		want Trend
	}{
		{0, Rising},
		{1, Steady},
		{2, Falling},
		{3, Steady}, // no next sample
	}
	for _, tc := range table {
		now := base.Add(time.Duration(tc.hour) * time.Hour)
		if got := s.Trend(now); got != tc.want {
			t.Errorf("hour %d: got %s, want %s", tc.hour, got, tc.want)
		}
	}
}

func TestNextExtreme(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	extremes := []Extreme{
		{Time: base.Add(3 * time.Hour), Height: 2.5, Type: noaa.HighTide},
		{Time: base.Add(9 * time.Hour), Height: -0.3, Type: noaa.LowTide},
	}

	got, ok := NextExtreme(extremes, base.Add(5*time.Hour))
	if !ok {
		t.Fatal("expected an extreme")
	}
	if got.Type != noaa.LowTide {
		t.Errorf("got %s tide, want L", got.Type)
	}

	if _, ok := NextExtreme(extremes, base.Add(12*time.Hour)); ok {
		t.Error("expected no extreme after the last one")
	}
}

func TestSummary(t *testing.T) {
	// Build the series on today's date so the "today" phrasing is stable.
	base := timetricks.TrimClock(time.Now())
	s := make(Series, 24)
	for i := range s {
		s[i] = Sample{Time: base.Add(time.Duration(i) * time.Hour), Height: float64(i % 4)}
	}
	extremes := []Extreme{
		{Time: timetricks.SetClock(time.Now(), 16, 27), Height: 2.5, Type: noaa.HighTide},
	}

	now := timetricks.SetClock(time.Now(), 4, 30)
	want := "tide is rising at 0.0 ft, next high today at 4:27 PM (2.5 ft)"
	if got := s.Summary(now, extremes); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

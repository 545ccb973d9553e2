// Package tide holds the day's tide series and the analysis derived from it:
// bar levels for the displays, the rising/falling trend, and the next high or
// low tide.
package tide

import (
	"fmt"
	"time"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/timetricks"
)

const (
	// HoursPerDay bounds a Series. One sample per hour.
	HoursPerDay = 24

	timeFmt = "3:04 PM"
)

// Sample is one hourly water level.
type Sample struct {
	Time   time.Time `json:"t"`
	Height float64   `json:"v"`
}

// Series is a day of hourly samples, ordered by time, at most one per hour.
// It is replaced wholesale on each fetch and read-only between fetches.
type Series []Sample

// FromPredictions converts an hourly NOAA prediction list into a Series,
// truncating anything past the 24th hour.
func FromPredictions(preds noaa.Predictions) Series {
	n := len(preds)
	if n > HoursPerDay {
		n = HoursPerDay
	}
	s := make(Series, n)
	for i := 0; i < n; i++ {
		s[i] = Sample{
			Time:   time.Time(preds[i].Time),
			Height: float64(preds[i].Height),
		}
	}
	return s
}

// MinMax returns the lowest and highest water levels of the series.
func (s Series) MinMax() (min, max float64) {
	if len(s) == 0 {
		return 0, 0
	}
	min, max = s[0].Height, s[0].Height
	for _, sample := range s[1:] {
		if sample.Height < min {
			min = sample.Height
		}
		if sample.Height > max {
			max = sample.Height
		}
	}
	return min, max
}

// Levels normalizes the series onto rows discrete levels, 0 for the lowest
// water level of the day through rows-1 for the highest. A flat series maps
// every hour to the middle row. The mapping preserves order: a higher sample
// never gets a lower level.
func (s Series) Levels(rows int) []int {
	if len(s) == 0 {
		return nil
	}

	min, max := s.MinMax()
	span := max - min

	levels := make([]int, len(s))
	if span == 0 {
		for i := range levels {
			levels[i] = rows / 2
		}
		return levels
	}

	for i, sample := range s {
		level := int((sample.Height - min) / span * float64(rows-1))
		if level < 0 {
			level = 0
		}
		if level > rows-1 {
			level = rows - 1
		}
		levels[i] = level
	}
	return levels
}

// HourIndex maps a wall-clock time to its column in the day's series.
func HourIndex(now time.Time) int {
	return now.Hour() % HoursPerDay
}

// Trend is the direction the water is moving.
type Trend int

const (
	Steady Trend = iota
	Rising
	Falling
)

func (t Trend) String() string {
	switch t {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "steady"
	}
}

// Trend reports whether the tide is rising or falling at the given time by
// comparing the current hour's sample to the next one.
func (s Series) Trend(now time.Time) Trend {
	i := HourIndex(now)
	if i+1 >= len(s) || i >= len(s) {
		return Steady
	}
	switch {
	case s[i+1].Height > s[i].Height:
		return Rising
	case s[i+1].Height < s[i].Height:
		return Falling
	default:
		return Steady
	}
}

// Extreme is a high or low tide event.
type Extreme struct {
	Time   time.Time `json:"t"`
	Height float64   `json:"v"`
	Type   noaa.Tide `json:"type"`
}

// ExtremesFromPredictions converts a hilo NOAA prediction list.
func ExtremesFromPredictions(preds noaa.Predictions) []Extreme {
	out := make([]Extreme, len(preds))
	for i, p := range preds {
		out[i] = Extreme{
			Time:   time.Time(p.Time),
			Height: float64(p.Height),
			Type:   p.Type,
		}
	}
	return out
}

// NextExtreme returns the first high or low tide after now, if any remains.
func NextExtreme(extremes []Extreme, now time.Time) (Extreme, bool) {
	for _, e := range extremes {
		if e.Time.After(now) {
			return e, true
		}
	}
	return Extreme{}, false
}

// Summary produces a one-line description of current conditions, like
// "tide is falling at 1.2 ft, next low today at 4:27 PM (-0.3 ft)".
func (s Series) Summary(now time.Time, extremes []Extreme) string {
	i := HourIndex(now)
	if i >= len(s) {
		return "no tide data"
	}

	desc := fmt.Sprintf("tide is %s at %.1f ft", s.Trend(now), s[i].Height)

	if next, ok := NextExtreme(extremes, now); ok {
		kind := "high"
		if next.Type == noaa.LowTide {
			kind = "low"
		}
		desc += fmt.Sprintf(", next %s %s at %s (%.1f ft)",
			kind,
			timetricks.Day(next.Time),
			next.Time.Format(timeFmt),
			next.Height)
	}

	return desc
}

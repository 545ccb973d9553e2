// Package visualize turns a day of tide data into frames for the LED panels
// and charts for the terminal.
package visualize

import (
	"github.com/coastalhacks/tideclock/pkg/tide"
)

// The display is three chained 8x8 bicolor matrices: 24 columns of hours,
// 8 rows of water level with row 0 at the bottom.
const (
	Hours     = 24
	Rows      = 8
	PanelSize = 8
	Panels    = Hours / PanelSize
)

// Color is one LED state of the bicolor matrix.
type Color uint8

const (
	Off Color = iota
	Green
	Red
	Yellow
)

// Frame is a full 24x8 image ready for a display sink.
type Frame struct {
	// Cells is indexed [hour][row].
	Cells [Hours][Rows]Color `json:"cells"`
}

func (f *Frame) Set(x, y int, c Color) {
	if x < 0 || x >= Hours || y < 0 || y >= Rows {
		return
	}
	f.Cells[x][y] = c
}

func (f *Frame) At(x, y int) Color {
	if x < 0 || x >= Hours || y < 0 || y >= Rows {
		return Off
	}
	return f.Cells[x][y]
}

// Panel returns the 8x8 slice of the frame for one hardware matrix, indexed
// [x][y] with panel 0 covering midnight through 7am.
func (f *Frame) Panel(i int) [PanelSize][Rows]Color {
	var p [PanelSize][Rows]Color
	for x := 0; x < PanelSize; x++ {
		p[x] = f.Cells[i*PanelSize+x]
	}
	return p
}

// Scheme selects how bars are colored.
type Scheme string

const (
	// SchemeClock draws red bars with the current hour in yellow.
	SchemeClock Scheme = "clock"
	// SchemeLevels colors each bar by its height: high red, middle yellow,
	// low green.
	SchemeLevels Scheme = "levels"
)

// Bars renders the series as a bar chart. Each hour's column is filled from
// the bottom up to its normalized level. The hour argument is the wall-clock
// hour to highlight; pass a negative hour to highlight nothing.
func Bars(s tide.Series, hour int, scheme Scheme) *Frame {
	f := &Frame{}
	levels := s.Levels(Rows)
	for x, level := range levels {
		color := barColor(scheme, level, x == hour)
		for y := 0; y <= level; y++ {
			f.Set(x, y, color)
		}
	}
	return f
}

func barColor(scheme Scheme, level int, current bool) Color {
	if scheme == SchemeLevels {
		switch {
		case level >= 6:
			return Red
		case level >= 3:
			return Yellow
		default:
			return Green
		}
	}
	if current {
		return Yellow
	}
	return Red
}

// Dots renders the series as a single lit pixel per hour at its normalized
// level, with the current hour in yellow.
func Dots(s tide.Series, hour int) *Frame {
	f := &Frame{}
	for x, level := range s.Levels(Rows) {
		color := Red
		if x == hour {
			color = Yellow
		}
		f.Set(x, level, color)
	}
	return f
}

// ErrorPattern is shown when a fetch fails: a red X on the middle panel.
func ErrorPattern() *Frame {
	f := &Frame{}
	for i := 0; i < PanelSize; i++ {
		f.Set(PanelSize+i, i, Red)
		f.Set(PanelSize+i, PanelSize-1-i, Red)
	}
	return f
}

// SafeModePattern is shown after repeated failures: a yellow border on every
// panel.
func SafeModePattern() *Frame {
	f := &Frame{}
	for p := 0; p < Panels; p++ {
		for i := 0; i < PanelSize; i++ {
			x := p * PanelSize
			f.Set(x+i, 0, Yellow)
			f.Set(x+i, Rows-1, Yellow)
			f.Set(x, i, Yellow)
			f.Set(x+PanelSize-1, i, Yellow)
		}
	}
	return f
}

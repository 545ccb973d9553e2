package visualize

import (
	"testing"
	"time"

	"github.com/coastalhacks/tideclock/pkg/tide"
)

// steps builds a series climbing from 0 ft at midnight to 23 ft at 11pm, so
// the normalized level of hour h is h*7/23.
func steps() tide.Series {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	s := make(tide.Series, 24)
	for i := range s {
		s[i] = tide.Sample{Time: base.Add(time.Duration(i) * time.Hour), Height: float64(i)}
	}
	return s
}

func TestBarsClockScheme(t *testing.T) {
	s := steps()
	f := Bars(s, 5, SchemeClock)
	levels := s.Levels(Rows)

	for x := 0; x < Hours; x++ {
		want := Red
		if x == 5 {
			want = Yellow
		}
		for y := 0; y <= levels[x]; y++ {
			if got := f.At(x, y); got != want {
				t.Errorf("cell (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
		// Above the bar is dark.
		for y := levels[x] + 1; y < Rows; y++ {
			if got := f.At(x, y); got != Off {
				t.Errorf("cell (%d,%d) = %d, want off", x, y, got)
			}
		}
	}
}

func TestBarsLevelsScheme(t *testing.T) {
	s := steps()
	f := Bars(s, 0, SchemeLevels)
	levels := s.Levels(Rows)

	for x := 0; x < Hours; x++ {
		var want Color
		switch {
		case levels[x] >= 6:
			want = Red
		case levels[x] >= 3:
			want = Yellow
		default:
			want = Green
		}
		if got := f.At(x, 0); got != want {
			t.Errorf("hour %d (level %d): got %d, want %d", x, levels[x], got, want)
		}
	}
}

func TestDots(t *testing.T) {
	s := steps()
	levels := s.Levels(Rows)
	f := Dots(s, 12)

	for x := 0; x < Hours; x++ {
		lit := 0
		for y := 0; y < Rows; y++ {
			if f.At(x, y) != Off {
				lit++
			}
		}
		if lit != 1 {
			t.Errorf("hour %d has %d lit pixels, want 1", x, lit)
		}
		want := Red
		if x == 12 {
			want = Yellow
		}
		if got := f.At(x, levels[x]); got != want {
			t.Errorf("hour %d pixel = %d, want %d", x, got, want)
		}
	}
}

func TestErrorPattern(t *testing.T) {
	f := ErrorPattern()

	// Red X on the middle panel only.
	for i := 0; i < PanelSize; i++ {
		if f.At(PanelSize+i, i) != Red {
			t.Errorf("diagonal cell (%d,%d) not red", PanelSize+i, i)
		}
		if f.At(PanelSize+i, PanelSize-1-i) != Red {
			t.Errorf("counter diagonal cell (%d,%d) not red", PanelSize+i, PanelSize-1-i)
		}
	}
	for x := 0; x < PanelSize; x++ {
		for y := 0; y < Rows; y++ {
			if f.At(x, y) != Off {
				t.Errorf("left panel cell (%d,%d) should be off", x, y)
			}
			if f.At(2*PanelSize+x, y) != Off {
				t.Errorf("right panel cell (%d,%d) should be off", 2*PanelSize+x, y)
			}
		}
	}
}

func TestSafeModePattern(t *testing.T) {
	f := SafeModePattern()
	for p := 0; p < Panels; p++ {
		x0 := p * PanelSize
		for i := 0; i < PanelSize; i++ {
			for _, cell := range [][2]int{
				{x0 + i, 0}, {x0 + i, Rows - 1},
				{x0, i}, {x0 + PanelSize - 1, i},
			} {
				if f.At(cell[0], cell[1]) != Yellow {
					t.Errorf("border cell (%d,%d) not yellow", cell[0], cell[1])
				}
			}
		}
		// Panel interior stays dark.
		if f.At(x0+3, 4) != Off {
			t.Errorf("panel %d interior lit", p)
		}
	}
}

func TestPanelSplit(t *testing.T) {
	f := &Frame{}
	f.Set(9, 3, Green)
	p := f.Panel(1)
	if p[1][3] != Green {
		t.Error("panel 1 missing cell set at hour 9")
	}
}

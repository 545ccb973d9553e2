package tide

import (
	"fmt"
	"math"
	"testing"
	"time"
)

func ExampleSpline_Discrete() {
	tstart := time.Date(2021, time.April, 3, 10, 30, 0, 0, time.Local)
	s := Series{{
		Time:   tstart,
		Height: 10,
	}, {
		Time:   tstart.Add(1000 * time.Hour),
		Height: 1,
	}}
	discrete := SplineOf(s).Discrete(10)
	for i := range discrete {
		fmt.Println(math.Round(discrete[i]))
	}
	// Output:
	// 10
	// 10
	// 9
	// 8
	// 6
	// 5
	// 3
	// 2
	// 1
	// 1
}

func TestSplineHitsSamples(t *testing.T) {
	s := day(1.0, 3.2, 2.4, -0.5)
	spline := SplineOf(s)
	for _, sample := range s {
		got := spline.Eval(sample.Time)
		if math.Abs(got-sample.Height) > 1e-6 {
			t.Errorf("at %s got %f, want %f", sample.Time, got, sample.Height)
		}
	}
}

func TestSplineOutOfRange(t *testing.T) {
	s := day(1, 2)
	spline := SplineOf(s)
	if got := spline.Eval(s[0].Time.Add(-time.Hour)); !math.IsNaN(got) {
		t.Errorf("before range got %f, want NaN", got)
	}
	if got := spline.Eval(s[1].Time.Add(time.Hour)); !math.IsNaN(got) {
		t.Errorf("after range got %f, want NaN", got)
	}
}

func TestSplineTooFewSamples(t *testing.T) {
	if SplineOf(day(1)) != nil {
		t.Error("single sample should have no spline")
	}
}

package visualize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coastalhacks/tideclock/pkg/noaa"
)

func TestChartEncode(t *testing.T) {
	var buf bytes.Buffer
	chart := NewChart(steps(), noaa.StPetersburg)
	if _, err := chart.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"24-HOUR TIDE CHART",
		"7 |",
		"0 |",
		"Date: 2025-03-01",
		"Station: 8726724",
		"Units: Feet above MLLW",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("chart output missing %q", want)
		}
	}

	// The bottom row is full: every hour reaches at least level 0.
	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "0 |") {
			if strings.Contains(line, "  ") {
				t.Errorf("bottom row has gaps: %q", line)
			}
		}
	}
}

func TestChartEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	chart := NewChart(nil, noaa.StPetersburg)
	if _, err := chart.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !strings.Contains(buf.String(), "Station: 8726724") {
		t.Error("empty chart should still print the footer")
	}
}

package visualize

import (
	"fmt"
	"io"
	"strings"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/tide"
)

const chartRule = 60

// Chart renders a day's series as an ASCII bar chart for terminals and logs.
type Chart struct {
	Series  tide.Series
	Station noaa.Station
}

func NewChart(s tide.Series, station noaa.Station) *Chart {
	return &Chart{
		Series:  s,
		Station: station,
	}
}

func (c *Chart) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	rule := strings.Repeat("=", chartRule)
	io(fmt.Fprintf(w, "%s\n24-HOUR TIDE CHART\n%s\n", rule, rule))

	levels := c.Series.Levels(Rows)
	if len(levels) > Hours {
		levels = levels[:Hours]
	}

	// 8 rows, inverted so high tide is at top.
	for row := Rows - 1; row >= 0; row-- {
		io(fmt.Fprintf(w, "%d |", row))
		for _, level := range levels {
			if level >= row {
				io(fmt.Fprintf(w, "██"))
			} else {
				io(fmt.Fprintf(w, "  "))
			}
		}
		io(fmt.Fprintf(w, "\n"))
	}

	io(fmt.Fprintf(w, "  +%s\n", strings.Repeat("─", len(levels)*2)))

	// Hour labels every 4 hours.
	io(fmt.Fprintf(w, "   "))
	for i := range levels {
		if i%4 == 0 {
			io(fmt.Fprintf(w, "%2d", c.Series[i].Time.Hour()))
		} else {
			io(fmt.Fprintf(w, "  "))
		}
	}
	io(fmt.Fprintf(w, "\n"))

	if len(c.Series) > 0 {
		io(fmt.Fprintf(w, "\nDate: %s\n", c.Series[0].Time.Format("2006-01-02")))
	}
	io(fmt.Fprintf(w, "Station: %d\n", c.Station))
	io(fmt.Fprintf(w, "Units: Feet above MLLW\n"))
	io(fmt.Fprintf(w, "%s\n", rule))

	return n, err
}

package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/coastalhacks/tideclock/pkg/sunset"
	"github.com/coastalhacks/tideclock/pkg/tide"
	"github.com/coastalhacks/tideclock/pkg/visualize"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	infoStyle  = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))

	curveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	nowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

const curvePoints = 96

func (m model) View() string {
	b := &strings.Builder{}
	b.WriteString(titleStyle.Render("Tide Clock"))
	b.WriteString(infoStyle.Render(fmt.Sprintf("  station %d  %s", m.station, m.now.Format("Mon 15:04"))))
	b.WriteString("\n\n")

	switch {
	case m.fetchErr != nil && len(m.series) == 0:
		b.WriteString(errStyle.Render("fetch error: " + m.fetchErr.Error()))
		b.WriteString("\n")
	case len(m.series) == 0:
		b.WriteString(infoStyle.Render("fetching tide predictions..."))
		b.WriteString("\n")
	case m.view == viewCurve:
		b.WriteString(m.curveView())
	default:
		b.WriteString(m.barsView())
	}

	if len(m.series) > 0 {
		b.WriteString("\n")
		b.WriteString(m.series.Summary(m.now, m.extremes))
		b.WriteString("\n")
		if m.fetchErr != nil {
			b.WriteString(errStyle.Render(fmt.Sprintf("refetch failed, showing data from %s", m.fetchedAt.Format("15:04"))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// barsView draws the frame the LED matrix shows, dimmed outside daylight the
// way the hardware drops its brightness at night.
func (m model) barsView() string {
	frame := visualize.Bars(m.series, tide.HourIndex(m.now), visualize.SchemeClock)

	sun := sunset.GetSunEvents(m.now, 24*time.Hour, m.place)
	night := !sunset.Daylight(m.now, sun)

	b := &strings.Builder{}
	// Row 0 is the bottom of the display.
	for y := visualize.Rows - 1; y >= 0; y-- {
		for x := 0; x < visualize.Hours; x++ {
			b.WriteString(cell(frame.At(x, y), night))
		}
		b.WriteString("\n")
	}
	for x := 0; x < visualize.Hours; x += 4 {
		b.WriteString(fmt.Sprintf("%-8s", fmt.Sprintf("%02d", x)))
	}
	b.WriteString("\n")
	return b.String()
}

func cell(color visualize.Color, night bool) string {
	const block = "██"
	var style lipgloss.Style
	switch color {
	case visualize.Green:
		style = greenStyle
	case visualize.Red:
		style = redStyle
	case visualize.Yellow:
		style = yellowStyle
	default:
		return "  "
	}
	if night {
		style = style.Faint(true)
	}
	return style.Render(block)
}

// curveView interpolates the hourly samples into a smooth line chart with the
// current time marked by a vertical bar.
func (m model) curveView() string {
	minTime := m.series[0].Time
	maxTime := m.series[len(m.series)-1].Time
	span := maxTime.Sub(minTime)
	if span <= 0 {
		return infoStyle.Render("insufficient tide points")
	}

	minV, maxV := m.series.MinMax()
	if minV == maxV {
		minV -= 0.1
		maxV += 0.1
	}

	width, height := 72, 12
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}

	lc := timeserieslinechart.New(width, height)
	lc.SetTimeRange(minTime, maxTime)
	lc.SetViewTimeAndYRange(minTime, maxTime, minV, maxV)
	lc.Model.XLabelFormatter = func(i int, v float64) string {
		return time.Unix(int64(v), 0).In(minTime.Location()).Format("15:04")
	}

	spline := tide.SplineOf(m.series)
	step := span / time.Duration(curvePoints-1)
	for t := minTime; !t.After(maxTime); t = t.Add(step) {
		lc.Push(timeserieslinechart.TimePoint{Time: t, Value: spline.Eval(t)})
	}
	lc.DrawBraille()

	m.markNow(&lc, minTime, maxTime)

	b := &strings.Builder{}
	b.WriteString(lc.View())
	b.WriteString("\n")
	b.WriteString(curveStyle.Render("─"))
	b.WriteString(infoStyle.Render(" predicted tide  "))
	b.WriteString(nowStyle.Render("│"))
	b.WriteString(infoStyle.Render(fmt.Sprintf(" now  min %.1f ft / max %.1f ft", minV, maxV)))
	b.WriteString("\n")
	return b.String()
}

// markNow overlays a vertical line on the chart at the current time. Drawn
// after the braille pass so it sits on top of the curve.
func (m model) markNow(lc *timeserieslinechart.Model, minTime, maxTime time.Time) {
	if m.now.Before(minTime) || m.now.After(maxTime) {
		return
	}
	viewMin, viewMax := lc.Model.ViewMinX(), lc.Model.ViewMaxX()
	if viewMax <= viewMin {
		return
	}

	xRel := (float64(m.now.Unix()) - viewMin) / (viewMax - viewMin)
	xRel = math.Min(1, math.Max(0, xRel))
	col := int(math.Round(xRel*float64(lc.GraphWidth()-1))) + lc.Model.Origin().X
	if lc.Model.YStep() > 0 {
		col++
	}
	if col < 0 || col >= lc.Canvas.Width() {
		return
	}
	for y := 0; y < lc.Model.Origin().Y; y++ {
		lc.Canvas.SetCell(canvas.Point{X: col, Y: y}, canvas.NewCellWithStyle('│', nowStyle))
	}
}

package noaa

import (
	"fmt"
	"net/url"
	"time"
)

const dateFormat = "20060102"

// Interval selects the sampling of a prediction query.
type Interval string

const (
	// IntervalHourly returns one prediction per hour.
	IntervalHourly Interval = "h"
	// IntervalHiLo returns only the high and low tide events.
	IntervalHiLo Interval = "hilo"
)

// PredictionQuery requests tide predictions at a station for one calendar
// day. The zero Interval defaults to hourly.
type PredictionQuery struct {
	Station  Station
	Date     time.Time
	Interval Interval
}

func (q *PredictionQuery) build() url.Values {
	interval := q.Interval
	if interval == "" {
		interval = IntervalHourly
	}
	vals := make(url.Values)
	vals.Add("begin_date", q.Date.Format(dateFormat))
	vals.Add("end_date", q.Date.Format(dateFormat))
	vals.Add("station", fmt.Sprintf("%d", q.Station))
	vals.Add("product", "predictions")
	vals.Add("datum", "MLLW")
	vals.Add("time_zone", "lst")
	vals.Add("interval", string(interval))
	vals.Add("units", "english")
	vals.Add("format", "json")
	return vals
}

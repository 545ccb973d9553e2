// Command preview fetches one day of tide predictions and prints the chart
// that the LED matrix would show, without touching any display hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/tide"
	"github.com/coastalhacks/tideclock/pkg/timetricks"
	"github.com/coastalhacks/tideclock/pkg/visualize"
)

func main() {
	station := flag.Int("station", int(noaa.StPetersburg), "NOAA tide station to query")
	tomorrow := flag.Bool("tomorrow", false, "preview tomorrow instead of today")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout")
	flag.Parse()

	day := time.Now()
	if *tomorrow {
		day = day.Add(24 * time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := noaa.NewClient(noaa.ClientOptions{Timeout: *timeout}, nil)
	query := noaa.PredictionQuery{
		Station: noaa.Station(*station),
		Date:    day,
	}

	preds, err := client.Predictions(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch from NOAA: %v\n", err)
		os.Exit(1)
	}
	series := tide.FromPredictions(preds)

	chart := visualize.NewChart(series, query.Station)
	if _, err := chart.Encode(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write chart: %v\n", err)
		os.Exit(1)
	}

	// High/low times round out the picture but are not worth failing over.
	var extremes []tide.Extreme
	if hilo, err := client.Extremes(ctx, query); err == nil {
		extremes = tide.ExtremesFromPredictions(hilo)
	}

	fmt.Printf("\n%s: %s\n", timetricks.Day(day), series.Summary(time.Now(), extremes))
}

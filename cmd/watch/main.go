// Command watch is a terminal tide clock: the same data the LED matrix
// shows, rendered live with bubbletea.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/sunset"
)

func main() {
	station := flag.Int("station", int(noaa.StPetersburg), "NOAA tide station to query")
	lat := flag.Float64("lat", sunset.StPetersburg.Lat, "station latitude for sunrise/sunset")
	lon := flag.Float64("lon", sunset.StPetersburg.Long, "station longitude for sunrise/sunset")
	flag.Parse()

	client := noaa.NewClient(noaa.ClientOptions{Timeout: 30 * time.Second}, nil)
	m := newModel(client, noaa.Station(*station), sunset.Place{Lat: *lat, Long: *lon})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "watch failed: %v\n", err)
		os.Exit(1)
	}
}

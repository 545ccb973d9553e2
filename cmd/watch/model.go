package main

import (
	"context"
	"time"

	bhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/sunset"
	"github.com/coastalhacks/tideclock/pkg/tide"
	"github.com/coastalhacks/tideclock/pkg/timetricks"
)

const (
	viewBars  = "bars"
	viewCurve = "curve"

	fetchTimeout  = 30 * time.Second
	fetchInterval = time.Hour
)

type model struct {
	client  *noaa.Client
	station noaa.Station
	place   sunset.Place

	series    tide.Series
	extremes  []tide.Extreme
	fetchErr  error
	fetchedAt time.Time

	now      time.Time
	view     string
	fetching bool
	width    int
	height   int

	keys keyMap
	help bhelp.Model
}

func newModel(client *noaa.Client, station noaa.Station, place sunset.Place) model {
	return model{
		client:  client,
		station: station,
		place:   place,
		now:     time.Now(),
		view:    viewBars,
		keys:    keys,
		help:    bhelp.New(),
	}
}

// fetchedMsg carries a completed fetch back into the update loop.
type fetchedMsg struct {
	series   tide.Series
	extremes []tide.Extreme
	err      error
}

// tickMsg fires once a minute to move the highlighted hour and the current
// time marker without refetching.
type tickMsg time.Time

func (m model) fetchCmd() tea.Cmd {
	client, station := m.client, m.station
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		query := noaa.PredictionQuery{Station: station, Date: time.Now()}
		preds, err := client.Predictions(ctx, query)
		if err != nil {
			return fetchedMsg{err: err}
		}

		var extremes []tide.Extreme
		if hilo, err := client.Extremes(ctx, query); err == nil {
			extremes = tide.ExtremesFromPredictions(hilo)
		}

		return fetchedMsg{series: tide.FromPredictions(preds), extremes: extremes}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), tickCmd())
}

func (m model) stale() bool {
	if m.fetchedAt.IsZero() {
		return true
	}
	if !timetricks.SameDay(m.fetchedAt, m.now) {
		return true
	}
	return m.now.Sub(m.fetchedAt) >= fetchInterval
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Bars):
			m.view = viewBars
		case key.Matches(msg, m.keys.Curve):
			m.view = viewCurve
		case key.Matches(msg, m.keys.Refresh):
			if !m.fetching {
				m.fetching = true
				return m, m.fetchCmd()
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tickMsg:
		m.now = time.Time(msg)
		if m.stale() && !m.fetching {
			m.fetching = true
			return m, tea.Batch(m.fetchCmd(), tickCmd())
		}
		return m, tickCmd()

	case fetchedMsg:
		m.fetching = false
		m.fetchErr = msg.err
		if msg.err == nil {
			m.series = msg.series
			m.extremes = msg.extremes
			m.fetchedAt = time.Now()
		}
	}

	return m, nil
}

// Package handlers serves the tide clock's status endpoints.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/coastalhacks/tideclock/pkg/cache"
	"github.com/coastalhacks/tideclock/pkg/daemon"
	"github.com/coastalhacks/tideclock/pkg/sunset"
	"github.com/coastalhacks/tideclock/pkg/tide"
	"github.com/coastalhacks/tideclock/pkg/visualize"
)

const tidesCacheTTL = 30 * time.Minute

// State is the view of the running loop the handlers need.
type State interface {
	Frame() *visualize.Frame
	Snapshot() (tide.Series, []tide.Extreme, daemon.Status)
	CheckReadiness() error
	Now() time.Time
}

// MetricsHandler serves the Prometheus registry.
type MetricsHandler interface {
	Handler() http.Handler
}

// Options carry the non-loop context for responses.
type Options struct {
	Place  sunset.Place
	Logger *zap.SugaredLogger
}

// Register attaches all routes to the router.
func Register(r *mux.Router, st State, m MetricsHandler, opts Options) {
	r.Handle("/", makeSummary(st, opts))
	r.Handle("/healthz", makeHealthz())
	r.Handle("/readyz", makeReadyz(st))
	r.Handle("/metrics", m.Handler())
	r.Handle("/api/v1/tides", makeServeTides(st, opts))
	r.Handle("/api/v1/frame", makeServeFrame(st))
}

func makeHealthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
}

func makeReadyz(st State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := st.CheckReadiness(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ready")
	})
}

func makeSummary(st State, opts Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		series, extremes, status := st.Snapshot()
		now := st.Now()

		w.Header().Add("Content-Type", "text/plain")
		if len(series) == 0 {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "station %d: no tide data yet (failures: %d)\n",
				status.Station, status.Failures)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "station %d, %s\n", status.Station, now.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "%s\n", series.Summary(now, extremes))
		if status.SafeMode {
			fmt.Fprintf(w, "in safe mode after %d consecutive failures\n", status.Failures)
		}

		chart := visualize.NewChart(series, status.Station)
		if _, err := chart.Encode(w); err != nil && opts.Logger != nil {
			opts.Logger.Warnf("can't write chart: %v", err)
		}
	})
}

// tidesResponse is the /api/v1/tides body.
type tidesResponse struct {
	Status   daemon.Status    `json:"status"`
	Samples  tide.Series      `json:"samples"`
	Extremes []tide.Extreme   `json:"extremes"`
	Sun      sunset.SunEvents `json:"sun"`
}

func makeServeTides(st State, opts Options) http.Handler {
	// Cache for less than the fetch interval so clients never see a
	// pre-refetch day for long.
	timeCache := cache.NewTimed(tidesCacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// cache based on method and URL, which should encapsulate the query
		key := fmt.Sprintf("%s %s", r.Method, r.URL)

		// serve cached version from memory if possible
		if cached, ok := timeCache.Get(key); ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		series, extremes, status := st.Snapshot()
		if len(series) == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "no tide data yet")
			return
		}

		resp := tidesResponse{
			Status:   status,
			Samples:  series,
			Extremes: extremes,
			Sun:      sunset.GetSunEvents(st.Now(), 24*time.Hour, opts.Place),
		}

		// duplicate the http response onto a buffer for the cache
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(mw).Encode(resp); err != nil {
			if opts.Logger != nil {
				opts.Logger.Warnf("can't encode tides response: %v", err)
			}
			return
		}

		timeCache.Set(key, toCache.Bytes())
	})
}

func makeServeFrame(st State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		frame := st.Frame()
		if frame == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "no frame rendered yet")
			return
		}
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(frame)
	})
}

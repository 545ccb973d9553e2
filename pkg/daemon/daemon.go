// Package daemon runs the tide clock's poll-fetch-render loop.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/coastalhacks/tideclock/pkg/display"
	"github.com/coastalhacks/tideclock/pkg/metrics"
	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/tide"
	"github.com/coastalhacks/tideclock/pkg/timetricks"
	"github.com/coastalhacks/tideclock/pkg/visualize"
)

// Fetcher pulls predictions from the NOAA API.
type Fetcher interface {
	Predictions(ctx context.Context, q noaa.PredictionQuery) (noaa.Predictions, error)
	Extremes(ctx context.Context, q noaa.PredictionQuery) (noaa.Predictions, error)
}

// DayStore caches fetched days across restarts. May be nil.
type DayStore interface {
	SaveDay(station noaa.Station, day time.Time, series tide.Series) error
	LoadDay(station noaa.Station, day time.Time) (tide.Series, error)
	Prune(before time.Time) error
}

// TimeSource supplies the display's notion of now.
type TimeSource interface {
	Now() time.Time
}

// Options tune the loop.
type Options struct {
	Station        noaa.Station
	UpdateInterval time.Duration
	TickInterval   time.Duration
	// RenderMode is "bars" or "dots".
	RenderMode string
	Scheme     visualize.Scheme
	// MaxFailures is the consecutive failure count that enters safe mode.
	MaxFailures int
	// KeepDays bounds the local cache; older days are pruned on fetch.
	KeepDays int
}

// Status is a point-in-time view of the loop for the status server.
type Status struct {
	Station   noaa.Station `json:"station"`
	FetchedAt time.Time    `json:"fetched_at"`
	Failures  int          `json:"consecutive_failures"`
	SafeMode  bool         `json:"safe_mode"`
}

// Runner owns the current day's data and drives the display sinks. The
// mutable state is shared with the HTTP handlers, everything else belongs to
// the loop goroutine.
type Runner struct {
	opts    Options
	fetcher Fetcher
	sinks   display.Fanout
	store   DayStore
	ts      TimeSource
	clock   clockwork.Clock
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics

	mu        sync.RWMutex
	series    tide.Series
	extremes  []tide.Extreme
	frame     *visualize.Frame
	fetchedAt time.Time
	lastHour  int
	failures  int
	safeMode  bool

	ready atomic.Bool
}

func New(opts Options, fetcher Fetcher, sinks display.Fanout, store DayStore,
	ts TimeSource, clock clockwork.Clock, logger *zap.SugaredLogger, m *metrics.Metrics) *Runner {
	if opts.MaxFailures < 1 {
		opts.MaxFailures = 5
	}
	if opts.KeepDays < 1 {
		opts.KeepDays = 7
	}
	if opts.RenderMode == "" {
		opts.RenderMode = "bars"
	}
	if opts.Scheme == "" {
		opts.Scheme = visualize.SchemeClock
	}
	return &Runner{
		opts:     opts,
		fetcher:  fetcher,
		sinks:    sinks,
		store:    store,
		ts:       ts,
		clock:    clock,
		logger:   logger,
		metrics:  m,
		lastHour: -1,
	}
}

// Run executes the loop until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.warmStart(ctx)

	for {
		delay := r.step(ctx)
		select {
		case <-ctx.Done():
			r.logger.Infof("tide loop stopping: %v", ctx.Err())
			return nil
		case <-r.clock.After(delay):
		}
	}
}

// CheckReadiness returns nil once at least one frame has reached the sinks.
func (r *Runner) CheckReadiness() error {
	if !r.ready.Load() {
		return errors.New("no frame rendered yet")
	}
	return nil
}

// Frame returns a copy of the last rendered frame, or nil before the first
// render.
func (r *Runner) Frame() *visualize.Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.frame == nil {
		return nil
	}
	copied := *r.frame
	return &copied
}

// Snapshot returns the current series, the day's extremes, and loop status.
func (r *Runner) Snapshot() (tide.Series, []tide.Extreme, Status) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	series := make(tide.Series, len(r.series))
	copy(series, r.series)
	extremes := make([]tide.Extreme, len(r.extremes))
	copy(extremes, r.extremes)

	return series, extremes, Status{
		Station:   r.opts.Station,
		FetchedAt: r.fetchedAt,
		Failures:  r.failures,
		SafeMode:  r.safeMode,
	}
}

// Now exposes the loop's time source for the handlers.
func (r *Runner) Now() time.Time {
	return r.ts.Now()
}

// warmStart lights the display from the local cache before the first fetch.
func (r *Runner) warmStart(ctx context.Context) {
	if r.store == nil {
		return
	}
	now := r.ts.Now()
	series, err := r.store.LoadDay(r.opts.Station, now)
	if err != nil {
		r.logger.Warnf("can't load cached day: %v", err)
		return
	}
	if len(series) == 0 {
		return
	}

	r.logger.Infof("rendering %d cached samples while fetching", len(series))
	r.mu.Lock()
	r.series = series
	// fetchedAt stays zero so the first step still fetches fresh data.
	r.mu.Unlock()
	r.render(ctx, now)
}

// step performs one cycle and returns how long to sleep before the next.
func (r *Runner) step(ctx context.Context) time.Duration {
	now := r.ts.Now()

	if r.needFetch(now) {
		if err := r.fetch(ctx, now); err != nil {
			return r.onFetchFailure(ctx, err)
		}
		r.onFetchSuccess(ctx, now)
		return r.opts.TickInterval
	}

	r.mu.RLock()
	hourChanged := r.lastHour != tide.HourIndex(now) && len(r.series) > 0
	r.mu.RUnlock()
	if hourChanged {
		r.logger.Infof("hour changed to %d, updating display", tide.HourIndex(now))
		r.render(ctx, now)
	}

	return r.opts.TickInterval
}

func (r *Runner) needFetch(now time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch {
	case len(r.series) == 0:
		return true
	case !timetricks.SameDay(r.fetchedAt, now):
		// Day rolled over; replace the series wholesale.
		return true
	case now.Sub(r.fetchedAt) >= r.opts.UpdateInterval:
		return true
	}
	return false
}

func (r *Runner) fetch(ctx context.Context, now time.Time) error {
	query := noaa.PredictionQuery{
		Station: r.opts.Station,
		Date:    now,
	}

	start := r.clock.Now()
	preds, err := r.fetcher.Predictions(ctx, query)
	r.metrics.FetchDuration.Observe(r.clock.Since(start).Seconds())
	if err != nil {
		r.metrics.FetchTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("fetching predictions: %w", err)
	}
	r.metrics.FetchTotal.WithLabelValues("success").Inc()

	series := tide.FromPredictions(preds)

	// The day's extremes only feed summaries; losing them is not a failure.
	var extremes []tide.Extreme
	if hilo, err := r.fetcher.Extremes(ctx, query); err != nil {
		r.logger.Warnf("can't fetch tide extremes: %v", err)
	} else {
		extremes = tide.ExtremesFromPredictions(hilo)
	}

	r.mu.Lock()
	r.series = series
	r.extremes = extremes
	r.fetchedAt = now
	r.mu.Unlock()

	return nil
}

func (r *Runner) onFetchSuccess(ctx context.Context, now time.Time) {
	r.mu.Lock()
	r.failures = 0
	wasSafe := r.safeMode
	r.safeMode = false
	series := r.series
	r.mu.Unlock()

	r.metrics.ConsecutiveFailures.Set(0)
	r.metrics.SafeMode.Set(0)
	if wasSafe {
		r.logger.Infof("leaving safe mode")
	}

	if r.store != nil {
		if err := r.store.SaveDay(r.opts.Station, now, series); err != nil {
			r.logger.Warnf("can't cache day: %v", err)
		}
		cutoff := now.Add(-time.Duration(r.opts.KeepDays) * 24 * time.Hour)
		if err := r.store.Prune(cutoff); err != nil {
			r.logger.Warnf("can't prune cache: %v", err)
		}
	}

	r.logger.Infof("fetched %d samples for station %d", len(series), r.opts.Station)
	r.render(ctx, now)
}

func (r *Runner) onFetchFailure(ctx context.Context, err error) time.Duration {
	r.mu.Lock()
	r.failures++
	failures := r.failures
	entered := failures >= r.opts.MaxFailures && !r.safeMode
	if failures >= r.opts.MaxFailures {
		r.safeMode = true
	}
	safeMode := r.safeMode
	r.mu.Unlock()

	r.metrics.ConsecutiveFailures.Set(float64(failures))
	r.logger.Errorf("fetch failed (failure #%d): %v", failures, err)

	var frame *visualize.Frame
	if safeMode {
		if entered {
			r.logger.Errorf("entering safe mode after %d consecutive failures", failures)
		}
		r.metrics.SafeMode.Set(1)
		frame = visualize.SafeModePattern()
	} else {
		frame = visualize.ErrorPattern()
	}
	r.push(ctx, frame)

	return retryDelay(failures)
}

// retryDelay backs off progressively with the consecutive failure count.
func retryDelay(failures int) time.Duration {
	switch {
	case failures <= 3:
		return 5 * time.Minute
	case failures <= 6:
		return 15 * time.Minute
	default:
		return 30 * time.Minute
	}
}

// render draws the current series and pushes it to the sinks.
func (r *Runner) render(ctx context.Context, now time.Time) {
	r.mu.RLock()
	series := r.series
	r.mu.RUnlock()

	hour := tide.HourIndex(now)
	var frame *visualize.Frame
	if r.opts.RenderMode == "dots" {
		frame = visualize.Dots(series, hour)
	} else {
		frame = visualize.Bars(series, hour, r.opts.Scheme)
	}
	r.push(ctx, frame)

	r.mu.Lock()
	r.lastHour = hour
	r.mu.Unlock()
}

func (r *Runner) push(ctx context.Context, frame *visualize.Frame) {
	for _, sink := range r.sinks {
		if err := sink.Render(ctx, frame); err != nil {
			r.logger.Warnf("sink %s: %v", sink.Name(), err)
			continue
		}
		r.metrics.FrameUpdates.WithLabelValues(sink.Name()).Inc()
	}

	r.mu.Lock()
	r.frame = frame
	r.mu.Unlock()
	r.ready.Store(true)
}

// Package localtime keeps the clock the tide display runs on: the injected
// wall clock, shifted by an NTP-measured offset, expressed in the station's
// time zone.
package localtime

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const queryTimeout = 10 * time.Second

// Timebase derives the display's local time.
type Timebase struct {
	clock  clockwork.Clock
	loc    *time.Location
	server string
	logger *zap.SugaredLogger

	mu     sync.Mutex
	offset time.Duration
}

// New builds a Timebase. loc may be nil for the system zone; server may be
// empty to disable Sync.
func New(clock clockwork.Clock, loc *time.Location, server string, logger *zap.SugaredLogger) *Timebase {
	if loc == nil {
		loc = time.Local
	}
	return &Timebase{
		clock:  clock,
		loc:    loc,
		server: server,
		logger: logger,
	}
}

// Now returns the current time with the NTP offset applied, in the
// configured zone.
func (tb *Timebase) Now() time.Time {
	tb.mu.Lock()
	offset := tb.offset
	tb.mu.Unlock()
	return tb.clock.Now().Add(offset).In(tb.loc)
}

// Sync measures the clock offset against the NTP server. Failures leave the
// previous offset in place; the caller is expected to log and carry on with
// the system clock.
func (tb *Timebase) Sync() error {
	if tb.server == "" {
		return nil
	}

	resp, err := ntp.QueryWithOptions(tb.server, ntp.QueryOptions{Timeout: queryTimeout})
	if err != nil {
		return err
	}
	if err := resp.Validate(); err != nil {
		return err
	}

	tb.mu.Lock()
	tb.offset = resp.ClockOffset
	tb.mu.Unlock()

	if tb.logger != nil {
		tb.logger.Infof("synced clock with %s, offset %s", tb.server, resp.ClockOffset)
	}
	return nil
}

// Offset returns the currently applied NTP offset.
func (tb *Timebase) Offset() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.offset
}

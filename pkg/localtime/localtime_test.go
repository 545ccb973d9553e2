package localtime

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNowUsesInjectedClock(t *testing.T) {
	at := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(at)

	tb := New(clock, time.UTC, "", nil)
	assert.True(t, tb.Now().Equal(at))

	clock.Advance(90 * time.Minute)
	assert.True(t, tb.Now().Equal(at.Add(90*time.Minute)))
}

func TestNowAppliesZone(t *testing.T) {
	at := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(at)
	est := time.FixedZone("LST", -5*60*60)

	tb := New(clock, est, "", nil)
	got := tb.Now()
	assert.True(t, got.Equal(at))
	assert.Equal(t, 7, got.Hour())
}

func TestSyncDisabledWithoutServer(t *testing.T) {
	tb := New(clockwork.NewFakeClock(), time.UTC, "", nil)
	assert.NoError(t, tb.Sync())
	assert.Equal(t, time.Duration(0), tb.Offset())
}

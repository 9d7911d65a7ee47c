package testfixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_AdvanceAndSet(t *testing.T) {
	clock := NewClock(time.Time{})
	assert.Equal(t, ReferenceTime(), clock.Now())

	updated := clock.Advance(90 * time.Minute)
	assert.Equal(t, ReferenceTime().Add(90*time.Minute), updated)
	assert.Equal(t, updated, clock.Now())

	pinned := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	clock.Set(pinned)
	assert.Equal(t, pinned, clock.Now())

	now := clock.NowFunc()
	clock.Advance(time.Minute)
	assert.Equal(t, pinned.Add(time.Minute), now())
}

func TestClock_NilNowFuncFallsBackToWallClock(t *testing.T) {
	var clock *Clock
	now := clock.NowFunc()
	assert.WithinDuration(t, time.Now(), now(), time.Minute)
}

func TestIDGenerator_SequentialWithPrefix(t *testing.T) {
	gen := NewIDGenerator("sess")
	assert.Equal(t, "sess-1", gen.Next())
	assert.Equal(t, "sess-2", gen.Next())

	next := gen.NextFunc()
	assert.Equal(t, "sess-3", next())

	assert.Equal(t, "id-1", NewIDGenerator("").Next())
}

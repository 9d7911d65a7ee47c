package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalToUTC_RoundTripAcrossDST(t *testing.T) {
	// New York springs forward on 2025-03-09: 02:00 EST jumps to 03:00 EDT.
	cases := []struct {
		name   string
		year   int
		month  time.Month
		day    int
		hour   int
		minute int
		zone   string
		want   string
	}{
		{"standard time before spring forward", 2025, time.March, 8, 14, 30, "America/New_York", "2025-03-08T19:30:00Z"},
		{"daylight time after spring forward", 2025, time.March, 10, 14, 30, "America/New_York", "2025-03-10T18:30:00Z"},
		{"utc passes through", 2025, time.June, 1, 9, 0, "UTC", "2025-06-01T09:00:00Z"},
		{"half hour offset zone", 2025, time.June, 1, 9, 0, "Asia/Kolkata", "2025-06-01T03:30:00Z"},
		{"southern hemisphere daylight time", 2025, time.January, 15, 9, 0, "Australia/Sydney", "2025-01-14T22:00:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalToUTC(tc.year, tc.month, tc.day, tc.hour, tc.minute, tc.zone)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format(time.RFC3339))

			// The round trip must restore the original wall clock.
			loc, err := time.LoadLocation(tc.zone)
			require.NoError(t, err)
			rendered := got.In(loc)
			assert.Equal(t, tc.hour, rendered.Hour())
			assert.Equal(t, tc.minute, rendered.Minute())
			assert.Equal(t, tc.day, rendered.Day())
		})
	}
}

func TestLocalToUTC_RejectsNonexistentWallClock(t *testing.T) {
	// 02:30 on 2025-03-09 never occurs in New York.
	_, err := LocalToUTC(2025, time.March, 9, 2, 30, "America/New_York")
	require.ErrorIs(t, err, ErrNonexistentLocalTime)

	// The surrounding valid wall clocks still convert.
	_, err = LocalToUTC(2025, time.March, 9, 1, 30, "America/New_York")
	require.NoError(t, err)
	_, err = LocalToUTC(2025, time.March, 9, 3, 0, "America/New_York")
	require.NoError(t, err)
}

func TestLocalToUTC_RejectsUnknownZone(t *testing.T) {
	_, err := LocalToUTC(2025, time.June, 1, 12, 0, "Mars/Olympus_Mons")
	require.ErrorIs(t, err, ErrZoneNotAllowed)

	// Real IANA zones outside the fixed list are rejected the same way.
	_, err = LocalToUTC(2025, time.June, 1, 12, 0, "Pacific/Auckland")
	require.ErrorIs(t, err, ErrZoneNotAllowed)
}

func TestOffsetAt_SamplesDSTBoundary(t *testing.T) {
	winter := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

	offWinter, err := OffsetAt("America/New_York", winter)
	require.NoError(t, err)
	offSummer, err := OffsetAt("America/New_York", summer)
	require.NoError(t, err)

	assert.Equal(t, -5*time.Hour, offWinter)
	assert.Equal(t, -4*time.Hour, offSummer)
}

func TestDefaultZone_AlwaysSupported(t *testing.T) {
	assert.True(t, ZoneAllowed(DefaultZone()))
}

func TestCurrentTimeIn(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	got, err := CurrentTimeIn("Asia/Tokyo", now)
	require.NoError(t, err)
	assert.Equal(t, "18:00", got)
}

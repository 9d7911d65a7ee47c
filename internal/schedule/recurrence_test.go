package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence_Daily(t *testing.T) {
	rule := Rule{Frequency: FrequencyDaily, Hour: 9, Minute: 0, Zone: "UTC"}

	after := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	got, err := NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T09:00:00Z", got.UTC().Format(time.RFC3339))

	// Past today's run time, the occurrence rolls to tomorrow.
	after = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	got, err = NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02T09:00:00Z", got.UTC().Format(time.RFC3339))
}

func TestNextOccurrence_DailySkipsSpringForwardGap(t *testing.T) {
	rule := Rule{Frequency: FrequencyDaily, Hour: 2, Minute: 30, Zone: "America/New_York"}

	// 02:30 on 2025-03-09 does not exist; the run advances to March 10.
	after := time.Date(2025, time.March, 8, 8, 0, 0, 0, time.UTC) // 03:00 EST
	got, err := NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", got.Format("2006-01-02"))
	assert.Equal(t, 2, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestNextOccurrence_Weekly(t *testing.T) {
	// Friday = 5. 2025-06-01 is a Sunday.
	rule := Rule{Frequency: FrequencyWeekly, Weekday: 5, Hour: 17, Minute: 0, Zone: "UTC"}

	after := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	got, err := NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-06T17:00:00Z", got.UTC().Format(time.RFC3339))
	assert.Equal(t, time.Friday, got.Weekday())

	// Exactly at the run instant, the next week's occurrence is returned.
	after = time.Date(2025, time.June, 6, 17, 0, 0, 0, time.UTC)
	got, err = NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-13T17:00:00Z", got.UTC().Format(time.RFC3339))
}

func TestNextOccurrence_MonthlySkipsShortMonths(t *testing.T) {
	rule := Rule{Frequency: FrequencyMonthly, Monthday: 31, Hour: 12, Minute: 0, Zone: "UTC"}

	// April has 30 days, so the day-31 run lands on May 31.
	after := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	got, err := NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-31T12:00:00Z", got.UTC().Format(time.RFC3339))
}

func TestNextOccurrence_MonthlyFebruary29(t *testing.T) {
	rule := Rule{Frequency: FrequencyMonthly, Monthday: 29, Hour: 0, Minute: 0, Zone: "UTC"}

	// From early February 2025 (not a leap year), Feb 29 does not exist but
	// March 29 does.
	after := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	got, err := NextOccurrence(rule, after)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-29T00:00:00Z", got.UTC().Format(time.RFC3339))
}

func TestNextOccurrence_InvalidRules(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
		want error
	}{
		{"unknown frequency", Rule{Frequency: "yearly", Zone: "UTC"}, ErrInvalidRule},
		{"hour out of range", Rule{Frequency: FrequencyDaily, Hour: 24, Zone: "UTC"}, ErrInvalidRule},
		{"weekday out of range", Rule{Frequency: FrequencyWeekly, Weekday: 7, Hour: 9, Zone: "UTC"}, ErrInvalidRule},
		{"monthday out of range", Rule{Frequency: FrequencyMonthly, Monthday: 0, Hour: 9, Zone: "UTC"}, ErrInvalidRule},
		{"unsupported zone", Rule{Frequency: FrequencyDaily, Hour: 9, Zone: "Pacific/Auckland"}, ErrZoneNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NextOccurrence(tc.rule, time.Now())
			require.ErrorIs(t, err, tc.want)
		})
	}
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid_PadsToFirstWeekday(t *testing.T) {
	// February 2025 starts on a Saturday: six padding cells, then 28 days.
	grid := MonthGrid(2025, time.February)
	require.Len(t, grid, 34)

	for i := 0; i < 6; i++ {
		assert.True(t, grid[i].IsZero(), "cell %d should be padding", i)
	}
	assert.Equal(t, 1, grid[6].Day())
	assert.Equal(t, time.Saturday, grid[6].Weekday())
	assert.Equal(t, 28, grid[len(grid)-1].Day())
}

func TestMonthGrid_NoPaddingWhenMonthStartsSunday(t *testing.T) {
	// June 2025 starts on a Sunday.
	grid := MonthGrid(2025, time.June)
	require.Len(t, grid, 30)
	assert.False(t, grid[0].IsZero())
	assert.Equal(t, 1, grid[0].Day())
}

func TestMonthGrid_LeapFebruary(t *testing.T) {
	grid := MonthGrid(2024, time.February)
	assert.Equal(t, 29, grid[len(grid)-1].Day())
}

func TestMonthGrid_PastMonthsAllowed(t *testing.T) {
	// The picker can navigate to any past month; no floor is enforced here.
	grid := MonthGrid(1999, time.December)
	require.NotEmpty(t, grid)
	assert.Equal(t, 31, grid[len(grid)-1].Day())
}

func TestMonthNavigation_CrossesYearBoundaries(t *testing.T) {
	year, month := PreviousMonth(2025, time.January)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.December, month)

	year, month = NextMonth(2024, time.December)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.January, month)

	year, month = NextMonth(2025, time.June)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.July, month)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "June 2025", MonthLabel(2025, time.June))
	assert.Equal(t, "December 1999", MonthLabel(1999, time.December))
}

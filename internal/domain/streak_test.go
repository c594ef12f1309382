package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// 2024 starts on a Monday (weekday 1), so week n covers
// daysSinceJan1 in [7n-9, 7n-3].
func TestWeekKeyOf(t *testing.T) {
	assert.Equal(t, WeekKey{2024, 1}, WeekKeyOf(day(2024, time.January, 1)))
	assert.Equal(t, WeekKey{2024, 5}, WeekKeyOf(day(2024, time.January, 30)))
	assert.Equal(t, WeekKey{2024, 10}, WeekKeyOf(day(2024, time.March, 5)))
	assert.Equal(t, WeekKey{2024, 11}, WeekKeyOf(day(2024, time.March, 12)))
	assert.Equal(t, WeekKey{2024, 12}, WeekKeyOf(day(2024, time.March, 19)))
}

func TestWeekKeyString(t *testing.T) {
	assert.Equal(t, "2024-W10", WeekKey{2024, 10}.String())
}

func TestWeekKeyPrev(t *testing.T) {
	assert.Equal(t, WeekKey{2024, 9}, WeekKey{2024, 10}.Prev())
	// Week 1 wraps to the previous year's week 52.
	assert.Equal(t, WeekKey{2023, 52}, WeekKey{2024, 1}.Prev())
}

func TestComputeWeeklyStreaks_ConsecutiveWeeks(t *testing.T) {
	completions := []time.Time{
		day(2024, time.March, 5),  // 2024-W10
		day(2024, time.March, 12), // 2024-W11
		day(2024, time.March, 19), // 2024-W12
		day(2024, time.January, 30), // isolated 2024-W5
	}
	now := day(2024, time.March, 20) // still W12

	current, longest := ComputeWeeklyStreaks(completions, now)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
}

func TestComputeWeeklyStreaks_GapBreaksCurrent(t *testing.T) {
	completions := []time.Time{
		day(2024, time.March, 5),  // 2024-W10
		day(2024, time.March, 19), // 2024-W12, W11 missing
	}
	now := day(2024, time.March, 20)

	current, longest := ComputeWeeklyStreaks(completions, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)
}

func TestComputeWeeklyStreaks_NoWorkoutThisWeek(t *testing.T) {
	completions := []time.Time{
		day(2024, time.March, 5),  // 2024-W10
		day(2024, time.March, 12), // 2024-W11
	}
	now := day(2024, time.March, 20) // W12, empty

	current, longest := ComputeWeeklyStreaks(completions, now)
	assert.Equal(t, 0, current)
	assert.Equal(t, 2, longest)
}

func TestComputeWeeklyStreaks_MultipleWorkoutsOneWeekCountOnce(t *testing.T) {
	completions := []time.Time{
		day(2024, time.March, 18), // 2024-W12
		day(2024, time.March, 19), // 2024-W12 again
		day(2024, time.March, 20), // 2024-W12 again
	}
	now := day(2024, time.March, 20)

	current, longest := ComputeWeeklyStreaks(completions, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)
}

func TestComputeWeeklyStreaks_YearBoundary(t *testing.T) {
	completions := []time.Time{
		day(2024, time.December, 22), // 2024-W52
		day(2025, time.January, 1),   // 2025-W1
	}
	now := day(2025, time.January, 1)

	current, longest := ComputeWeeklyStreaks(completions, now)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)
}

func TestComputeWeeklyStreaks_Empty(t *testing.T) {
	current, longest := ComputeWeeklyStreaks(nil, day(2024, time.March, 20))
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

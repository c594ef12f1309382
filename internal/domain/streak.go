// internal/domain/streak.go
package domain

import (
	"fmt"
	"sort"
	"time"
)

// Weekly adherence streaks. A week "counts" when at least one workout was
// completed in it; streaks are runs of consecutive counted weeks.
//
// Week numbering follows the scheme the mobile clients already display:
// week = ceil((daysSinceJan1 + weekday(Jan1) + 1) / 7), with Sunday as
// weekday 0. Week 1 of a year wraps back to week 52 of the previous year.
// Years with 53 such weeks therefore break a streak across the boundary;
// the count stays conservative and no week key ever collides, so this is
// accepted rather than special-cased.

// WeekKey identifies one calendar week.
type WeekKey struct {
	Year int
	Week int
}

// WeekKeyOf maps a timestamp to its week key.
func WeekKeyOf(t time.Time) WeekKey {
	year := t.Year()
	jan1Weekday := int(time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location()).Weekday())
	daysSinceJan1 := t.YearDay() - 1
	week := (daysSinceJan1 + jan1Weekday + 1 + 6) / 7 // ceil
	return WeekKey{Year: year, Week: week}
}

// Prev returns the immediately preceding week, wrapping week 1 to the
// previous year's week 52.
func (k WeekKey) Prev() WeekKey {
	if k.Week <= 1 {
		return WeekKey{Year: k.Year - 1, Week: 52}
	}
	return WeekKey{Year: k.Year, Week: k.Week - 1}
}

// Less orders week keys chronologically.
func (k WeekKey) Less(other WeekKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Week < other.Week
}

// String renders the key in the stored "2024-W10" form.
func (k WeekKey) String() string {
	return fmt.Sprintf("%d-W%d", k.Year, k.Week)
}

// ComputeWeeklyStreaks derives the current and longest weekly streaks from
// workout completion timestamps. The current streak is 0 when the week
// containing now has no workout; otherwise it counts back through
// consecutive preceding weeks. The longest streak is the longest
// consecutive run anywhere in the history.
func ComputeWeeklyStreaks(completions []time.Time, now time.Time) (current, longest int) {
	if len(completions) == 0 {
		return 0, 0
	}

	seen := make(map[WeekKey]struct{}, len(completions))
	for _, t := range completions {
		seen[WeekKeyOf(t)] = struct{}{}
	}

	keys := make([]WeekKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[j].Less(keys[i]) }) // descending

	// Current streak: walk backwards from this week while weeks keep hitting.
	for k := WeekKeyOf(now); ; k = k.Prev() {
		if _, ok := seen[k]; !ok {
			break
		}
		current++
	}

	// Longest streak: runs of consecutive keys in the descending list.
	run := 1
	longest = 1
	for i := 0; i < len(keys)-1; i++ {
		if keys[i+1] == keys[i].Prev() {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

// Package filter narrows the dataset to the records matching a viewer's selection.
package filter

import (
	"github.com/chrissnell/bikedash/internal/types"
)

// Apply returns the records that match every part of sel, in their original order.
// Years, seasons and weather are matched by exact set membership, so an empty set matches nothing.
// The input slice is never modified; the result is always a new slice.
func Apply(records []types.DailyRecord, sel types.FilterSelection) []types.DailyRecord {
	out := make([]types.DailyRecord, 0, len(records))

	// Any empty set short-circuits to an empty result
	if len(sel.Years) == 0 || len(sel.Seasons) == 0 || len(sel.Weather) == 0 {
		return out
	}

	for _, r := range records {
		if Matches(r, sel) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record passes the selection
func Matches(r types.DailyRecord, sel types.FilterSelection) bool {
	if _, ok := sel.Years[r.Year]; !ok {
		return false
	}
	if _, ok := sel.Seasons[r.Season]; !ok {
		return false
	}
	if _, ok := sel.Weather[r.WeatherCondition]; !ok {
		return false
	}
	return sel.DayType.Matches(r.DayType)
}

package restserver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/chrissnell/bikedash/internal/dataset"
	"github.com/chrissnell/bikedash/internal/types"
)

// parseSelection builds a filter selection from a query string.
// An absent parameter selects every option. A parameter present with only empty
// values selects nothing. Values may be repeated or comma-separated.
func parseSelection(q url.Values, opts dataset.FilterOptions) (types.FilterSelection, error) {
	years := opts.Years
	if raw, ok := q["year"]; ok {
		years = []int{}
		for _, v := range splitValues(raw) {
			y, err := strconv.Atoi(v)
			if err != nil {
				return types.FilterSelection{}, fmt.Errorf("invalid year %q", v)
			}
			years = append(years, y)
		}
	}

	seasons := opts.Seasons
	if raw, ok := q["season"]; ok {
		seasons = splitValues(raw)
	}

	weather := opts.Weather
	if raw, ok := q["weather"]; ok {
		weather = splitValues(raw)
	}

	dayType, err := types.ParseDayTypeChoice(q.Get("day_type"))
	if err != nil {
		return types.FilterSelection{}, err
	}

	return types.NewFilterSelection(years, seasons, weather, dayType), nil
}

// splitValues flattens repeated and comma-separated values, dropping empty ones
func splitValues(raw []string) []string {
	out := []string{}
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

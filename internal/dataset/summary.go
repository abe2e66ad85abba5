package dataset

import (
	"sort"
	"time"

	"github.com/chrissnell/bikedash/internal/types"
)

// Summary describes the whole unfiltered dataset
type Summary struct {
	TotalDays int       `json:"total_days"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	MeanCount float64   `json:"mean_count"`
}

// FilterOptions are the values offered to the viewer, and the defaults used when a filter is not given
type FilterOptions struct {
	Years    []int    `json:"years"`
	Seasons  []string `json:"seasons"`
	Weather  []string `json:"weather"`
	DayTypes []string `json:"day_types"`
}

// Summarize computes the dataset overview shown next to the filters
func Summarize(records []types.DailyRecord) Summary {
	s := Summary{TotalDays: len(records)}
	if len(records) == 0 {
		return s
	}

	var total int
	s.From, s.To = records[0].Date, records[0].Date
	for _, r := range records {
		total += r.Count
		if r.Date.Before(s.From) {
			s.From = r.Date
		}
		if r.Date.After(s.To) {
			s.To = r.Date
		}
	}
	s.MeanCount = float64(total) / float64(len(records))
	return s
}

// Options lists distinct years ascending, and seasons and weather conditions in order of first appearance
func Options(records []types.DailyRecord) FilterOptions {
	opts := FilterOptions{
		Years:   []int{},
		Seasons: []string{},
		Weather: []string{},
	}

	seenYear := make(map[int]bool)
	seenSeason := make(map[string]bool)
	seenWeather := make(map[string]bool)

	for _, r := range records {
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			opts.Years = append(opts.Years, r.Year)
		}
		if !seenSeason[r.Season] {
			seenSeason[r.Season] = true
			opts.Seasons = append(opts.Seasons, r.Season)
		}
		if !seenWeather[r.WeatherCondition] {
			seenWeather[r.WeatherCondition] = true
			opts.Weather = append(opts.Weather, r.WeatherCondition)
		}
	}
	sort.Ints(opts.Years)

	for _, c := range types.DayTypeChoices {
		opts.DayTypes = append(opts.DayTypes, string(c))
	}

	return opts
}

// DefaultSelection selects every option, which is what the dashboard shows before the viewer changes anything
func (o FilterOptions) DefaultSelection() types.FilterSelection {
	return types.NewFilterSelection(o.Years, o.Seasons, o.Weather, types.DayTypeAll)
}

package types

import (
	"fmt"
	"sort"
	"strings"
)

// DayTypeChoice is the viewer's weekday/weekend radio selection
type DayTypeChoice string

const (
	DayTypeAll           DayTypeChoice = "All"
	DayTypeChoiceWeekday DayTypeChoice = "Weekday"
	DayTypeChoiceWeekend DayTypeChoice = "Weekend"
)

// DayTypeChoices lists the choices in the order the dashboard offers them
var DayTypeChoices = []DayTypeChoice{DayTypeAll, DayTypeChoiceWeekday, DayTypeChoiceWeekend}

// ParseDayTypeChoice parses a day-type choice case-insensitively. An empty string means All.
func ParseDayTypeChoice(s string) (DayTypeChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return DayTypeAll, nil
	case "weekday":
		return DayTypeChoiceWeekday, nil
	case "weekend":
		return DayTypeChoiceWeekend, nil
	default:
		return "", fmt.Errorf("invalid day type %q: must be one of all, weekday, weekend", s)
	}
}

// Matches reports whether a record's day_type value passes this choice
func (c DayTypeChoice) Matches(dayType string) bool {
	switch c {
	case DayTypeChoiceWeekday:
		return dayType == DayTypeWeekday
	case DayTypeChoiceWeekend:
		return dayType == DayTypeWeekend
	default:
		return true
	}
}

// FilterSelection is the set of predicates chosen for one render cycle.
// An empty Years, Seasons or Weather set selects nothing.
type FilterSelection struct {
	Years   map[int]struct{}
	Seasons map[string]struct{}
	Weather map[string]struct{}
	DayType DayTypeChoice
}

// NewFilterSelection builds a selection from plain slices
func NewFilterSelection(years []int, seasons, weather []string, dayType DayTypeChoice) FilterSelection {
	sel := FilterSelection{
		Years:   make(map[int]struct{}, len(years)),
		Seasons: make(map[string]struct{}, len(seasons)),
		Weather: make(map[string]struct{}, len(weather)),
		DayType: dayType,
	}
	for _, y := range years {
		sel.Years[y] = struct{}{}
	}
	for _, s := range seasons {
		sel.Seasons[s] = struct{}{}
	}
	for _, w := range weather {
		sel.Weather[w] = struct{}{}
	}
	if sel.DayType == "" {
		sel.DayType = DayTypeAll
	}
	return sel
}

// SelectionEcho is the JSON-friendly form of a FilterSelection, with sorted members
type SelectionEcho struct {
	Years   []int    `json:"years"`
	Seasons []string `json:"seasons"`
	Weather []string `json:"weather"`
	DayType string   `json:"day_type"`
}

// Echo returns the selection with deterministic ordering for display
func (s FilterSelection) Echo() SelectionEcho {
	e := SelectionEcho{
		Years:   make([]int, 0, len(s.Years)),
		Seasons: make([]string, 0, len(s.Seasons)),
		Weather: make([]string, 0, len(s.Weather)),
		DayType: string(s.DayType),
	}
	for y := range s.Years {
		e.Years = append(e.Years, y)
	}
	for v := range s.Seasons {
		e.Seasons = append(e.Seasons, v)
	}
	for v := range s.Weather {
		e.Weather = append(e.Weather, v)
	}
	sort.Ints(e.Years)
	sort.Strings(e.Seasons)
	sort.Strings(e.Weather)
	if e.DayType == "" {
		e.DayType = string(DayTypeAll)
	}
	return e
}

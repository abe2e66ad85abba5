package filter

import (
	"reflect"
	"testing"

	"github.com/chrissnell/bikedash/internal/types"
)

func rec(year int, season, weather, dayType string, count int) types.DailyRecord {
	return types.DailyRecord{
		Year:             year,
		Season:           season,
		WeatherCondition: weather,
		DayType:          dayType,
		Count:            count,
		Registered:       count,
	}
}

var sample = []types.DailyRecord{
	rec(2011, "winter", "clear", types.DayTypeWeekend, 100),
	rec(2011, "summer", "mist", types.DayTypeWeekday, 200),
	rec(2012, "summer", "clear", types.DayTypeWeekday, 300),
	rec(2012, "fall", "light rain", types.DayTypeWeekend, 400),
	rec(2012, "summer", "clear", types.DayTypeWeekend, 500),
}

func all() types.FilterSelection {
	return types.NewFilterSelection(
		[]int{2011, 2012},
		[]string{"spring", "summer", "fall", "winter"},
		[]string{"clear", "mist", "light rain", "heavy rain"},
		types.DayTypeAll,
	)
}

func counts(records []types.DailyRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Count
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		sel  types.FilterSelection
		want []int
	}{
		{"everything", all(), []int{100, 200, 300, 400, 500}},
		{"one year", types.NewFilterSelection([]int{2012}, []string{"summer", "fall", "winter"}, []string{"clear", "mist", "light rain"}, types.DayTypeAll), []int{300, 400, 500}},
		{"weekday only", types.NewFilterSelection([]int{2011, 2012}, []string{"summer", "fall", "winter"}, []string{"clear", "mist", "light rain"}, types.DayTypeChoiceWeekday), []int{200, 300}},
		{"weekend summer clear", types.NewFilterSelection([]int{2011, 2012}, []string{"summer"}, []string{"clear"}, types.DayTypeChoiceWeekend), []int{500}},
		{"no matching weather", types.NewFilterSelection([]int{2011, 2012}, []string{"summer"}, []string{"heavy rain"}, types.DayTypeAll), []int{}},
		{"empty years", types.NewFilterSelection(nil, []string{"summer"}, []string{"clear"}, types.DayTypeAll), []int{}},
		{"empty seasons", types.NewFilterSelection([]int{2011}, nil, []string{"clear"}, types.DayTypeAll), []int{}},
		{"empty weather", types.NewFilterSelection([]int{2011}, []string{"summer"}, nil, types.DayTypeAll), []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample, tt.sel)
			if !reflect.DeepEqual(counts(got), tt.want) {
				t.Errorf("Apply() = %v, want %v", counts(got), tt.want)
			}
			// Every kept record satisfies the selection
			for _, r := range got {
				if !Matches(r, tt.sel) {
					t.Errorf("record %+v does not match the selection", r)
				}
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	sel := types.NewFilterSelection([]int{2012}, []string{"summer"}, []string{"clear"}, types.DayTypeAll)
	once := Apply(sample, sel)
	twice := Apply(once, sel)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Apply twice = %v, once = %v", counts(twice), counts(once))
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	input := append([]types.DailyRecord(nil), sample...)
	got := Apply(input, all())
	if !reflect.DeepEqual(input, sample) {
		t.Fatal("Apply modified its input")
	}
	got[0].Count = -1
	if input[0].Count == -1 {
		t.Error("Apply result shares storage with its input")
	}
}

func TestWeekdayAndWeekendPartition(t *testing.T) {
	base := all()

	weekday := base
	weekday.DayType = types.DayTypeChoiceWeekday
	weekend := base
	weekend.DayType = types.DayTypeChoiceWeekend

	n := len(Apply(sample, weekday)) + len(Apply(sample, weekend))
	if n != len(Apply(sample, base)) {
		t.Errorf("weekday + weekend = %d, want %d", n, len(Apply(sample, base)))
	}
}

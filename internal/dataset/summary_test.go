package dataset

import (
	"strings"
	"testing"

	"github.com/chrissnell/bikedash/internal/types"
)

func TestOptionsAndSummary(t *testing.T) {
	records, err := Parse(strings.NewReader(validCSV), "fixture.csv")
	if err != nil {
		t.Fatal(err)
	}

	opts := Options(records)
	if len(opts.Years) != 2 || opts.Years[0] != 2011 || opts.Years[1] != 2012 {
		t.Errorf("Years = %v", opts.Years)
	}
	if strings.Join(opts.Seasons, ",") != "winter,spring" {
		t.Errorf("Seasons = %v, want first-appearance order", opts.Seasons)
	}
	if strings.Join(opts.Weather, ",") != "mist,clear" {
		t.Errorf("Weather = %v, want first-appearance order", opts.Weather)
	}
	if strings.Join(opts.DayTypes, ",") != "All,Weekday,Weekend" {
		t.Errorf("DayTypes = %v", opts.DayTypes)
	}

	sel := opts.DefaultSelection()
	if len(sel.Years) != 2 || len(sel.Seasons) != 2 || len(sel.Weather) != 2 || sel.DayType != types.DayTypeAll {
		t.Errorf("DefaultSelection() = %+v", sel)
	}

	s := Summarize(records)
	if s.TotalDays != 3 {
		t.Errorf("TotalDays = %d", s.TotalDays)
	}
	if s.From.Year() != 2011 || s.To.Year() != 2012 {
		t.Errorf("range = %v .. %v", s.From, s.To)
	}
	if want := float64(985+801+2729) / 3; s.MeanCount != want {
		t.Errorf("MeanCount = %v, want %v", s.MeanCount, want)
	}

	if empty := Summarize(nil); empty.TotalDays != 0 || !empty.From.IsZero() {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}

package aggregate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/chrissnell/bikedash/internal/types"
)

func day(month, weekday, season, weather, dayType string, casual, registered int) types.DailyRecord {
	return types.DailyRecord{
		Month:            month,
		Weekday:          weekday,
		Season:           season,
		WeatherCondition: weather,
		DayType:          dayType,
		Casual:           casual,
		Registered:       registered,
		Count:            casual + registered,
	}
}

func TestMonthly(t *testing.T) {
	records := []types.DailyRecord{
		day("january", "monday", "winter", "clear", types.DayTypeWeekday, 40, 60),
		day("january", "tuesday", "winter", "clear", types.DayTypeWeekday, 50, 150),
		day("june", "saturday", "summer", "clear", types.DayTypeWeekend, 1000, 5000),
	}

	rows := Monthly(records)
	if len(rows) != 12 {
		t.Fatalf("got %d rows, want 12", len(rows))
	}
	for i, r := range rows {
		if r.Month != MonthOrder[i] {
			t.Errorf("row %d = %s, want %s", i, r.Month, MonthOrder[i])
		}
		switch r.Month {
		case "january":
			if r.Days != 2 || r.Mean != 150 || r.Min != 100 || r.Max != 200 || r.Sum != 300 {
				t.Errorf("january = %+v", r)
			}
		case "june":
			if r.Days != 1 || r.Mean != 6000 || r.Sum != 6000 {
				t.Errorf("june = %+v", r)
			}
		default:
			if r.Days != 0 || r.Mean != 0 || r.Sum != 0 || r.Min != 0 || r.Max != 0 {
				t.Errorf("%s should be empty, got %+v", r.Month, r)
			}
		}
	}
}

func TestSeasonalOrderAndQuartiles(t *testing.T) {
	// Seasons appear in reverse of display order
	records := []types.DailyRecord{
		day("december", "monday", "winter", "mist", types.DayTypeWeekday, 10, 90),
		day("october", "monday", "fall", "clear", types.DayTypeWeekday, 0, 300),
		day("july", "monday", "summer", "clear", types.DayTypeWeekday, 30, 170),
		day("july", "monday", "summer", "clear", types.DayTypeWeekday, 50, 250),
		day("july", "monday", "summer", "clear", types.DayTypeWeekday, 10, 90),
	}

	rows := Seasonal(records)
	want := []string{"spring", "summer", "fall", "winter"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, r := range rows {
		if r.Season != want[i] {
			t.Errorf("row %d = %s, want %s", i, r.Season, want[i])
		}
	}

	summer := rows[1]
	if summer.Q1 != 100 || summer.Median != 200 || summer.Q3 != 300 {
		t.Errorf("summer quartiles = %v/%v/%v, want 100/200/300", summer.Q1, summer.Median, summer.Q3)
	}
	if summer.MeanCasual != 30 || summer.MeanRegistered != 170 {
		t.Errorf("summer user means = %v/%v", summer.MeanCasual, summer.MeanRegistered)
	}
	if spring := rows[0]; spring.Days != 0 || spring.Median != 0 || spring.MeanCasual != 0 {
		t.Errorf("spring should be empty, got %+v", spring)
	}
}

func TestWeatherIsCaseSensitive(t *testing.T) {
	records := []types.DailyRecord{
		day("may", "monday", "summer", "clear", types.DayTypeWeekday, 30, 170),
		day("may", "monday", "summer", "Clear", types.DayTypeWeekday, 30, 170),
	}

	rows := Weather(records)
	if len(rows) != len(WeatherOrder) {
		t.Fatalf("got %d rows, want %d", len(rows), len(WeatherOrder))
	}
	if rows[0].Weather != "clear" || rows[0].Days != 1 || rows[0].Mean != 200 {
		t.Errorf("clear = %+v", rows[0])
	}
	if rows[0].MeanCasual != 30 || rows[0].MeanRegistered != 170 {
		t.Errorf("clear user means = %+v", rows[0])
	}
}

func TestConservation(t *testing.T) {
	records := []types.DailyRecord{
		day("january", "monday", "winter", "clear", types.DayTypeWeekday, 331, 654),
		day("march", "saturday", "spring", "mist", types.DayTypeWeekend, 120, 1000),
		day("june", "sunday", "summer", "light rain", types.DayTypeWeekend, 7, 93),
		day("september", "friday", "fall", "clear", types.DayTypeWeekday, 2000, 4500),
	}

	total := ComputeTotals(records)
	if total.SumCount != total.SumCasual+total.SumRegistered {
		t.Errorf("sum count %d != casual %d + registered %d", total.SumCount, total.SumCasual, total.SumRegistered)
	}

	var monthSum, weatherSum, days int
	for _, r := range Monthly(records) {
		monthSum += r.Sum
		days += r.Days
	}
	for _, r := range Weather(records) {
		weatherSum += r.Sum
	}
	if monthSum != total.SumCount || weatherSum != total.SumCount {
		t.Errorf("group sums month=%d weather=%d, want %d", monthSum, weatherSum, total.SumCount)
	}
	if days != len(records) {
		t.Errorf("group days = %d, want %d", days, len(records))
	}

	var dtDays int
	for _, r := range DayTypes(records) {
		dtDays += r.Days
	}
	if dtDays != len(records) {
		t.Errorf("day type days = %d, want %d", dtDays, len(records))
	}
}

func TestEmptyInput(t *testing.T) {
	if rows := Monthly(nil); len(rows) != 12 {
		t.Errorf("Monthly(nil) = %d rows", len(rows))
	}
	if rows := Seasonal(nil); len(rows) != 4 {
		t.Errorf("Seasonal(nil) = %d rows", len(rows))
	}
	if rows := Weather(nil); len(rows) != 4 {
		t.Errorf("Weather(nil) = %d rows", len(rows))
	}
	if rows := DayTypes(nil); len(rows) != 2 {
		t.Errorf("DayTypes(nil) = %d rows", len(rows))
	}
	if rows := Weekdays(nil); len(rows) != 7 || rows[6].Weekday != "sunday" {
		t.Errorf("Weekdays(nil) = %+v", rows)
	}
	if rows := Segments(nil); len(rows) != len(SegmentOrder) {
		t.Errorf("Segments(nil) = %d rows", len(rows))
	}
	for _, counts := range [][]CategoryCount{TempCategories(nil), HumidityCategories(nil), VolumeCategories(nil)} {
		for _, c := range counts {
			if c.Days != 0 {
				t.Errorf("category %s has %d days", c.Category, c.Days)
			}
		}
	}
	if tot := ComputeTotals(nil); tot != (Totals{}) {
		t.Errorf("ComputeTotals(nil) = %+v", tot)
	}
}

func TestSegmentsAndCategories(t *testing.T) {
	records := []types.DailyRecord{
		{Segment: "Best Days", Count: 8000, Recency: 10, RScore: 5, FScore: 4, MScore: 5, TempCategory: "Hot", HumCategory: "Low Humidity", RentalVolumeCategory: "Very High Rentals"},
		{Segment: "Best Days", Count: 7000, Recency: 20, RScore: 4, FScore: 5, MScore: 5, TempCategory: "Warm", HumCategory: "Low Humidity", RentalVolumeCategory: "Very High Rentals"},
		{Segment: "Lost Days", Count: 500, Recency: 700, RScore: 1, FScore: 1, MScore: 1, TempCategory: "Cold", HumCategory: "High Humidity", RentalVolumeCategory: "Low Rentals"},
	}

	segs := Segments(records)
	if segs[0].Segment != "Best Days" || segs[0].Days != 2 || segs[0].Mean != 7500 || segs[0].Recency != 15 || segs[0].RScore != 4.5 {
		t.Errorf("Best Days = %+v", segs[0])
	}
	if last := segs[len(segs)-1]; last.Segment != "Lost Days" || last.Days != 1 || last.Min != 500 {
		t.Errorf("Lost Days = %+v", last)
	}

	vol := VolumeCategories(records)
	if vol[0].Category != "Low Rentals" || vol[0].Days != 1 || vol[3].Days != 2 {
		t.Errorf("volume = %+v", vol)
	}
	hum := HumidityCategories(records)
	if hum[0].Days != 2 || hum[2].Days != 1 {
		t.Errorf("humidity = %+v", hum)
	}
}

func TestSegmentMeansSkipNonFinite(t *testing.T) {
	records := []types.DailyRecord{
		{Segment: "Lost Days", Count: 300, Recency: math.NaN(), RScore: 1, FScore: 1, MScore: 1},
		{Segment: "Lost Days", Count: 500, Recency: 4, RScore: math.Inf(1), FScore: 1, MScore: 1},
	}

	var lost SegmentRow
	for _, r := range Segments(records) {
		if r.Segment == "Lost Days" {
			lost = r
		}
	}
	if lost.Days != 2 || lost.Recency != 4 || lost.RScore != 1 {
		t.Errorf("Lost Days = %+v, want recency 4 and R score 1", lost)
	}
	if _, err := json.Marshal(lost); err != nil {
		t.Errorf("json.Marshal() error = %v", err)
	}
}

func TestRoundTo2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1},
		{2.346, 2.35},
		{4504.348623, 4504.35},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundTo2(tt.in); got != tt.want {
			t.Errorf("RoundTo2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Package aggregate groups filtered records by a categorical field and computes per-group statistics.
//
// Every function here is total: it emits one row per category of the field's fixed order,
// and a category with no records gets a row of zeros rather than being dropped.
package aggregate

import (
	"github.com/chrissnell/bikedash/internal/types"
)

// MonthlyRow is one month of the monthly rental trend
type MonthlyRow struct {
	Month string  `json:"month"`
	Days  int     `json:"days"`
	Mean  float64 `json:"mean"`
	Max   int     `json:"max"`
	Min   int     `json:"min"`
	Sum   int     `json:"sum"`
}

// SeasonalRow is one season of the seasonal distribution, with quartiles for a box plot
type SeasonalRow struct {
	Season         string  `json:"season"`
	Days           int     `json:"days"`
	Mean           float64 `json:"mean"`
	Min            int     `json:"min"`
	Max            int     `json:"max"`
	Q1             float64 `json:"q1"`
	Median         float64 `json:"median"`
	Q3             float64 `json:"q3"`
	MeanCasual     float64 `json:"mean_casual"`
	MeanRegistered float64 `json:"mean_registered"`
}

// WeatherRow is one weather condition of the weather effect table
type WeatherRow struct {
	Weather        string  `json:"weather"`
	Days           int     `json:"days"`
	Mean           float64 `json:"mean"`
	Max            int     `json:"max"`
	Min            int     `json:"min"`
	Sum            int     `json:"sum"`
	MeanCasual     float64 `json:"mean_casual"`
	MeanRegistered float64 `json:"mean_registered"`
}

// DayTypeRow compares weekdays with weekends
type DayTypeRow struct {
	DayType string  `json:"day_type"`
	Days    int     `json:"days"`
	Mean    float64 `json:"mean"`
}

// WeekdayRow is one day of the per-weekday trend
type WeekdayRow struct {
	Weekday string  `json:"weekday"`
	Days    int     `json:"days"`
	Mean    float64 `json:"mean"`
}

// SegmentRow summarizes one RFM segment
type SegmentRow struct {
	Segment string  `json:"segment"`
	Days    int     `json:"days"`
	Mean    float64 `json:"mean"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Recency float64 `json:"recency"`
	RScore  float64 `json:"r_score"`
	FScore  float64 `json:"f_score"`
	MScore  float64 `json:"m_score"`
}

// CategoryCount is the number of days that fall in one pre-assigned category
type CategoryCount struct {
	Category string `json:"category"`
	Days     int    `json:"days"`
}

// Totals are the headline metrics of a filtered set
type Totals struct {
	Days          int     `json:"days"`
	SumCount      int     `json:"sum_count"`
	SumCasual     int     `json:"sum_casual"`
	SumRegistered int     `json:"sum_registered"`
	MeanCount     float64 `json:"mean_count"`
	MaxCount      int     `json:"max_count"`
	MinCount      int     `json:"min_count"`
}

// Monthly computes mean, max, min and sum of count per month, January through December
func Monthly(records []types.DailyRecord) []MonthlyRow {
	groups := groupBy(records, MonthOrder, func(r types.DailyRecord) string { return r.Month })
	rows := make([]MonthlyRow, 0, len(groups))
	for _, g := range groups {
		s := summarizeCounts(g.records)
		rows = append(rows, MonthlyRow{
			Month: g.key,
			Days:  s.days,
			Mean:  s.mean,
			Max:   s.max,
			Min:   s.min,
			Sum:   s.sum,
		})
	}
	return rows
}

// Seasonal computes the count distribution and user-type means per season
func Seasonal(records []types.DailyRecord) []SeasonalRow {
	groups := groupBy(records, SeasonOrder, func(r types.DailyRecord) string { return r.Season })
	rows := make([]SeasonalRow, 0, len(groups))
	for _, g := range groups {
		s := summarizeCounts(g.records)
		q1, median, q3 := quartiles(column(g.records, count))
		rows = append(rows, SeasonalRow{
			Season:         g.key,
			Days:           s.days,
			Mean:           s.mean,
			Min:            s.min,
			Max:            s.max,
			Q1:             q1,
			Median:         median,
			Q3:             q3,
			MeanCasual:     mean(column(g.records, casual)),
			MeanRegistered: mean(column(g.records, registered)),
		})
	}
	return rows
}

// Weather computes count statistics and user-type means per weather condition
func Weather(records []types.DailyRecord) []WeatherRow {
	groups := groupBy(records, WeatherOrder, func(r types.DailyRecord) string { return r.WeatherCondition })
	rows := make([]WeatherRow, 0, len(groups))
	for _, g := range groups {
		s := summarizeCounts(g.records)
		rows = append(rows, WeatherRow{
			Weather:        g.key,
			Days:           s.days,
			Mean:           s.mean,
			Max:            s.max,
			Min:            s.min,
			Sum:            s.sum,
			MeanCasual:     mean(column(g.records, casual)),
			MeanRegistered: mean(column(g.records, registered)),
		})
	}
	return rows
}

// DayTypes computes mean count for weekdays and weekends
func DayTypes(records []types.DailyRecord) []DayTypeRow {
	groups := groupBy(records, DayTypeOrder, func(r types.DailyRecord) string { return r.DayType })
	rows := make([]DayTypeRow, 0, len(groups))
	for _, g := range groups {
		s := summarizeCounts(g.records)
		rows = append(rows, DayTypeRow{DayType: g.key, Days: s.days, Mean: s.mean})
	}
	return rows
}

// Weekdays computes mean count per day of the week, Monday through Sunday
func Weekdays(records []types.DailyRecord) []WeekdayRow {
	groups := groupBy(records, WeekdayOrder, func(r types.DailyRecord) string { return r.Weekday })
	rows := make([]WeekdayRow, 0, len(groups))
	for _, g := range groups {
		s := summarizeCounts(g.records)
		rows = append(rows, WeekdayRow{Weekday: g.key, Days: s.days, Mean: s.mean})
	}
	return rows
}

// Segments summarizes count and the pre-computed RFM fields per segment
func Segments(records []types.DailyRecord) []SegmentRow {
	groups := groupBy(records, SegmentOrder, func(r types.DailyRecord) string { return r.Segment })
	rows := make([]SegmentRow, 0, len(groups))
	for _, g := range groups {
		s := summarizeCounts(g.records)
		rows = append(rows, SegmentRow{
			Segment: g.key,
			Days:    s.days,
			Mean:    s.mean,
			Min:     s.min,
			Max:     s.max,
			Recency: mean(column(g.records, func(r types.DailyRecord) float64 { return r.Recency })),
			RScore:  mean(column(g.records, func(r types.DailyRecord) float64 { return r.RScore })),
			FScore:  mean(column(g.records, func(r types.DailyRecord) float64 { return r.FScore })),
			MScore:  mean(column(g.records, func(r types.DailyRecord) float64 { return r.MScore })),
		})
	}
	return rows
}

// TempCategories counts days per temperature category
func TempCategories(records []types.DailyRecord) []CategoryCount {
	return countBy(records, TempOrder, func(r types.DailyRecord) string { return r.TempCategory })
}

// HumidityCategories counts days per humidity category
func HumidityCategories(records []types.DailyRecord) []CategoryCount {
	return countBy(records, HumidityOrder, func(r types.DailyRecord) string { return r.HumCategory })
}

// VolumeCategories counts days per rental volume category
func VolumeCategories(records []types.DailyRecord) []CategoryCount {
	return countBy(records, VolumeOrder, func(r types.DailyRecord) string { return r.RentalVolumeCategory })
}

func countBy(records []types.DailyRecord, order []string, key func(types.DailyRecord) string) []CategoryCount {
	groups := groupBy(records, order, key)
	counts := make([]CategoryCount, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, CategoryCount{Category: g.key, Days: len(g.records)})
	}
	return counts
}

// ComputeTotals computes the headline metrics over the whole filtered set
func ComputeTotals(records []types.DailyRecord) Totals {
	s := summarizeCounts(records)
	t := Totals{
		Days:      s.days,
		SumCount:  s.sum,
		MeanCount: s.mean,
		MaxCount:  s.max,
		MinCount:  s.min,
	}
	for _, r := range records {
		t.SumCasual += r.Casual
		t.SumRegistered += r.Registered
	}
	return t
}

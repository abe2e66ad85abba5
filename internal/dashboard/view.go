// Package dashboard runs the filter and every aggregation for one selection and
// assembles the result into a view model for the presentation layer.
package dashboard

import (
	"math"

	"github.com/chrissnell/bikedash/internal/aggregate"
	"github.com/chrissnell/bikedash/internal/filter"
	"github.com/chrissnell/bikedash/internal/types"
)

// Metrics is the row of headline numbers at the top of the page
type Metrics struct {
	TotalDays    int `json:"total_days"`
	TotalRentals int `json:"total_rentals"`
	MeanPerDay   int `json:"mean_per_day"`
	MaxRentals   int `json:"max_rentals"`
}

// ViewModel is everything the page shows for one selection
type ViewModel struct {
	Selection types.SelectionEcho `json:"selection"`
	Metrics   Metrics             `json:"metrics"`
	Totals    aggregate.Totals    `json:"totals"`

	Monthly     []aggregate.MonthlyRow    `json:"monthly"`
	Seasonal    []aggregate.SeasonalRow   `json:"seasonal"`
	Weather     []aggregate.WeatherRow    `json:"weather"`
	DayTypes    []aggregate.DayTypeRow    `json:"day_types"`
	Weekdays    []aggregate.WeekdayRow    `json:"weekdays"`
	Segments    []aggregate.SegmentRow    `json:"segments"`
	Temperature []aggregate.CategoryCount `json:"temperature"`
	Humidity    []aggregate.CategoryCount `json:"humidity"`
	Volume      []aggregate.CategoryCount `json:"volume"`

	Labels Labels `json:"labels"`

	// Filtered records, served separately by the records endpoint
	Records []types.DailyRecord `json:"-"`
}

// Render filters records by sel and computes every aggregation. It has no side effects
// and is called once per request; nothing is carried between calls.
func Render(records []types.DailyRecord, sel types.FilterSelection) *ViewModel {
	filtered := filter.Apply(records, sel)
	totals := aggregate.ComputeTotals(filtered)

	return &ViewModel{
		Selection: sel.Echo(),
		Metrics: Metrics{
			TotalDays:    totals.Days,
			TotalRentals: totals.SumCount,
			MeanPerDay:   int(math.Round(totals.MeanCount)),
			MaxRentals:   totals.MaxCount,
		},
		Totals:      totals,
		Monthly:     aggregate.Monthly(filtered),
		Seasonal:    aggregate.Seasonal(filtered),
		Weather:     aggregate.Weather(filtered),
		DayTypes:    aggregate.DayTypes(filtered),
		Weekdays:    aggregate.Weekdays(filtered),
		Segments:    aggregate.Segments(filtered),
		Temperature: aggregate.TempCategories(filtered),
		Humidity:    aggregate.HumidityCategories(filtered),
		Volume:      aggregate.VolumeCategories(filtered),
		Labels:      defaultLabels(),
		Records:     filtered,
	}
}

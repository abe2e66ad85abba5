package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/chrissnell/bikedash/internal/aggregate"
	"github.com/chrissnell/bikedash/internal/dashboard"
)

// writeText prints the view model as plain tables
func writeText(w io.Writer, vm *dashboard.ViewModel) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	sel := vm.Selection
	years := make([]string, 0, len(sel.Years))
	for _, y := range sel.Years {
		years = append(years, strconv.Itoa(y))
	}
	fmt.Fprintf(w, "Years: %s\nSeasons: %s\nWeather: %s\nDay type: %s\n\n",
		listOrNone(years), listOrNone(sel.Seasons), listOrNone(sel.Weather), sel.DayType)

	m := vm.Metrics
	fmt.Fprintf(w, "Total days: %s\nTotal rentals: %s\nMean per day: %s\nMax rentals: %s\n\n",
		humanize.Comma(int64(m.TotalDays)), humanize.Comma(int64(m.TotalRentals)),
		humanize.Comma(int64(m.MeanPerDay)), humanize.Comma(int64(m.MaxRentals)))

	fmt.Fprintln(tw, "Month\tDays\tMean\tMax\tMin\tSum\t")
	for _, r := range vm.Monthly {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t\n", dashboard.Label(vm.Labels.Months, r.Month), r.Days,
			humanize.CommafWithDigits(r.Mean, 2), humanize.Comma(int64(r.Max)),
			humanize.Comma(int64(r.Min)), humanize.Comma(int64(r.Sum)))
	}
	fmt.Fprintln(tw, "\t\t\t\t\t\t")

	fmt.Fprintln(tw, "Season\tDays\tMean\tQ1\tMedian\tQ3\t")
	for _, r := range vm.Seasonal {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t\n", dashboard.Label(vm.Labels.Seasons, r.Season), r.Days,
			humanize.CommafWithDigits(r.Mean, 2), humanize.Commaf(r.Q1),
			humanize.Commaf(r.Median), humanize.Commaf(r.Q3))
	}
	fmt.Fprintln(tw, "\t\t\t\t\t\t")

	fmt.Fprintln(tw, "Weather\tDays\tMean\tCasual\tRegistered\t")
	for _, r := range vm.Weather {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t\n", dashboard.Label(vm.Labels.Weather, r.Weather), r.Days,
			humanize.CommafWithDigits(r.Mean, 2), humanize.CommafWithDigits(r.MeanCasual, 2),
			humanize.CommafWithDigits(r.MeanRegistered, 2))
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")

	fmt.Fprintln(tw, "Day\tDays\tMean\t")
	for _, r := range vm.Weekdays {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", dashboard.Label(vm.Labels.Weekdays, r.Weekday), r.Days, humanize.CommafWithDigits(r.Mean, 2))
	}
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintln(tw, "Day type\tDays\tMean\t")
	for _, r := range vm.DayTypes {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", dashboard.Label(vm.Labels.DayTypes, r.DayType), r.Days, humanize.CommafWithDigits(r.Mean, 2))
	}
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintln(tw, "Segment\tDays\tMean\tRecency\t")
	for _, r := range vm.Segments {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", r.Segment, r.Days,
			humanize.CommafWithDigits(r.Mean, 2), humanize.CommafWithDigits(r.Recency, 2))
	}
	fmt.Fprintln(tw, "\t\t\t\t")

	writeCounts(tw, "Temperature", vm.Temperature, nil)
	writeCounts(tw, "Humidity", vm.Humidity, nil)
	writeCounts(tw, "Rental volume", vm.Volume, vm.Labels.Volume)

	return tw.Flush()
}

func writeCounts(w io.Writer, title string, counts []aggregate.CategoryCount, labels map[string]string) {
	fmt.Fprintf(w, "%s\tDays\t\n", title)
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\t\n", dashboard.Label(labels, c.Category), c.Days)
	}
	fmt.Fprintln(w, "\t\t")
}

func listOrNone(v []string) string {
	if len(v) == 0 {
		return "(none)"
	}
	return strings.Join(v, ", ")
}

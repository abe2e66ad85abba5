package dashboard

import (
	"errors"
	"fmt"

	"github.com/chrissnell/bikedash/internal/aggregate"
)

// ErrUnknownChart is returned for a chart name the dashboard does not draw
var ErrUnknownChart = errors.New("unknown chart")

// Bar is one labelled value on a bar chart
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one named set of bars. Charts with more than one series share the same labels.
type ChartSeries struct {
	Name string `json:"name"`
	Bars []Bar  `json:"bars"`
}

// ChartSpec describes a chart independently of how it is drawn
type ChartSpec struct {
	Name   string        `json:"name"`
	Title  string        `json:"title"`
	XLabel string        `json:"x_label"`
	YLabel string        `json:"y_label"`
	Series []ChartSeries `json:"series"`
}

// ChartNames lists the charts in page order
var ChartNames = []string{
	"monthly", "seasonal", "weather", "weather-users", "daytype", "weekday",
	"segments", "temperature", "humidity", "volume",
}

// Chart builds the named chart from a rendered view model
func Chart(name string, vm *ViewModel) (*ChartSpec, error) {
	switch name {
	case "monthly":
		bars := make([]Bar, 0, len(vm.Monthly))
		for _, r := range vm.Monthly {
			bars = append(bars, Bar{Label: Label(monthLabels, r.Month), Value: r.Mean})
		}
		return single(name, "Average Rentals by Month", "Month", "Average rentals", bars), nil

	case "seasonal":
		bars := make([]Bar, 0, len(vm.Seasonal))
		for _, r := range vm.Seasonal {
			bars = append(bars, Bar{Label: Label(seasonLabels, r.Season), Value: r.Median})
		}
		return single(name, "Median Rentals by Season", "Season", "Rentals", bars), nil

	case "weather":
		bars := make([]Bar, 0, len(vm.Weather))
		for _, r := range vm.Weather {
			bars = append(bars, Bar{Label: Label(weatherLabels, r.Weather), Value: r.Mean})
		}
		return single(name, "Average Rentals by Weather Condition", "Weather", "Average rentals", bars), nil

	case "weather-users":
		casual := make([]Bar, 0, len(vm.Weather))
		registered := make([]Bar, 0, len(vm.Weather))
		for _, r := range vm.Weather {
			l := Label(weatherLabels, r.Weather)
			casual = append(casual, Bar{Label: l, Value: r.MeanCasual})
			registered = append(registered, Bar{Label: l, Value: r.MeanRegistered})
		}
		return &ChartSpec{
			Name:   name,
			Title:  "Average Rentals by Weather Condition (Casual vs Registered)",
			XLabel: "Weather",
			YLabel: "Average rentals",
			Series: []ChartSeries{
				{Name: "Casual", Bars: casual},
				{Name: "Registered", Bars: registered},
			},
		}, nil

	case "daytype":
		bars := make([]Bar, 0, len(vm.DayTypes))
		for _, r := range vm.DayTypes {
			bars = append(bars, Bar{Label: Label(dayTypeLabels, r.DayType), Value: r.Mean})
		}
		return single(name, "Average Rentals: Weekday vs Weekend", "Day type", "Average rentals", bars), nil

	case "weekday":
		bars := make([]Bar, 0, len(vm.Weekdays))
		for _, r := range vm.Weekdays {
			bars = append(bars, Bar{Label: Label(weekdayLabels, r.Weekday), Value: r.Mean})
		}
		return single(name, "Average Rentals per Day", "Day", "Average rentals", bars), nil

	case "segments":
		bars := make([]Bar, 0, len(vm.Segments))
		for _, r := range vm.Segments {
			bars = append(bars, Bar{Label: r.Segment, Value: float64(r.Days)})
		}
		return single(name, "Days per RFM Segment", "Segment", "Days", bars), nil

	case "temperature":
		return single(name, "Days by Temperature Category", "Temperature", "Days", countBars(vm.Temperature, nil)), nil

	case "humidity":
		return single(name, "Days by Humidity Category", "Humidity", "Days", countBars(vm.Humidity, nil)), nil

	case "volume":
		return single(name, "Days by Rental Volume Category", "Volume", "Days", countBars(vm.Volume, volumeLabels)), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

func single(name, title, x, y string, bars []Bar) *ChartSpec {
	return &ChartSpec{
		Name:   name,
		Title:  title,
		XLabel: x,
		YLabel: y,
		Series: []ChartSeries{{Name: title, Bars: bars}},
	}
}

func countBars(counts []aggregate.CategoryCount, labels map[string]string) []Bar {
	bars := make([]Bar, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, Bar{Label: Label(labels, c.Category), Value: float64(c.Days)})
	}
	return bars
}

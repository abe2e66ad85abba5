package dashboard

import (
	"errors"
	"testing"

	"github.com/chrissnell/bikedash/internal/types"
)

var records = []types.DailyRecord{
	{Year: 2011, Month: "january", Weekday: "sunday", Season: "winter", WeatherCondition: "clear", DayType: types.DayTypeWeekend,
		Casual: 40, Registered: 60, Count: 100, Segment: "Lost Days", TempCategory: "Cold", HumCategory: "Low Humidity", RentalVolumeCategory: "Low Rentals"},
	{Year: 2011, Month: "january", Weekday: "monday", Season: "winter", WeatherCondition: "mist", DayType: types.DayTypeWeekday,
		Casual: 50, Registered: 150, Count: 200, Segment: "Regular Days", TempCategory: "Cold", HumCategory: "High Humidity", RentalVolumeCategory: "Low Rentals"},
	{Year: 2012, Month: "june", Weekday: "saturday", Season: "summer", WeatherCondition: "clear", DayType: types.DayTypeWeekend,
		Casual: 1000, Registered: 5000, Count: 6000, Segment: "Best Days", TempCategory: "Hot", HumCategory: "Medium Humidity", RentalVolumeCategory: "High Rentals"},
}

func everything() types.FilterSelection {
	return types.NewFilterSelection([]int{2011, 2012}, []string{"winter", "summer"}, []string{"clear", "mist"}, types.DayTypeAll)
}

func TestRender(t *testing.T) {
	vm := Render(records, everything())

	if vm.Metrics.TotalDays != 3 || vm.Metrics.TotalRentals != 6300 || vm.Metrics.MeanPerDay != 2100 || vm.Metrics.MaxRentals != 6000 {
		t.Errorf("Metrics = %+v", vm.Metrics)
	}
	if vm.Monthly[0].Mean != 150 || vm.Monthly[5].Mean != 6000 {
		t.Errorf("january/june means = %v/%v", vm.Monthly[0].Mean, vm.Monthly[5].Mean)
	}
	if len(vm.Records) != 3 {
		t.Errorf("Records = %d", len(vm.Records))
	}
	if vm.Selection.DayType != "All" || len(vm.Selection.Years) != 2 {
		t.Errorf("Selection = %+v", vm.Selection)
	}
	if vm.Labels.Weekdays["sunday"] != "Sunday" {
		t.Errorf("sunday label = %q", vm.Labels.Weekdays["sunday"])
	}
}

func TestRenderWeekendExcludesWeekdays(t *testing.T) {
	sel := everything()
	sel.DayType = types.DayTypeChoiceWeekend

	vm := Render(records, sel)
	for _, r := range vm.Records {
		if r.DayType != types.DayTypeWeekend {
			t.Errorf("weekday record %+v passed a weekend selection", r)
		}
	}
	if vm.Metrics.TotalDays != 2 {
		t.Errorf("TotalDays = %d, want 2", vm.Metrics.TotalDays)
	}
}

func TestRenderEmptySelection(t *testing.T) {
	vm := Render(records, types.NewFilterSelection([]int{2011}, nil, []string{"clear"}, types.DayTypeAll))

	if vm.Metrics != (Metrics{}) {
		t.Errorf("Metrics = %+v, want zeros", vm.Metrics)
	}
	if len(vm.Monthly) != 12 || len(vm.Seasonal) != 4 || len(vm.Weather) != 4 {
		t.Errorf("empty selection lost groups: %d/%d/%d", len(vm.Monthly), len(vm.Seasonal), len(vm.Weather))
	}
	if vm.Records == nil || len(vm.Records) != 0 {
		t.Errorf("Records = %v, want empty", vm.Records)
	}
}

func TestRenderIsPure(t *testing.T) {
	input := append([]types.DailyRecord(nil), records...)
	first := Render(input, everything())
	second := Render(input, everything())

	if first.Metrics != second.Metrics {
		t.Errorf("renders differ: %+v vs %+v", first.Metrics, second.Metrics)
	}
	for i := range input {
		if input[i] != records[i] {
			t.Fatal("Render modified its input")
		}
	}
}

func TestChart(t *testing.T) {
	vm := Render(records, everything())

	for _, name := range ChartNames {
		spec, err := Chart(name, vm)
		if err != nil {
			t.Errorf("Chart(%s) error = %v", name, err)
			continue
		}
		if spec.Name != name || spec.Title == "" || len(spec.Series) == 0 {
			t.Errorf("Chart(%s) = %+v", name, spec)
		}
	}

	monthly, _ := Chart("monthly", vm)
	bars := monthly.Series[0].Bars
	if len(bars) != 12 || bars[0].Label != "Jan" || bars[0].Value != 150 || bars[4].Label != "Mei" {
		t.Errorf("monthly bars = %+v", bars)
	}

	users, _ := Chart("weather-users", vm)
	if len(users.Series) != 2 || users.Series[0].Name != "Casual" || users.Series[1].Name != "Registered" {
		t.Fatalf("weather-users series = %+v", users.Series)
	}
	if clear := users.Series[0].Bars[0]; clear.Label != "Clear" || clear.Value != 520 {
		t.Errorf("casual clear = %+v, want mean 520", clear)
	}
	if rain := users.Series[1].Bars[2]; rain.Label != "Light Rain" || rain.Value != 0 {
		t.Errorf("registered light rain = %+v", rain)
	}

	weekday, _ := Chart("weekday", vm)
	if last := weekday.Series[0].Bars[6]; last.Label != "Sunday" || last.Value != 100 {
		t.Errorf("sunday bar = %+v", last)
	}

	volume, _ := Chart("volume", vm)
	if first := volume.Series[0].Bars[0]; first.Label != "Low" || first.Value != 2 {
		t.Errorf("volume bar = %+v", first)
	}

	if _, err := Chart("pie", vm); !errors.Is(err, ErrUnknownChart) {
		t.Errorf("Chart(pie) error = %v, want ErrUnknownChart", err)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(monthLabels, "may"); got != "Mei" {
		t.Errorf("Label(may) = %q", got)
	}
	if got := Label(monthLabels, "smarch"); got != "smarch" {
		t.Errorf("unknown values should pass through, got %q", got)
	}
	if got := Label(nil, "Hot"); got != "Hot" {
		t.Errorf("Label(nil) = %q", got)
	}
}

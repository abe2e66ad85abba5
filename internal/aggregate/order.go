package aggregate

// Fixed display orders. Every aggregation emits exactly these groups, in this order,
// whatever the filtered data happens to contain.
var (
	MonthOrder = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}

	WeekdayOrder = []string{
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}

	SeasonOrder = []string{"spring", "summer", "fall", "winter"}

	WeatherOrder = []string{"clear", "mist", "light rain", "heavy rain"}

	DayTypeOrder = []string{"weekday", "weekend"}

	SegmentOrder = []string{"Best Days", "Good Days", "Regular Days", "Needs Attention", "Lost Days"}

	TempOrder = []string{"Cold", "Mild", "Warm", "Hot"}

	HumidityOrder = []string{"Low Humidity", "Medium Humidity", "High Humidity"}

	VolumeOrder = []string{"Low Rentals", "Medium Rentals", "High Rentals", "Very High Rentals"}
)

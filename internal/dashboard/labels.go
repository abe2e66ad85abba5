package dashboard

// Display labels used by the page. Grouping always happens on the raw dataset values;
// these maps only change what a chart axis or table header shows.
var (
	monthLabels = map[string]string{
		"january": "Jan", "february": "Feb", "march": "Mar", "april": "Apr",
		"may": "Mei", "june": "Jun", "july": "Jul", "august": "Aug",
		"september": "Sep", "october": "Oct", "november": "Nov", "december": "Dec",
	}

	seasonLabels = map[string]string{
		"spring": "Spring", "summer": "Summer", "fall": "Fall", "winter": "Winter",
	}

	weatherLabels = map[string]string{
		"clear": "Clear", "mist": "Mist", "light rain": "Light Rain", "heavy rain": "Heavy Rain",
	}

	dayTypeLabels = map[string]string{
		"weekday": "Weekday", "weekend": "Weekend",
	}

	weekdayLabels = map[string]string{
		"monday": "Monday", "tuesday": "Tuesday", "wednesday": "Wednesday", "thursday": "Thursday",
		"friday": "Friday", "saturday": "Saturday", "sunday": "Sunday",
	}

	volumeLabels = map[string]string{
		"Low Rentals": "Low", "Medium Rentals": "Medium", "High Rentals": "High", "Very High Rentals": "Very High",
	}
)

// Labels bundles every display map so a client can render tables without its own copy
type Labels struct {
	Months   map[string]string `json:"months"`
	Seasons  map[string]string `json:"seasons"`
	Weather  map[string]string `json:"weather"`
	DayTypes map[string]string `json:"day_types"`
	Weekdays map[string]string `json:"weekdays"`
	Volume   map[string]string `json:"volume"`
}

func defaultLabels() Labels {
	return Labels{
		Months:   monthLabels,
		Seasons:  seasonLabels,
		Weather:  weatherLabels,
		DayTypes: dayTypeLabels,
		Weekdays: weekdayLabels,
		Volume:   volumeLabels,
	}
}

// Label looks a value up in m, falling back to the value itself
func Label(m map[string]string, v string) string {
	if l, ok := m[v]; ok {
		return l
	}
	return v
}

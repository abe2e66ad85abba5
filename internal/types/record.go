// Package types holds the data types shared between the loader, the filter engine and the aggregators.
package types

import "time"

// DailyRecord is one row of the cleaned daily rental dataset. Records are immutable once loaded.
type DailyRecord struct {
	Date             time.Time `json:"dateday"`
	Year             int       `json:"year"`
	Month            string    `json:"month"`
	Weekday          string    `json:"weekday"`
	Season           string    `json:"season"`
	WeatherCondition string    `json:"weather_condition"`
	DayType          string    `json:"day_type"`

	Casual     int `json:"casual"`
	Registered int `json:"registered"`
	Count      int `json:"count"`

	// Pre-assigned bins, computed upstream
	TempCategory         string `json:"temp_category"`
	HumCategory          string `json:"hum_category"`
	RentalVolumeCategory string `json:"rental_volume_category"`

	// RFM fields, also computed upstream
	Segment string  `json:"segment"`
	Recency float64 `json:"recency"`
	RScore  float64 `json:"r_score"`
	FScore  float64 `json:"f_score"`
	MScore  float64 `json:"m_score"`
}

// Day type values as they appear in the dataset
const (
	DayTypeWeekday = "weekday"
	DayTypeWeekend = "weekend"
)

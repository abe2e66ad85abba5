// Package dataset reads the cleaned daily rental CSV into typed records and caches it for the process lifetime.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/chrissnell/bikedash/internal/types"
)

// Column names of the cleaned dataset
const (
	ColDate         = "dateday"
	ColYear         = "year"
	ColMonth        = "month"
	ColWeekday      = "weekday"
	ColSeason       = "season"
	ColWeather      = "weather_condition"
	ColDayType      = "day_type"
	ColCasual       = "casual"
	ColRegistered   = "registered"
	ColCount        = "count"
	ColTempCategory = "temp_category"
	ColHumCategory  = "hum_category"
	ColVolume       = "rental_volume_category"
	ColSegment      = "Segment"
	ColRecency      = "Recency"
	ColRScore       = "R_Score"
	ColFScore       = "F_Score"
	ColMScore       = "M_Score"
)

// RequiredColumns must all be present in the header. Extra columns are ignored.
var RequiredColumns = []string{
	ColDate, ColYear, ColMonth, ColWeekday, ColSeason, ColWeather, ColDayType,
	ColCasual, ColRegistered, ColCount, ColTempCategory, ColHumCategory, ColVolume,
	ColSegment, ColRecency, ColRScore, ColFScore, ColMScore,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Load reads and parses the dataset at path. Either every row loads or a *LoadError is returned.
func Load(path string) ([]types.DailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newLoadError(path, "file not found", err)
		}
		return nil, newLoadError(path, "file unreadable", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads dataset CSV from r. name is only used in error messages.
func Parse(r io.Reader, name string) ([]types.DailyRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newLoadError(name, "file unreadable", err)
	}

	// gota refuses a frame without rows, so a header-only file is handled here
	cr := csv.NewReader(bytes.NewReader(data))
	head, err := cr.Read()
	if err != nil {
		return nil, newLoadError(name, "malformed CSV", err)
	}
	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		if err := checkHeader(head); err != nil {
			return nil, newLoadError(name, err.Error(), nil)
		}
		return []types.DailyRecord{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, newLoadError(name, "malformed CSV", df.Err)
	}

	columns, err := readColumns(df)
	if err != nil {
		return nil, newLoadError(name, err.Error(), nil)
	}

	n := df.Nrow()
	records := make([]types.DailyRecord, 0, n)
	for i := 0; i < n; i++ {
		rec, err := parseRow(columns, i)
		if err != nil {
			// Row numbers are 1-based and count the header line
			return nil, newLoadError(name, fmt.Sprintf("bad value on line %d", i+2), err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// checkHeader reports the required columns missing from names
func checkHeader(names []string) error {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[strings.TrimSpace(name)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// readColumns checks the header and pulls every required column out of the frame as strings
func readColumns(df dataframe.DataFrame) (map[string][]string, error) {
	if err := checkHeader(df.Names()); err != nil {
		return nil, err
	}

	// Header names may carry stray whitespace; map trimmed name -> original name
	original := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		original[strings.TrimSpace(name)] = name
	}

	columns := make(map[string][]string, len(RequiredColumns))
	for _, col := range RequiredColumns {
		columns[col] = df.Col(original[col]).Records()
	}
	return columns, nil
}

func parseRow(cols map[string][]string, i int) (types.DailyRecord, error) {
	var rec types.DailyRecord
	var err error

	// Numbers and dates tolerate padding; category values are kept exactly as stored
	field := func(col string) string {
		return strings.TrimSpace(cols[col][i])
	}
	raw := func(col string) string {
		return cols[col][i]
	}

	if rec.Date, err = parseDate(field(ColDate)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColDate, err)
	}

	ints := []struct {
		col string
		dst *int
	}{
		{ColYear, &rec.Year},
		{ColCasual, &rec.Casual},
		{ColRegistered, &rec.Registered},
		{ColCount, &rec.Count},
	}
	for _, f := range ints {
		if *f.dst, err = parseInt(field(f.col)); err != nil {
			return rec, fmt.Errorf("%s: %w", f.col, err)
		}
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{ColRecency, &rec.Recency},
		{ColRScore, &rec.RScore},
		{ColFScore, &rec.FScore},
		{ColMScore, &rec.MScore},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(field(f.col), 64); err != nil {
			return rec, fmt.Errorf("%s: %w", f.col, err)
		}
		if math.IsNaN(*f.dst) || math.IsInf(*f.dst, 0) {
			return rec, fmt.Errorf("%s: not a finite number: %q", f.col, field(f.col))
		}
	}

	if rec.Casual < 0 || rec.Registered < 0 || rec.Count < 0 {
		return rec, fmt.Errorf("negative rental count")
	}
	if rec.Count != rec.Casual+rec.Registered {
		return rec, fmt.Errorf("count %d does not equal casual %d + registered %d", rec.Count, rec.Casual, rec.Registered)
	}

	rec.Month = raw(ColMonth)
	rec.Weekday = raw(ColWeekday)
	rec.Season = raw(ColSeason)
	rec.WeatherCondition = raw(ColWeather)
	rec.DayType = raw(ColDayType)
	rec.TempCategory = raw(ColTempCategory)
	rec.HumCategory = raw(ColHumCategory)
	rec.RentalVolumeCategory = raw(ColVolume)
	rec.Segment = raw(ColSegment)

	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseInt accepts plain integers and integral floats such as "2011.0"
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

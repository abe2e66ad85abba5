package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/bikedash/internal/types"
)

// group is one partition of the filtered records under a fixed category
type group struct {
	key     string
	records []types.DailyRecord
}

// groupBy partitions records by key, emitting one group per entry of order.
// Records whose key is not in order are left out.
func groupBy(records []types.DailyRecord, order []string, key func(types.DailyRecord) string) []group {
	index := make(map[string]int, len(order))
	groups := make([]group, len(order))
	for i, k := range order {
		index[k] = i
		groups[i].key = k
	}

	for _, r := range records {
		if i, ok := index[key(r)]; ok {
			groups[i].records = append(groups[i].records, r)
		}
	}
	return groups
}

// countStats summarizes the count column of a group. An empty group is all zeros.
type countStats struct {
	days int
	sum  int
	min  int
	max  int
	mean float64
}

func summarizeCounts(records []types.DailyRecord) countStats {
	s := countStats{days: len(records)}
	if len(records) == 0 {
		return s
	}

	s.min, s.max = records[0].Count, records[0].Count
	for _, r := range records {
		s.sum += r.Count
		if r.Count < s.min {
			s.min = r.Count
		}
		if r.Count > s.max {
			s.max = r.Count
		}
	}
	s.mean = RoundTo2(float64(s.sum) / float64(s.days))
	return s
}

// column extracts one numeric field from every record
func column(records []types.DailyRecord, field func(types.DailyRecord) float64) []float64 {
	xs := make([]float64, len(records))
	for i, r := range records {
		xs[i] = field(r)
	}
	return xs
}

// mean returns the rounded arithmetic mean of the finite values in xs, or 0 when there are none
func mean(xs []float64) float64 {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return 0
	}
	return RoundTo2(stat.Mean(finite, nil))
}

// quartiles returns the empirical 25th, 50th and 75th percentiles, or zeros for no values
func quartiles(xs []float64) (q1, median, q3 float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return RoundTo2(q1), RoundTo2(median), RoundTo2(q3)
}

func casual(r types.DailyRecord) float64     { return float64(r.Casual) }
func registered(r types.DailyRecord) float64 { return float64(r.Registered) }
func count(r types.DailyRecord) float64      { return float64(r.Count) }

// RoundTo2 rounds to 2 decimal places, the precision of every dashboard table
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

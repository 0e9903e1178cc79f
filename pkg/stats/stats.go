// Package stats provides the small descriptive statistics helpers that
// ship alongside the sync tooling.
package stats

import (
	"errors"
	"sort"
)

var ErrNoValues = errors.New("stats: no values")

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Median returns the middle value of values, or the mean of the two
// middle values for an even count. The input slice is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2] + sorted[n/2-1]) / 2, nil
	}
	return sorted[n/2], nil
}

// Mode returns the most frequent values, sorted ascending. When every
// distinct value occurs equally often there is no mode and ok is false.
func Mode(values []float64) (modes []float64, ok bool) {
	if len(values) == 0 {
		return nil, false
	}

	counts := make(map[float64]int, len(values))
	maxCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}

	for v, c := range counts {
		if c == maxCount {
			modes = append(modes, v)
		}
	}

	// Every distinct value tied: no value stands out.
	if len(counts) > 1 && len(modes) == len(counts) {
		return nil, false
	}

	sort.Float64s(modes)
	return modes, true
}

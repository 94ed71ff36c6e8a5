package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// mean is the plain arithmetic mean: any NaN in the input propagates to
// the result. This is the policy of the un-normalized aggregation path.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// nanMean averages the non-NaN values, treating NaN as missing rather
// than zero. All-NaN input yields NaN.
func nanMean(values []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// nanStd is the population standard deviation over the non-NaN values.
// A single valid value yields 0; no valid values yield NaN.
func nanStd(values []float64) float64 {
	m := nanMean(values)
	if math.IsNaN(m) {
		return math.NaN()
	}
	sumSq := 0.0
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			d := v - m
			sumSq += d * d
			n++
		}
	}
	return math.Sqrt(sumSq / float64(n))
}

// nanSum sums the non-NaN values.
func nanSum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// roundTo rounds to a fixed number of decimal places. Aggregates are
// rounded for display stability: 2 places on the raw path, 4 on the
// normalized paths.
func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

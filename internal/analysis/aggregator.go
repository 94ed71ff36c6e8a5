package analysis

import (
	"math"

	"github.com/user/qms_analyzer_go/internal/parser"
)

// Mean computes the per-channel arithmetic mean across all cycles. NaN
// values propagate: a channel with any missing reading averages to NaN.
// The normalized paths (NormalizedMean) instead skip NaN; the two
// policies are distinct on purpose and callers pick by function.
func Mean(s *parser.Spectrum) ([]float64, error) {
	matrix, err := channelMatrix(s)
	if err != nil {
		return nil, err
	}
	means := make([]float64, len(matrix))
	for ch, row := range matrix {
		means[ch] = mean(row)
	}
	return means, nil
}

// StdDev computes the per-channel population standard deviation across
// all cycles, skipping NaN readings, rounded to 2 decimal places.
func StdDev(s *parser.Spectrum) ([]float64, error) {
	matrix, err := channelMatrix(s)
	if err != nil {
		return nil, err
	}
	stds := make([]float64, len(matrix))
	for ch, row := range matrix {
		stds[ch] = roundTo(nanStd(row), 2)
	}
	return stds, nil
}

// MassIndex returns the channel offset within the first cycle whose
// normalized mass equals ref. The reserved basis code (101) is never a
// mass and is rejected before any scan; use ByTotalSum instead.
func MassIndex(s *parser.Spectrum, ref int) (int, error) {
	if ref == TotalSumCode {
		return 0, &ReservedCodeError{Code: ref}
	}
	length, err := DetectCycleLength(s)
	if err != nil {
		return 0, err
	}
	for i := 0; i < length; i++ {
		mass, err := ParseMassToken(s.Mass(i))
		if err != nil {
			return 0, err
		}
		if mass == float64(ref) {
			return i, nil
		}
	}
	return 0, &MassNotFoundError{Mass: ref}
}

// TotalIntensity sums every intensity in the table, skipping NaN.
func TotalIntensity(s *parser.Spectrum) (float64, error) {
	if s == nil || s.Len() == 0 {
		return 0, &parser.MissingColumnError{}
	}
	sum := 0.0
	for i := 0; i < s.Len(); i++ {
		v := s.Intensity(i)
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum, nil
}

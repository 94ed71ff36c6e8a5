package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/qms_analyzer_go/internal/parser"
)

// DetectCycleLength scans the mass column from the first row and returns
// the offset at which the first row's mass token repeats, i.e. the number
// of points per measurement cycle.
func DetectCycleLength(s *parser.Spectrum) (int, error) {
	if s == nil || s.Len() == 0 {
		return 0, &CycleDetectionError{}
	}
	first := s.Mass(0)
	for i := 1; i < s.Len(); i++ {
		if s.Mass(i) == first {
			return i, nil
		}
	}
	return 0, &CycleDetectionError{Rows: s.Len()}
}

// CycleCount returns the number of complete cycles in the table. A table
// length that is not a multiple of the cycle length is an error, never a
// silent truncation.
func CycleCount(s *parser.Spectrum) (int, error) {
	length, err := DetectCycleLength(s)
	if err != nil {
		return 0, err
	}
	if s.Len()%length != 0 {
		return 0, fmt.Errorf("table length %d is not a multiple of cycle length %d", s.Len(), length)
	}
	return s.Len() / length, nil
}

// ParseMassToken normalizes an instrument mass token and parses it as a
// real number. Interior spaces are stripped along with the ",00" decimal
// artifact of the European-formatted export; reference-mass lookup relies
// on this exact normalization.
func ParseMassToken(token string) (float64, error) {
	cleaned := strings.ReplaceAll(token, " ", "")
	cleaned = strings.TrimSuffix(cleaned, ",00")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid mass token %q: %w", token, err)
	}
	return value, nil
}

// Cycle extracts the n-th cycle (0-indexed) as two parallel slices: the
// masses in AMU and the corresponding SEM intensities.
func Cycle(s *parser.Spectrum, n int) (masses []float64, intensities []float64, err error) {
	length, err := DetectCycleLength(s)
	if err != nil {
		return nil, nil, err
	}
	start := n * length
	if n < 0 || start+length > s.Len() {
		return nil, nil, fmt.Errorf("cycle %d out of range for table of %d rows (cycle length %d)", n, s.Len(), length)
	}

	masses = make([]float64, length)
	intensities = make([]float64, length)
	for i := 0; i < length; i++ {
		mass, err := ParseMassToken(s.Mass(start + i))
		if err != nil {
			return nil, nil, err
		}
		masses[i] = mass
		intensities[i] = s.Intensity(start + i)
	}
	return masses, intensities, nil
}

// channelMatrix reshapes the intensity column into one row per mass
// channel, each row holding that channel's intensity across all cycles.
func channelMatrix(s *parser.Spectrum) ([][]float64, error) {
	length, err := DetectCycleLength(s)
	if err != nil {
		return nil, err
	}
	if s.Len()%length != 0 {
		return nil, fmt.Errorf("table length %d is not a multiple of cycle length %d", s.Len(), length)
	}
	count := s.Len() / length

	matrix := make([][]float64, length)
	for ch := range matrix {
		matrix[ch] = make([]float64, count)
		for c := 0; c < count; c++ {
			matrix[ch][c] = s.Intensity(c*length + ch)
		}
	}
	return matrix, nil
}

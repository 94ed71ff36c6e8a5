package analysis

import (
	"fmt"

	"github.com/user/qms_analyzer_go/internal/parser"
)

// TotalSumCode is the persisted basis selector meaning "normalize by the
// total intensity sum". It is a convention carried over from recorded
// configurations and must stay distinguishable from any real mass.
const TotalSumCode = 101

// NormalizationBasis selects the divisor applied to every channel's
// per-cycle intensity before averaging: either one reference mass's
// intensity, or the table's total intensity per cycle.
type NormalizationBasis struct {
	totalSum bool
	mass     int
}

// ByMass normalizes each cycle by that cycle's intensity at the given
// reference mass (e.g. 4 for helium).
func ByMass(mass int) NormalizationBasis {
	return NormalizationBasis{mass: mass}
}

// ByTotalSum normalizes every value by the table's total intensity
// divided by the cycle count, an estimate of one cycle's total.
func ByTotalSum() NormalizationBasis {
	return NormalizationBasis{totalSum: true}
}

// BasisFromCode maps a persisted integer selector to a basis: the
// reserved code selects total-sum normalization, anything else is a
// reference mass.
func BasisFromCode(code int) NormalizationBasis {
	if code == TotalSumCode {
		return ByTotalSum()
	}
	return ByMass(code)
}

func (b NormalizationBasis) String() string {
	if b.totalSum {
		return "total-sum"
	}
	return fmt.Sprintf("mass %d", b.mass)
}

// normalizedMatrix divides the channel matrix by the basis divisor. The
// percent variant below scales this same matrix by 100; there is no
// separate divisor computation.
func normalizedMatrix(s *parser.Spectrum, basis NormalizationBasis) ([][]float64, error) {
	matrix, err := channelMatrix(s)
	if err != nil {
		return nil, err
	}

	if basis.totalSum {
		total, err := TotalIntensity(s)
		if err != nil {
			return nil, err
		}
		count := len(matrix[0])
		divisor := total / float64(count)
		for ch := range matrix {
			for c := range matrix[ch] {
				matrix[ch][c] /= divisor
			}
		}
		return matrix, nil
	}

	refChannel, err := MassIndex(s, basis.mass)
	if err != nil {
		return nil, err
	}
	reference := append([]float64(nil), matrix[refChannel]...)
	for ch := range matrix {
		for c := range matrix[ch] {
			matrix[ch][c] /= reference[c]
		}
	}
	return matrix, nil
}

// NormalizedMean computes the per-channel mean of the normalized matrix,
// skipping NaN, rounded to 4 decimal places. With percent set the values
// are scaled by 100 before averaging, purely for readability.
func NormalizedMean(s *parser.Spectrum, basis NormalizationBasis, percent bool) ([]float64, error) {
	matrix, err := normalizedMatrix(s, basis)
	if err != nil {
		return nil, err
	}
	scale := 1.0
	if percent {
		scale = 100.0
	}
	means := make([]float64, len(matrix))
	for ch, row := range matrix {
		scaled := make([]float64, len(row))
		for i, v := range row {
			scaled[i] = v * scale
		}
		means[ch] = roundTo(nanMean(scaled), 4)
	}
	return means, nil
}

// NormalizedStdDev computes the per-channel population standard deviation
// of the normalized matrix, skipping NaN, rounded to 4 decimal places.
func NormalizedStdDev(s *parser.Spectrum, basis NormalizationBasis, percent bool) ([]float64, error) {
	matrix, err := normalizedMatrix(s, basis)
	if err != nil {
		return nil, err
	}
	scale := 1.0
	if percent {
		scale = 100.0
	}
	stds := make([]float64, len(matrix))
	for ch, row := range matrix {
		scaled := make([]float64, len(row))
		for i, v := range row {
			scaled[i] = v * scale
		}
		stds[ch] = roundTo(nanStd(scaled), 4)
	}
	return stds, nil
}

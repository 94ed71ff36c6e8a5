package analysis

import (
	"fmt"

	"github.com/user/qms_analyzer_go/internal/parser"
)

// Aggregate computes one table's per-channel means and uncertainty bands
// under the given configuration. The raw path uses the NaN-propagating
// mean and 2-decimal standard deviation; the normalized paths always skip
// NaN and round to 4 decimals.
func Aggregate(s *parser.Spectrum, cfg Config) (*AggregateResult, error) {
	masses, _, err := Cycle(s, 0)
	if err != nil {
		return nil, err
	}

	var means, stds []float64
	if cfg.Normalize {
		means, err = NormalizedMean(s, cfg.Basis, cfg.Percent)
		if err != nil {
			return nil, err
		}
		stds, err = NormalizedStdDev(s, cfg.Basis, cfg.Percent)
		if err != nil {
			return nil, err
		}
	} else {
		means, err = Mean(s)
		if err != nil {
			return nil, err
		}
		stds, err = StdDev(s)
		if err != nil {
			return nil, err
		}
	}

	ins := make([]float64, len(stds))
	for i, sd := range stds {
		ins[i] = 2 * sd
	}
	return &AggregateResult{Masses: masses, Means: means, Ins: ins}, nil
}

// Compare runs one analysis mode over an ON/OFF pair: aggregates both
// tables, takes the element-wise difference, and optionally applies the
// usability filter. The difference is always computed from the unfiltered
// means; filtering only zeroes the displayed mean/uncertainty series.
func Compare(on, off *parser.Spectrum, cfg Config) (*ComparisonResult, error) {
	aggOn, err := Aggregate(on, cfg)
	if err != nil {
		return nil, fmt.Errorf("aggregating ON table: %w", err)
	}
	aggOff, err := Aggregate(off, cfg)
	if err != nil {
		return nil, fmt.Errorf("aggregating OFF table: %w", err)
	}

	deltas, err := DifferenceByMass(aggOn.Masses, aggOn.Means, aggOff.Means)
	if err != nil {
		return nil, err
	}
	diff := make([]float64, len(deltas))
	for i, d := range deltas {
		diff[i] = d.Delta
	}

	res := &ComparisonResult{
		Masses:  aggOn.Masses,
		MeanOn:  aggOn.Means,
		MeanOff: aggOff.Means,
		InsOn:   aggOn.Ins,
		InsOff:  aggOff.Ins,
		Diff:    diff,
	}

	if cfg.FilterUsable {
		res.InsOn, res.MeanOn, err = FilterUsable(res.InsOn, res.MeanOn)
		if err != nil {
			return nil, err
		}
		res.InsOff, res.MeanOff, err = FilterUsable(res.InsOff, res.MeanOff)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// SignificantMasses applies the non-overlapping-confidence-band rule to a
// comparison and returns the masses whose ON value is significantly above
// OFF, along with the full per-channel mask.
func SignificantMasses(res *ComparisonResult) ([]float64, []bool, error) {
	mask, err := Significant(res.InsOff, res.InsOn, res.MeanOff, res.MeanOn)
	if err != nil {
		return nil, nil, err
	}
	var masses []float64
	for i, ok := range mask {
		if ok {
			masses = append(masses, res.Masses[i])
		}
	}
	return masses, mask, nil
}

package analysis

// Usable decides, per mass channel, whether the measured value stands out
// of its own uncertainty band: channel i is usable iff ins[i] <= mean[i].
// The uncertainty band is conventionally 2x the standard deviation.
func Usable(ins, mean []float64) ([]bool, error) {
	if len(ins) != len(mean) {
		return nil, &LengthMismatchError{LenA: len(ins), LenB: len(mean)}
	}
	mask := make([]bool, len(ins))
	for i := range ins {
		mask[i] = ins[i] <= mean[i]
	}
	return mask, nil
}

// FilterUsable applies the usability rule and returns copies of both
// series with unusable channels zeroed. Entries are zeroed, never
// removed, so the channel axis keeps its length for plotting and
// indexing. The operation is idempotent: zeroed entries stay usable
// (0 <= 0) on re-application.
func FilterUsable(ins, mean []float64) (filteredIns, filteredMean []float64, err error) {
	mask, err := Usable(ins, mean)
	if err != nil {
		return nil, nil, err
	}
	return applyMask(mask, ins), applyMask(mask, mean), nil
}

// Significant is the stricter three-way rule: channel i is usable iff the
// ON and OFF confidence bands do not overlap, i.e.
// (onMean - onIns) > (offMean + offIns).
func Significant(offIns, onIns, offMean, onMean []float64) ([]bool, error) {
	n := len(offIns)
	for _, other := range [][]float64{onIns, offMean, onMean} {
		if len(other) != n {
			return nil, &LengthMismatchError{LenA: n, LenB: len(other)}
		}
	}
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		mask[i] = (onMean[i]-onIns[i])-(offMean[i]+offIns[i]) > 0
	}
	return mask, nil
}

// ClampNonPositive returns a copy with every negative or zero uncertainty
// forced to 0, so error-bar rendering never shows a nonsensical negative
// band. This is a display-safety clamp, independent of the usability mask.
func ClampNonPositive(ins []float64) []float64 {
	out := append([]float64(nil), ins...)
	for i, v := range out {
		if v <= 0 {
			out[i] = 0
		}
	}
	return out
}

func applyMask(mask []bool, values []float64) []float64 {
	out := append([]float64(nil), values...)
	for i, keep := range mask {
		if !keep {
			out[i] = 0
		}
	}
	return out
}

package analysis

// Difference computes the element-wise ON - OFF difference over two
// equal-length, equal-order per-channel series. Mass alignment is the
// caller's responsibility: both series must originate from the same mass
// axis.
func Difference(onMeans, offMeans []float64) ([]float64, error) {
	if len(onMeans) != len(offMeans) {
		return nil, &LengthMismatchError{LenA: len(onMeans), LenB: len(offMeans)}
	}
	diff := make([]float64, len(onMeans))
	for i := range onMeans {
		diff[i] = onMeans[i] - offMeans[i]
	}
	return diff, nil
}

// MassDelta pairs a mass channel with its ON - OFF difference.
type MassDelta struct {
	Mass  float64
	Delta float64
}

// DifferenceByMass is Difference keyed by the shared mass axis.
func DifferenceByMass(masses, onMeans, offMeans []float64) ([]MassDelta, error) {
	if len(masses) != len(onMeans) {
		return nil, &LengthMismatchError{LenA: len(masses), LenB: len(onMeans)}
	}
	diff, err := Difference(onMeans, offMeans)
	if err != nil {
		return nil, err
	}
	deltas := make([]MassDelta, len(diff))
	for i := range diff {
		deltas[i] = MassDelta{Mass: masses[i], Delta: diff[i]}
	}
	return deltas, nil
}

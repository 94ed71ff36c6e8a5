package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	means, err := Mean(twoCycleSpectrum())
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if !slicesAlmostEqual(means, []float64{11, 19, 33}, tolerance) {
		t.Errorf("means = %v, want [11 19 33]", means)
	}
}

func TestMean_PropagatesNaN(t *testing.T) {
	s := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{
			{10, math.NaN()},
			{12, 18},
		},
	)
	means, err := Mean(s)
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if !almostEqual(means[0], 11, tolerance) {
		t.Errorf("means[0] = %v, want 11", means[0])
	}
	// The plain mean treats a missing reading as poisoning, not zero.
	if !math.IsNaN(means[1]) {
		t.Errorf("means[1] = %v, want NaN", means[1])
	}
}

func TestStdDev(t *testing.T) {
	stds, err := StdDev(twoCycleSpectrum())
	if err != nil {
		t.Fatalf("StdDev: %v", err)
	}
	// Population deviation per channel: {10,12}->1, {20,18}->1, {30,36}->3.
	if !slicesAlmostEqual(stds, []float64{1, 1, 3}, tolerance) {
		t.Errorf("stds = %v, want [1 1 3]", stds)
	}
}

func TestStdDev_SkipsNaN(t *testing.T) {
	s := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{
			{10, math.NaN()},
			{12, 18},
		},
	)
	stds, err := StdDev(s)
	if err != nil {
		t.Fatalf("StdDev: %v", err)
	}
	if !almostEqual(stds[0], 1, tolerance) {
		t.Errorf("stds[0] = %v, want 1", stds[0])
	}
	// One valid reading left: deviation 0, not NaN and not an error.
	if !almostEqual(stds[1], 0, tolerance) {
		t.Errorf("stds[1] = %v, want 0", stds[1])
	}
}

func TestStdDev_Rounding(t *testing.T) {
	s := makeSpectrum(
		[]string{"2,00"},
		[][]float64{{1}, {2}, {4}},
	)
	stds, err := StdDev(s)
	if err != nil {
		t.Fatalf("StdDev: %v", err)
	}
	// Population std of {1,2,4} is 1.24721..., rounded to 2 places.
	if !almostEqual(stds[0], 1.25, tolerance) {
		t.Errorf("stds[0] = %v, want 1.25", stds[0])
	}
}

func TestMassIndex(t *testing.T) {
	s := twoCycleSpectrum()
	tests := []struct {
		mass int
		want int
	}{
		{2, 0},
		{4, 1},
		{6, 2},
	}
	for _, tt := range tests {
		got, err := MassIndex(s, tt.mass)
		if err != nil {
			t.Errorf("MassIndex(%d): %v", tt.mass, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MassIndex(%d) = %d, want %d", tt.mass, got, tt.want)
		}
	}
}

func TestMassIndex_NotFound(t *testing.T) {
	_, err := MassIndex(twoCycleSpectrum(), 40)
	var notFound *MassNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected MassNotFoundError, got %v", err)
	}
	if notFound.Mass != 40 {
		t.Errorf("error mass = %d, want 40", notFound.Mass)
	}
}

func TestMassIndex_ReservedCode(t *testing.T) {
	// The total-sum selector must never be looked up as a mass, even on a
	// table that happens to contain a channel at 101 amu.
	s := makeSpectrum(
		[]string{"101,00", "4,00"},
		[][]float64{{1, 2}, {3, 4}},
	)
	_, err := MassIndex(s, TotalSumCode)
	var reserved *ReservedCodeError
	if !errors.As(err, &reserved) {
		t.Fatalf("expected ReservedCodeError, got %v", err)
	}
}

func TestTotalIntensity(t *testing.T) {
	total, err := TotalIntensity(twoCycleSpectrum())
	if err != nil {
		t.Fatalf("TotalIntensity: %v", err)
	}
	if !almostEqual(total, 126, tolerance) {
		t.Errorf("total = %v, want 126", total)
	}
}

func TestTotalIntensity_SkipsNaN(t *testing.T) {
	s := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{10, math.NaN()}, {12, 18}},
	)
	total, err := TotalIntensity(s)
	if err != nil {
		t.Fatalf("TotalIntensity: %v", err)
	}
	if !almostEqual(total, 40, tolerance) {
		t.Errorf("total = %v, want 40", total)
	}
}

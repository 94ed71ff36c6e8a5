package analysis

import (
	"testing"
)

func TestAggregate_Raw(t *testing.T) {
	agg, err := Aggregate(twoCycleSpectrum(), Config{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !slicesAlmostEqual(agg.Masses, []float64{2, 4, 6}, tolerance) {
		t.Errorf("masses = %v, want [2 4 6]", agg.Masses)
	}
	if !slicesAlmostEqual(agg.Means, []float64{11, 19, 33}, tolerance) {
		t.Errorf("means = %v, want [11 19 33]", agg.Means)
	}
	// Uncertainty band is twice the standard deviation.
	if !slicesAlmostEqual(agg.Ins, []float64{2, 2, 6}, tolerance) {
		t.Errorf("ins = %v, want [2 2 6]", agg.Ins)
	}
}

func TestAggregate_ChannelCountInvariant(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{Normalize: true, Basis: ByTotalSum()},
		{Normalize: true, Basis: ByMass(4), Percent: true},
	} {
		agg, err := Aggregate(twoCycleSpectrum(), cfg)
		if err != nil {
			t.Fatalf("Aggregate(%+v): %v", cfg, err)
		}
		if len(agg.Means) != 3 || len(agg.Ins) != 3 || len(agg.Masses) != 3 {
			t.Errorf("Aggregate(%+v): lengths %d/%d/%d, want 3 each",
				cfg, len(agg.Masses), len(agg.Means), len(agg.Ins))
		}
	}
}

func TestCompare_Raw(t *testing.T) {
	on := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{5, 10}, {5, 10}},
	)
	off := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{3, 12}, {3, 12}},
	)
	res, err := Compare(on, off, Config{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !slicesAlmostEqual(res.Diff, []float64{2, -2}, tolerance) {
		t.Errorf("diff = %v, want [2 -2]", res.Diff)
	}
	if !slicesAlmostEqual(res.MeanOn, []float64{5, 10}, tolerance) {
		t.Errorf("on means = %v, want [5 10]", res.MeanOn)
	}
	if !slicesAlmostEqual(res.MeanOff, []float64{3, 12}, tolerance) {
		t.Errorf("off means = %v, want [3 12]", res.MeanOff)
	}
}

func TestCompare_FilterZeroesUnusableChannels(t *testing.T) {
	// OFF channel 4 amu is noisy: its 2-sigma band exceeds its mean, so
	// the filtered series zero it while the difference, computed before
	// filtering, keeps the real value.
	on := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{100, 50}, {100, 50}},
	)
	off := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{90, 1}, {90, 9}},
	)
	res, err := Compare(on, off, Config{FilterUsable: true})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	// OFF 4 amu: mean 5, std 4, band 8 > 5 -> dropped.
	if res.MeanOff[1] != 0 || res.InsOff[1] != 0 {
		t.Errorf("unusable OFF channel not zeroed: mean %v, ins %v", res.MeanOff[1], res.InsOff[1])
	}
	if res.MeanOff[0] == 0 {
		t.Error("usable OFF channel was zeroed")
	}
	if !almostEqual(res.Diff[1], 45, tolerance) {
		t.Errorf("diff computed after filtering: got %v, want 45", res.Diff[1])
	}
}

func TestCompare_ChannelCountMismatch(t *testing.T) {
	on := makeSpectrum([]string{"2,00", "4,00"}, [][]float64{{5, 10}, {5, 10}})
	off := makeSpectrum([]string{"2,00", "4,00", "6,00"}, [][]float64{{3, 12, 1}, {3, 12, 1}})
	if _, err := Compare(on, off, Config{}); err == nil {
		t.Error("expected error for differing channel counts")
	}
}

func TestSignificantMasses(t *testing.T) {
	on := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{100, 10}, {102, 12}},
	)
	off := makeSpectrum(
		[]string{"2,00", "4,00"},
		[][]float64{{10, 10}, {12, 12}},
	)
	res, err := Compare(on, off, Config{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	masses, mask, err := SignificantMasses(res)
	if err != nil {
		t.Fatalf("SignificantMasses: %v", err)
	}
	if len(masses) != 1 || !almostEqual(masses[0], 2, tolerance) {
		t.Errorf("significant masses = %v, want [2]", masses)
	}
	if !mask[0] || mask[1] {
		t.Errorf("mask = %v, want [true false]", mask)
	}
}

func TestConfigForMode(t *testing.T) {
	basis := ByTotalSum()
	tests := []struct {
		mode         Mode
		normalize    bool
		percent      bool
		filterUsable bool
	}{
		{ModeNormalizedPercentFiltered, true, true, true},
		{ModeNormalizedFiltered, true, false, true},
		{ModeRawFiltered, false, false, true},
		{ModeNormalizedPercent, true, true, false},
		{ModeNormalized, true, false, false},
		{ModeRaw, false, false, false},
	}
	for _, tt := range tests {
		cfg := ConfigForMode(tt.mode, basis)
		if cfg.Normalize != tt.normalize || cfg.Percent != tt.percent || cfg.FilterUsable != tt.filterUsable {
			t.Errorf("ConfigForMode(%s) = %+v", tt.mode.Slug(), cfg)
		}
	}
}

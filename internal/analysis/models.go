package analysis

// Mode names the six analysis variants run over an ON/OFF pair.
type Mode int

const (
	ModeNormalizedPercentFiltered Mode = iota + 1
	ModeNormalizedFiltered
	ModeRawFiltered
	ModeNormalizedPercent
	ModeNormalized
	ModeRaw
)

// AllModes lists every mode in batch execution order.
var AllModes = []Mode{
	ModeNormalizedPercentFiltered,
	ModeNormalizedFiltered,
	ModeRawFiltered,
	ModeNormalizedPercent,
	ModeNormalized,
	ModeRaw,
}

// Slug is the file-name suffix used for this mode's output artifacts.
func (m Mode) Slug() string {
	switch m {
	case ModeNormalizedPercentFiltered:
		return "norm-percent-filtered"
	case ModeNormalizedFiltered:
		return "norm-filtered"
	case ModeRawFiltered:
		return "raw-filtered"
	case ModeNormalizedPercent:
		return "norm-percent"
	case ModeNormalized:
		return "norm"
	case ModeRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Config carries the analysis parameters for one mode. It is threaded
// explicitly through every call; there is no module-level setting.
type Config struct {
	Basis        NormalizationBasis
	Normalize    bool
	Percent      bool
	FilterUsable bool
}

// ConfigForMode builds the Config matching one of the six modes, using
// the given basis for the normalized variants.
func ConfigForMode(m Mode, basis NormalizationBasis) Config {
	switch m {
	case ModeNormalizedPercentFiltered:
		return Config{Basis: basis, Normalize: true, Percent: true, FilterUsable: true}
	case ModeNormalizedFiltered:
		return Config{Basis: basis, Normalize: true, FilterUsable: true}
	case ModeRawFiltered:
		return Config{FilterUsable: true}
	case ModeNormalizedPercent:
		return Config{Basis: basis, Normalize: true, Percent: true}
	case ModeNormalized:
		return Config{Basis: basis, Normalize: true}
	default:
		return Config{}
	}
}

// AggregateResult holds one table's per-channel summary: the mass axis,
// the mean intensity and the uncertainty band (2x standard deviation).
// Produced fresh per call and never mutated afterwards.
type AggregateResult struct {
	Masses []float64
	Means  []float64
	Ins    []float64
}

// ComparisonResult combines the ON and OFF aggregates of one measurement
// folder with their element-wise difference.
type ComparisonResult struct {
	Masses  []float64
	MeanOn  []float64
	MeanOff []float64
	InsOn   []float64
	InsOff  []float64
	Diff    []float64
}

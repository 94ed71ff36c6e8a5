package parser

import "fmt"

// HeaderLines is the fixed instrument header length of a QMS export.
// These lines carry acquisition settings and are skipped before the
// column header row.
const HeaderLines = 41

const (
	ColumnCycle     = "Cycle"
	ColumnIntensity = "SEM c/s"

	// Positional fallbacks for the mass and intensity columns when they
	// are not addressed by name, matching the instrument export layout.
	massColumn      = 3
	intensityColumn = 4
)

// Point is one measured data point: a cycle index, the raw mass token as
// written by the instrument (European decimal formatting preserved, e.g.
// "4,00"), and the SEM intensity in counts per second.
type Point struct {
	Cycle     int
	Mass      string
	Intensity float64
}

// Spectrum is an immutable, ordered view over a loaded measurement table.
// Rows of the same cycle are contiguous and every cycle repeats the same
// mass order.
type Spectrum struct {
	points   []Point
	warnings []string
}

// NewSpectrum builds a Spectrum from already-structured points. The
// slice is copied; the returned table never changes afterwards.
func NewSpectrum(points []Point) *Spectrum {
	return &Spectrum{points: append([]Point(nil), points...)}
}

// Len returns the number of data points.
func (s *Spectrum) Len() int { return len(s.points) }

// Mass returns the raw mass token of point i.
func (s *Spectrum) Mass(i int) string { return s.points[i].Mass }

// Intensity returns the intensity of point i.
func (s *Spectrum) Intensity(i int) float64 { return s.points[i].Intensity }

// CycleIndex returns the instrument cycle index of point i.
func (s *Spectrum) CycleIndex(i int) int { return s.points[i].Cycle }

// Warnings returns non-fatal issues collected while loading.
func (s *Spectrum) Warnings() []string { return s.warnings }

// MaxCycle returns the highest cycle index present in the table.
func (s *Spectrum) MaxCycle() int {
	max := 0
	for _, p := range s.points {
		if p.Cycle > max {
			max = p.Cycle
		}
	}
	return max
}

// LastCycles returns the sub-table restricted to the last n cycles, i.e.
// all points with Cycle > MaxCycle()-n. The receiver is not modified.
func (s *Spectrum) LastCycles(n int) *Spectrum {
	cutoff := s.MaxCycle() - n
	kept := make([]Point, 0, len(s.points))
	for _, p := range s.points {
		if p.Cycle > cutoff {
			kept = append(kept, p)
		}
	}
	return &Spectrum{points: kept, warnings: s.warnings}
}

// MissingColumnError reports a required column absent from the header row,
// or a table with no data rows at all (Column is empty in that case).
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Column == "" {
		return "measurement table is empty"
	}
	return fmt.Sprintf("required column %q not found in header", e.Column)
}

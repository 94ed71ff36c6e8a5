package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
)

// buildExport assembles a synthetic QMS export: the fixed instrument
// header, the column header row, and the given data rows.
func buildExport(headerRow string, rows []string) string {
	var b strings.Builder
	for i := 0; i < HeaderLines; i++ {
		b.WriteString("Instrument setting\r\n")
	}
	b.WriteString(headerRow + "\r\n")
	for _, row := range rows {
		b.WriteString(row + "\r\n")
	}
	return b.String()
}

const defaultHeader = "Time;Time Relative;RF;mass amu;SEM c/s;Cycle;State"

// Data columns follow the instrument layout: mass at position 3,
// intensity at position 4, cycle addressed by name.
func dataRow(cycle int, mass string, intensity string) string {
	return strings.Join([]string{
		"12:00:00", "0.5", "1.2", mass, intensity, strconv.Itoa(cycle), "ok",
	}, ";")
}

func TestParseSpectrum(t *testing.T) {
	content := buildExport(defaultHeader, []string{
		dataRow(1, "2,00", "10"),
		dataRow(1, "4,00", "20"),
		dataRow(2, "2,00", "12"),
		dataRow(2, "4,00", "18"),
	})
	spec, err := ParseSpectrum(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSpectrum: %v", err)
	}
	if spec.Len() != 4 {
		t.Fatalf("Len = %d, want 4", spec.Len())
	}
	if spec.Mass(0) != "2,00" {
		t.Errorf("Mass(0) = %q, want \"2,00\"", spec.Mass(0))
	}
	if spec.Intensity(3) != 18 {
		t.Errorf("Intensity(3) = %v, want 18", spec.Intensity(3))
	}
	if spec.CycleIndex(2) != 2 {
		t.Errorf("CycleIndex(2) = %d, want 2", spec.CycleIndex(2))
	}
	if len(spec.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", spec.Warnings())
	}
}

func TestParseSpectrum_MissingCycleColumn(t *testing.T) {
	content := buildExport("Time;Time Relative;RF;mass amu;SEM c/s;State", []string{
		dataRow(1, "2,00", "10"),
	})
	_, err := ParseSpectrum(strings.NewReader(content))
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != ColumnCycle {
		t.Errorf("missing column = %q, want %q", missing.Column, ColumnCycle)
	}
}

func TestParseSpectrum_MissingIntensityColumn(t *testing.T) {
	content := buildExport("Time;Time Relative;RF;mass amu;Faraday;Cycle", []string{
		dataRow(1, "2,00", "10"),
	})
	_, err := ParseSpectrum(strings.NewReader(content))
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != ColumnIntensity {
		t.Errorf("missing column = %q, want %q", missing.Column, ColumnIntensity)
	}
}

func TestParseSpectrum_EmptyTable(t *testing.T) {
	content := buildExport(defaultHeader, nil)
	_, err := ParseSpectrum(strings.NewReader(content))
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError for empty table, got %v", err)
	}
	if missing.Column != "" {
		t.Errorf("empty-table error names column %q", missing.Column)
	}
}

func TestParseSpectrum_TruncatedHeader(t *testing.T) {
	_, err := ParseSpectrum(strings.NewReader("just one line\n"))
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError for truncated file, got %v", err)
	}
}

func TestParseSpectrum_CoercesBadIntensityToNaN(t *testing.T) {
	content := buildExport(defaultHeader, []string{
		dataRow(1, "2,00", "10"),
		dataRow(1, "4,00", "overload"),
		dataRow(2, "2,00", "12"),
		dataRow(2, "4,00", "18"),
	})
	spec, err := ParseSpectrum(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSpectrum: %v", err)
	}
	if !math.IsNaN(spec.Intensity(1)) {
		t.Errorf("Intensity(1) = %v, want NaN", spec.Intensity(1))
	}
}

func TestParseSpectrum_SkipsShortRows(t *testing.T) {
	content := buildExport(defaultHeader, []string{
		dataRow(1, "2,00", "10"),
		"short;row",
		dataRow(1, "4,00", "20"),
	})
	spec, err := ParseSpectrum(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSpectrum: %v", err)
	}
	if spec.Len() != 2 {
		t.Errorf("Len = %d, want 2", spec.Len())
	}
	if len(spec.Warnings()) != 1 {
		t.Errorf("warnings = %v, want one entry", spec.Warnings())
	}
}

func TestLastCycles(t *testing.T) {
	var rows []string
	for cycle := 1; cycle <= 8; cycle++ {
		rows = append(rows, dataRow(cycle, "2,00", "10"), dataRow(cycle, "4,00", "20"))
	}
	spec, err := ParseSpectrum(strings.NewReader(buildExport(defaultHeader, rows)))
	if err != nil {
		t.Fatalf("ParseSpectrum: %v", err)
	}

	windowed := spec.LastCycles(5)
	if windowed.Len() != 10 {
		t.Errorf("windowed Len = %d, want 10", windowed.Len())
	}
	// Cycle > 8-5: cycles 4..8 stay.
	if windowed.CycleIndex(0) != 4 {
		t.Errorf("first kept cycle = %d, want 4", windowed.CycleIndex(0))
	}
	if spec.Len() != 16 {
		t.Errorf("windowing mutated the source table: Len = %d", spec.Len())
	}
}

func TestLastCycles_WindowLargerThanTable(t *testing.T) {
	rows := []string{
		dataRow(1, "2,00", "10"),
		dataRow(2, "2,00", "12"),
	}
	spec, err := ParseSpectrum(strings.NewReader(buildExport(defaultHeader, rows)))
	if err != nil {
		t.Fatalf("ParseSpectrum: %v", err)
	}
	if got := spec.LastCycles(15).Len(); got != 2 {
		t.Errorf("LastCycles(15) Len = %d, want 2", got)
	}
}

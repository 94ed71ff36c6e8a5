package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadSpectrumFile opens a QMS export and parses it into a Spectrum.
func LoadSpectrumFile(path string) (*Spectrum, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spectrum file: %w", err)
	}
	defer file.Close()

	spec, err := ParseSpectrum(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return spec, nil
}

// ParseSpectrum reads a semicolon-separated QMS table: a fixed 41-line
// instrument header, then a column header row, then one row per point.
// The Cycle and "SEM c/s" columns are validated by name up front; the mass
// and intensity values themselves are read positionally (columns 3 and 4).
// Intensity values that fail to parse are coerced to NaN rather than
// rejected, so downstream statistics see them as missing.
func ParseSpectrum(r io.Reader) (*Spectrum, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < HeaderLines; i++ {
		if !scanner.Scan() {
			return nil, &MissingColumnError{}
		}
	}

	if !scanner.Scan() {
		return nil, &MissingColumnError{}
	}
	header := splitRow(scanner.Text())

	cycleIdx := -1
	intensityIdx := -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnCycle:
			cycleIdx = i
		case ColumnIntensity:
			intensityIdx = i
		}
	}
	if cycleIdx < 0 {
		return nil, &MissingColumnError{Column: ColumnCycle}
	}
	if intensityIdx < 0 {
		return nil, &MissingColumnError{Column: ColumnIntensity}
	}

	var points []Point
	var warnings []string
	lineNo := HeaderLines + 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitRow(line)
		if len(fields) <= intensityColumn || len(fields) <= cycleIdx {
			warnings = append(warnings, fmt.Sprintf("line %d: expected at least %d columns, got %d; row skipped", lineNo, intensityColumn+1, len(fields)))
			continue
		}

		cycle, err := strconv.Atoi(strings.TrimSpace(fields[cycleIdx]))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: bad cycle index %q; row skipped", lineNo, fields[cycleIdx]))
			continue
		}

		intensity, err := strconv.ParseFloat(strings.TrimSpace(fields[intensityColumn]), 64)
		if err != nil {
			intensity = math.NaN()
		}

		points = append(points, Point{
			Cycle:     cycle,
			Mass:      strings.TrimSpace(fields[massColumn]),
			Intensity: intensity,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if len(points) == 0 {
		return nil, &MissingColumnError{}
	}

	return &Spectrum{points: points, warnings: warnings}, nil
}

func splitRow(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r"), ";")
}

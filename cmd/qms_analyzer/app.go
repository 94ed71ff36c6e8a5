package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/qms_analyzer_go/internal/analysis"
	"github.com/user/qms_analyzer_go/internal/parser"
	"github.com/user/qms_analyzer_go/internal/report"
)

// App holds the run parameters shared by every analyzed folder.
type App struct {
	Basis    analysis.NormalizationBasis
	Cycles   int
	Mode     int // 0 = all six modes
	ThreeWay bool
	Filter   bool // three-way only; the six standard modes encode it
	WritePDF bool
	OutDir   string
}

// RunBatch walks root/*/* and analyzes every leaf folder. Failures are
// isolated per folder and per mode: they are logged and the batch moves
// on, it never aborts.
func (a *App) RunBatch(root string) error {
	groups, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read batch root: %w", err)
	}

	processed := 0
	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		groupPath := filepath.Join(root, group.Name())
		subs, err := os.ReadDir(groupPath)
		if err != nil {
			log.Printf("skipping %s: %v", groupPath, err)
			continue
		}
		for _, sub := range subs {
			if !sub.IsDir() {
				continue
			}
			folder := filepath.Join(groupPath, sub.Name())
			if err := a.RunFolder(folder, group.Name()); err != nil {
				log.Printf("folder %s failed: %v", folder, err)
				continue
			}
			processed++
		}
	}
	log.Printf("batch complete: %d folders processed", processed)
	return nil
}

// RunFolder analyzes one measurement folder: discovers the condition
// files, loads and windows the tables, and runs the requested modes.
func (a *App) RunFolder(dir, label string) error {
	files, err := parser.FindConditionFiles(dir)
	if err != nil {
		return err
	}
	log.Printf("%s: ON %s, OFF %s, isolated %s", dir, files.On, files.Off, files.Isolated)

	onPath, err := requireMatch(files.On, "ON")
	if err != nil {
		return err
	}
	offPath, err := requireMatch(files.Off, "OFF")
	if err != nil {
		return err
	}

	on, err := a.loadWindowed(onPath)
	if err != nil {
		return err
	}
	off, err := a.loadWindowed(offPath)
	if err != nil {
		return err
	}

	if a.ThreeWay {
		return a.runThreeWay(dir, label, on, off, files.Isolated)
	}

	modes := analysis.AllModes
	if a.Mode != 0 {
		modes = []analysis.Mode{analysis.Mode(a.Mode)}
	}
	var firstErr error
	for _, mode := range modes {
		if err := a.runMode(dir, label, mode, on, off, filepath.Base(onPath)); err != nil {
			log.Printf("mode %s failed in %s: %v", mode.Slug(), dir, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
	}
	if a.Mode != 0 {
		// A single requested mode surfaces its failure to the caller;
		// the all-modes run reports success if any mode completed.
		return firstErr
	}
	return nil
}

func (a *App) runMode(dir, label string, mode analysis.Mode, on, off *parser.Spectrum, sourceName string) error {
	cfg := analysis.ConfigForMode(mode, a.Basis)
	res, err := analysis.Compare(on, off, cfg)
	if err != nil {
		return err
	}

	base := a.outputBase(dir, label, mode.Slug(), sourceName)

	comparison, err := report.CreateComparisonPlot(res, nil, "Mean mass spectrometry")
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".png", comparison, 0o644); err != nil {
		return fmt.Errorf("failed to write comparison plot: %w", err)
	}

	difference, err := report.CreateDifferencePlot(res, "Mean mass spectrometry")
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+"-diff.png", difference, 0o644); err != nil {
		return fmt.Errorf("failed to write difference plot: %w", err)
	}
	log.Printf("mode %s: plots written to %s", mode.Slug(), base+".png")

	if !a.WritePDF {
		return nil
	}
	_, significant, err := analysis.SignificantMasses(res)
	if err != nil {
		return err
	}
	params := report.ReportParams{
		FolderName: filepath.Base(dir),
		Mode:       mode.Slug(),
		Basis:      a.Basis.String(),
		Cycles:     a.Cycles,
	}
	plots := map[string][]byte{"comparison": comparison, "difference": difference}
	if err := report.BuildPDFReport(base+".pdf", params, res, significant, plots); err != nil {
		return fmt.Errorf("failed to build PDF report: %w", err)
	}
	log.Printf("mode %s: report written to %s", mode.Slug(), base+".pdf")
	return nil
}

// threeWayConfig builds the raw-aggregation config for the three-way
// analysis. -filter decides whether the usability filter zeroes the
// displayed ON/OFF series; the difference stays unfiltered either way.
func (a *App) threeWayConfig() analysis.Config {
	return analysis.Config{FilterUsable: a.Filter}
}

func (a *App) threeWaySlug() string {
	if a.Filter {
		return "threeway-filtered"
	}
	return "threeway"
}

// runThreeWay is the ON/OFF/isolated variant: raw aggregation, the
// isolated spectrum drawn as a reference band, and the strict
// non-overlapping-confidence-band significance test.
func (a *App) runThreeWay(dir, label string, on, off *parser.Spectrum, isoMatch parser.Match) error {
	res, err := analysis.Compare(on, off, a.threeWayConfig())
	if err != nil {
		return err
	}

	var isolated []float64
	if isoMatch.State == parser.MatchFound {
		iso, err := a.loadWindowed(isoMatch.Path)
		if err != nil {
			log.Printf("isolated file unusable, continuing without it: %v", err)
		} else if isolated, err = analysis.Mean(iso); err != nil {
			log.Printf("isolated aggregation failed, continuing without it: %v", err)
			isolated = nil
		}
	}

	masses, significant, err := analysis.SignificantMasses(res)
	if err != nil {
		return err
	}
	if len(masses) == 0 {
		log.Printf("%s: no mass shows significant ON production", dir)
	} else {
		labels := make([]string, len(masses))
		for i, m := range masses {
			labels[i] = fmt.Sprintf("%d", int(m))
		}
		log.Printf("%s: significant ON production at amu %s", dir, strings.Join(labels, ", "))
	}

	base := a.outputBase(dir, label, a.threeWaySlug(), "")
	comparison, err := report.CreateComparisonPlot(res, isolated, "Mean mass spectrometry")
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".png", comparison, 0o644); err != nil {
		return fmt.Errorf("failed to write comparison plot: %w", err)
	}
	difference, err := report.CreateDifferencePlot(res, "Mean mass spectrometry")
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+"-diff.png", difference, 0o644); err != nil {
		return fmt.Errorf("failed to write difference plot: %w", err)
	}

	if !a.WritePDF {
		return nil
	}
	params := report.ReportParams{
		FolderName: filepath.Base(dir),
		Mode:       a.threeWaySlug(),
		Basis:      "none (raw)",
		Cycles:     a.Cycles,
	}
	plots := map[string][]byte{"comparison": comparison, "difference": difference}
	return report.BuildPDFReport(base+".pdf", params, res, significant, plots)
}

func (a *App) loadWindowed(path string) (*parser.Spectrum, error) {
	spec, err := parser.LoadSpectrumFile(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range spec.Warnings() {
		log.Printf("%s: %s", filepath.Base(path), warning)
	}
	return spec.LastCycles(a.Cycles), nil
}

func (a *App) outputBase(dir, label, slug, sourceName string) string {
	out := a.OutDir
	if out == "" {
		out = dir
	}
	name := filepath.Base(dir)
	if label != "" {
		name = label + "-" + name
	}
	if sourceName != "" {
		name += "-" + strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	}
	return filepath.Join(out, name+"-"+slug)
}

func requireMatch(m parser.Match, role string) (string, error) {
	switch m.State {
	case parser.MatchFound:
		return m.Path, nil
	case parser.MatchAmbiguous:
		return "", fmt.Errorf("multiple %s files match: %s", role, strings.Join(m.Candidates, ", "))
	default:
		return "", fmt.Errorf("no %s file found", role)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/user/qms_analyzer_go/internal/analysis"
)

const (
	defaultBatchCycles       = 5
	defaultInteractiveCycles = 15
)

func main() {
	dir := flag.String("dir", "", "folder containing one ON and one OFF csv export")
	batch := flag.String("batch", "", "root folder to process recursively (root/*/*)")
	normCode := flag.Int("norm", analysis.TotalSumCode,
		"normalization selector: a reference mass in amu, or 101 for total-sum")
	cycles := flag.Int("cycles", 0,
		"keep only the last N cycles (0 = default: 15 single-folder, 5 batch)")
	mode := flag.Int("mode", 0, "run a single analysis mode 1-6 (0 = all)")
	threeWay := flag.Bool("threeway", false,
		"three-way analysis: ON/OFF/isolated with significance test")
	filter := flag.Bool("filter", false,
		"three-way analysis: zero ON/OFF channels whose uncertainty band reaches the mean")
	pdfOut := flag.Bool("pdf", false, "also write a per-mode PDF report")
	outDir := flag.String("out", "", "output folder for plots and reports (default: the data folder)")
	flag.Parse()

	if (*dir == "") == (*batch == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -dir or -batch is required")
		flag.Usage()
		os.Exit(2)
	}
	if *mode < 0 || *mode > len(analysis.AllModes) {
		log.Fatalf("invalid -mode %d: must be 0-%d", *mode, len(analysis.AllModes))
	}

	if *filter && !*threeWay {
		log.Fatal("-filter applies to -threeway only; modes 1-6 select filtering by mode")
	}

	app := &App{
		Basis:    analysis.BasisFromCode(*normCode),
		Mode:     *mode,
		ThreeWay: *threeWay,
		Filter:   *filter,
		WritePDF: *pdfOut,
		OutDir:   *outDir,
	}

	if *batch != "" {
		app.Cycles = *cycles
		if app.Cycles == 0 {
			app.Cycles = defaultBatchCycles
		}
		if err := app.RunBatch(*batch); err != nil {
			log.Fatalf("batch run failed: %v", err)
		}
		return
	}

	app.Cycles = *cycles
	if app.Cycles == 0 {
		app.Cycles = defaultInteractiveCycles
	}
	if err := app.RunFolder(*dir, ""); err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
}

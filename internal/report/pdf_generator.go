package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/user/qms_analyzer_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and flowing-layout state.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageHeight:  pdfPageHeightLandscape - (2 * pdfMargin),
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellHighlight"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func (s *pdfStyler) writeTable(headers []string, relWidths []float64, rows [][]string, highlightCol int) {
	widths := make([]float64, len(relWidths))
	for i, rel := range relWidths {
		widths[i] = rel * pdfContentWidth
	}

	s.checkAddPage(s.lineHeight * float64(len(rows)+1))
	sY := s.currentY
	sX := pdfMargin
	s.applyStyle("tableHeader")
	for i, header := range headers {
		s.pdf.SetXY(sX, sY)
		s.pdf.CellFormat(widths[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
		sX += widths[i]
	}
	s.currentY = sY + s.lineHeight

	for _, row := range rows {
		s.checkAddPage(s.lineHeight)
		sY = s.currentY
		sX = pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(sX, sY)
			if i == highlightCol {
				s.applyStyle("tableCellHighlight")
			} else {
				s.applyStyle("tableCell")
			}
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			sX += widths[i]
		}
		s.currentY = sY + s.lineHeight
	}
}

// ReportParams describes one analyzed folder for the PDF header.
type ReportParams struct {
	FolderName string
	Mode       string
	Basis      string
	Cycles     int
}

// BuildPDFReport writes the per-folder summary PDF: run parameters, the
// table of significantly produced masses, and the embedded plots.
func BuildPDFReport(filepath string, params ReportParams, res *analysis.ComparisonResult,
	significant []bool, plotImages map[string][]byte) error {

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph(fmt.Sprintf("QMS Plasma ON/OFF Comparison - %s", params.FolderName), "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("Mode: %s    Normalization: %s    Cycles kept: last %d",
		params.Mode, params.Basis, params.Cycles), "normal", "L")
	styler.addSpacer(5)

	if res == nil || len(res.Masses) == 0 {
		styler.writeParagraph("No comparison results to display.", "normal", "L")
		return pdf.OutputFileAndClose(filepath)
	}

	styler.writeParagraph("Masses with significant ON production (non-overlapping confidence bands)", "h2", "L")
	var rows [][]string
	for i, mass := range res.Masses {
		if significant == nil || i >= len(significant) || !significant[i] {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", int(mass)),
			formatIntensity(res.MeanOn[i]),
			formatIntensity(res.MeanOff[i]),
			formatIntensity(res.Diff[i]),
		})
	}
	if len(rows) > 0 {
		styler.writeTable(
			[]string{"Mass (amu)", "ON mean", "OFF mean", "ON - OFF"},
			[]float64{0.25, 0.25, 0.25, 0.25},
			rows, 3)
	} else {
		styler.writeParagraph("No mass shows a significant ON/OFF separation.", "normal", "L")
	}
	styler.addSpacer(5)

	imgWidth := pdfContentWidth * 0.9
	imgHeight := imgWidth * (480.0 / 900.0)
	plotDefs := []struct {
		Key     string
		Caption string
	}{
		{"comparison", "Mean intensities per mass, plasma ON vs OFF (error bars: 2 sigma)"},
		{"difference", "ON - OFF intensity difference per mass"},
	}
	for _, def := range plotDefs {
		pdf.AddPage()
		styler.currentY = styler.contentTopY
		if imgBytes, ok := plotImages[def.Key]; ok && len(imgBytes) > 0 {
			styler.addImage(imgBytes, def.Key, imgWidth, imgHeight, def.Caption)
		} else {
			styler.writeParagraph(fmt.Sprintf("Plot %q not available.", def.Key), "normal", "L")
		}
	}

	return pdf.OutputFileAndClose(filepath)
}

func formatIntensity(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if v != 0 && math.Abs(v) < 0.01 {
		return fmt.Sprintf("%.3e", v)
	}
	return fmt.Sprintf("%.4f", v)
}

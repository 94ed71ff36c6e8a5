package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/user/qms_analyzer_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	plotWidth  = vg.Points(900)
	plotHeight = vg.Points(480)
)

// barSlotFraction is the share of each mass slot covered by one bar.
// Error-bar positions reuse it in data units, where NominalX gives every
// slot unit width, so the caps stay on the bar centers at any channel
// count.
const barSlotFraction = 0.3

// groupBarWidth sizes one bar of the ON/OFF pair from the number of mass
// channels sharing the axis.
func groupBarWidth(channels int) vg.Length {
	if channels < 1 {
		channels = 1
	}
	return plotWidth * barSlotFraction / vg.Length(channels)
}

var (
	colorOn       = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	colorOff      = color.RGBA{R: 30, G: 60, B: 220, A: 255}
	colorIsolated = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colorOnErr    = color.RGBA{R: 255, G: 150, B: 170, A: 255}
	colorOffErr   = color.RGBA{R: 120, G: 190, B: 240, A: 255}
	colorPositive = color.RGBA{R: 30, G: 60, B: 220, A: 255}
	colorNegative = color.RGBA{R: 220, G: 30, B: 30, A: 255}
)

// errorPoints carries bar-center positions with their uncertainty bands
// for plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func newErrorPoints(xOffset float64, means, ins []float64) errorPoints {
	pts := errorPoints{
		XYs:     make(plotter.XYs, len(means)),
		YErrors: make(plotter.YErrors, len(means)),
	}
	for i := range means {
		y := means[i]
		e := ins[i]
		if math.IsNaN(y) {
			y = 0
		}
		if math.IsNaN(e) || e < 0 {
			e = 0
		}
		pts.XYs[i] = plotter.XY{X: float64(i) + xOffset, Y: y}
		pts.YErrors[i] = struct{ Low, High float64 }{Low: e, High: e}
	}
	return pts
}

func massLabels(masses []float64) []string {
	labels := make([]string, len(masses))
	for i, m := range masses {
		labels[i] = fmt.Sprintf("%d", int(m))
	}
	return labels
}

func sanitize(values []float64) plotter.Values {
	out := make(plotter.Values, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = 0
			continue
		}
		out[i] = v
	}
	return out
}

// CreateComparisonPlot renders the grouped ON/OFF bar chart with 2-sigma
// error bars. A non-nil isolated series is drawn behind the pair as a
// wide reference band. Returns PNG bytes.
func CreateComparisonPlot(res *analysis.ComparisonResult, isolated []float64, title string) ([]byte, error) {
	if res == nil || len(res.Masses) == 0 {
		return nil, fmt.Errorf("no comparison result to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "mass amu"
	p.Y.Label.Text = "SEM c/s"

	barWidth := groupBarWidth(len(res.Masses))

	if isolated != nil {
		if len(isolated) != len(res.Masses) {
			return nil, fmt.Errorf("isolated series has %d channels, expected %d", len(isolated), len(res.Masses))
		}
		isoBars, err := plotter.NewBarChart(sanitize(isolated), 2*barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to create isolated bars: %w", err)
		}
		isoBars.Color = colorIsolated
		isoBars.LineStyle.Width = 0
		p.Add(isoBars)
		p.Legend.Add("plasma isolated", isoBars)
	}

	onBars, err := plotter.NewBarChart(sanitize(res.MeanOn), barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create ON bars: %w", err)
	}
	onBars.Color = colorOn
	onBars.LineStyle.Width = 0
	onBars.Offset = -barWidth / 2

	offBars, err := plotter.NewBarChart(sanitize(res.MeanOff), barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create OFF bars: %w", err)
	}
	offBars.Color = colorOff
	offBars.LineStyle.Width = 0
	offBars.Offset = barWidth / 2

	p.Add(onBars, offBars)
	p.Legend.Add("plasma ON", onBars)
	p.Legend.Add("plasma OFF", offBars)

	onErr, err := plotter.NewYErrorBars(newErrorPoints(-barSlotFraction/2, res.MeanOn, analysis.ClampNonPositive(res.InsOn)))
	if err != nil {
		return nil, fmt.Errorf("failed to create ON error bars: %w", err)
	}
	onErr.LineStyle.Color = colorOnErr
	offErr, err := plotter.NewYErrorBars(newErrorPoints(barSlotFraction/2, res.MeanOff, analysis.ClampNonPositive(res.InsOff)))
	if err != nil {
		return nil, fmt.Errorf("failed to create OFF error bars: %w", err)
	}
	offErr.LineStyle.Color = colorOffErr
	p.Add(onErr, offErr)

	p.NominalX(massLabels(res.Masses)...)
	p.Legend.Top = true

	return renderPNG(p, plotWidth, plotHeight)
}

// CreateDifferencePlot renders the per-mass ON-OFF difference as bars,
// blue for gains and red for losses. Returns PNG bytes.
func CreateDifferencePlot(res *analysis.ComparisonResult, title string) ([]byte, error) {
	if res == nil || len(res.Masses) == 0 {
		return nil, fmt.Errorf("no comparison result to plot")
	}

	positive := make(plotter.Values, len(res.Diff))
	negative := make(plotter.Values, len(res.Diff))
	for i, d := range res.Diff {
		if math.IsNaN(d) {
			continue
		}
		if d >= 0 {
			positive[i] = d
		} else {
			negative[i] = d
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "mass amu"
	p.Y.Label.Text = "SEM c/s"

	barWidth := groupBarWidth(len(res.Diff))
	posBars, err := plotter.NewBarChart(positive, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create difference bars: %w", err)
	}
	posBars.Color = colorPositive
	posBars.LineStyle.Width = 0

	negBars, err := plotter.NewBarChart(negative, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create difference bars: %w", err)
	}
	negBars.Color = colorNegative
	negBars.LineStyle.Width = 0

	zero, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 0},
		{X: float64(len(res.Diff)) - 0.5, Y: 0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zero line: %w", err)
	}
	zero.Color = color.Black

	p.Add(posBars, negBars, zero)
	p.Legend.Add("ON - OFF difference", posBars)
	p.NominalX(massLabels(res.Masses)...)

	return renderPNG(p, plotWidth, plotHeight)
}

func renderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

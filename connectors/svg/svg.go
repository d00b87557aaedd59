package svg

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"opportunity-report/domain/chart"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure size of the rendered report.
const (
	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

// Render writes the chart as a standalone SVG document.
func Render(w io.Writer, c chart.Chart) error {
	p, err := Plot(c)
	if err != nil {
		return err
	}
	canvas := vgsvg.New(width, height)
	p.Draw(draw.New(canvas))
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// Plot lays the chart out as a gonum plot: one stacked pair of bars per
// business area, value labels above every segment edge, a dashed grid and an
// upper-left legend.
func Plot(c chart.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	grid := plotter.NewGrid()
	gridColor := color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: alpha(chart.GridOpacity)}
	for _, ls := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
		ls.Color = gridColor
		ls.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	p.Add(grid)

	barWidth := barWidth(len(c.Bars))
	names := make([]string, 0, len(c.Bars))
	for _, b := range c.Bars {
		lower, err := segmentBar(b.Lower, b.X, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", b.Area, err)
		}
		upper, err := segmentBar(b.Upper, b.X, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", b.Area, err)
		}
		upper.StackOn(lower)
		p.Add(lower, upper)
		p.Legend.Add(b.Lower.Label, lower)
		p.Legend.Add(b.Upper.Label, upper)

		labels, err := annotations(b)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", b.Area, err)
		}
		p.Add(labels)
		names = append(names, b.Area)
	}

	if len(names) > 0 {
		p.NominalX(names...)
	}
	p.X.Tick.Label.Rotation = chart.LabelRotation * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	low, high := c.Range()
	lo, hi := low.InexactFloat64(), high.InexactFloat64()
	span := hi - lo
	p.Y.Min = math.Min(p.Y.Min, lo-0.05*span)
	p.Y.Max = math.Max(p.Y.Max, hi+0.08*span)

	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func segmentBar(s chart.Segment, x int, w vg.Length) (*plotter.BarChart, error) {
	bar, err := plotter.NewBarChart(plotter.Values{s.Height.InexactFloat64()}, w)
	if err != nil {
		return nil, err
	}
	fill, err := parseHex(s.Color)
	if err != nil {
		return nil, err
	}
	bar.Color = fill
	bar.LineStyle.Width = vg.Length(0)
	bar.XMin = float64(x)
	return bar, nil
}

// annotations places the two-decimal labels centred just above the budget and
// actual edges of a bar.
func annotations(b chart.Bar) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	for _, a := range b.Annotations() {
		xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(a.X), Y: a.Value.InexactFloat64()})
		xyl.Labels = append(xyl.Labels, a.Text)
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	labels.Offset = vg.Point{Y: vg.Points(2)}
	return labels, nil
}

// barWidth approximates 80% of one category slot of the plot area.
func barWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	return (width - 1.5*vg.Inch) * 0.8 / vg.Length(n)
}

func parseHex(s string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha(chart.Opacity)}, nil
}

func alpha(opacity float64) uint8 {
	return uint8(math.Round(opacity * 255))
}

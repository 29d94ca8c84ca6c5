package charts

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Size is the canvas size of a rendered chart in pixels.
type Size struct {
	Width  int
	Height int
}

var DefaultSize = Size{Width: 760, Height: 440}

const (
	minBubbleWidth = 3.0
	maxBubbleWidth = 24.0
)

// RenderSVG writes fig to w as an SVG document.
func RenderSVG(w io.Writer, fig Figure, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}

	switch fig.Kind {
	case KindBar:
		return renderBar(w, fig, size)
	case KindHistogram:
		return renderHistogram(w, fig, size)
	case KindBubble, KindScatter:
		return renderPoints(w, fig, size)
	default:
		return fmt.Errorf("unsupported figure kind %q", fig.Kind)
	}
}

func renderBar(w io.Writer, fig Figure, size Size) error {
	if len(fig.Bars) == 0 {
		return fmt.Errorf("bar figure %q has no bars", fig.Title)
	}

	bars := make([]chart.Value, len(fig.Bars))
	for i, b := range fig.Bars {
		color := hexColor(palette[0])
		bars[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	// Bars and gaps share the plot width equally.
	slot := (size.Width - 160) / (2*len(bars) - 1)
	if slot < 4 {
		slot = 4
	}

	yRange := &chart.ContinuousRange{Min: 0, Max: niceMax(maxBar(fig.Bars))}

	bc := chart.BarChart{
		Title:      fig.Title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   slot,
		BarSpacing: slot,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:           fig.YLabel,
			ValueFormatter: compactNumber,
			Range:          yRange,
		},
		Bars: bars,
	}
	bc.Elements = []chart.Renderable{barValueLabels(fig.Bars, slot, slot, yRange)}

	return bc.Render(chart.SVG, w)
}

// barValueLabels writes each bar's value just above it. Bar geometry follows
// chart.BarChart: bars shrink to fit the canvas and sit half a gap from the
// left edge of their slot.
func barValueLabels(bars []Bar, barWidth, barSpacing int, yRange *chart.ContinuousRange) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		width, spacing := barWidth, barSpacing
		n := len(bars)
		if n*(width+spacing) > canvasBox.Width() {
			spacing = 0
			if rest := canvasBox.Width() - n*width; rest > 0 {
				spacing = int(math.Ceil(float64(rest) / float64(n)))
			}
		}
		if n*(width+spacing) > canvasBox.Width() {
			width = 0
			if rest := canvasBox.Width() - n*spacing; rest > 0 {
				width = int(math.Ceil(float64(rest) / float64(n)))
			}
		}

		style := chart.Style{
			Font:      defaults.Font,
			FontSize:  9,
			FontColor: chart.ColorBlack,
		}

		x := canvasBox.Left + spacing>>1
		for _, b := range bars {
			label := formatNumber(b.Value)
			box := chart.Draw.MeasureText(r, label, style)
			top := canvasBox.Bottom - yRange.Translate(b.Value)
			chart.Draw.Text(r, label, x+(width-box.Width())/2, top-4, style)
			x += width + spacing
		}
	}
}

func renderHistogram(w io.Writer, fig Figure, size Size) error {
	if len(fig.Bins) == 0 {
		return fmt.Errorf("histogram %q has no bins", fig.Title)
	}

	lo, hi := fig.Bins[0].Lo, fig.Bins[len(fig.Bins)-1].Hi
	maxCount := 0
	xs := []float64{lo}
	ys := []float64{0}
	for _, b := range fig.Bins {
		xs = append(xs, b.Lo, b.Hi)
		ys = append(ys, float64(b.Count), float64(b.Count))
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	xs = append(xs, hi)
	ys = append(ys, 0)

	top := float64(maxCount) * 1.1
	if top < 1 {
		top = 1
	}

	fill := hexColor(palette[0])
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    fig.XLabel,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: fill,
				StrokeWidth: 1,
				FillColor:   fill.WithAlpha(150),
			},
		},
	}
	for _, v := range fig.VLines {
		lo = math.Min(lo, v.X)
		hi = math.Max(hi, v.X)
		series = append(series, chart.ContinuousSeries{
			Name:    v.Label,
			XValues: []float64{v.X, v.X},
			YValues: []float64{0, top},
			Style: chart.Style{
				StrokeColor: hexColor(v.Color),
				StrokeWidth: 2,
			},
		})
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           fig.XLabel,
			ValueFormatter: compactNumber,
			Range:          &chart.ContinuousRange{Min: lo, Max: padMax(lo, hi)},
		},
		YAxis: chart.YAxis{
			Name:           fig.YLabel,
			ValueFormatter: countFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: series,
	}

	return ch.Render(chart.SVG, w)
}

func renderPoints(w io.Writer, fig Figure, size Size) error {
	if len(fig.Traces) == 0 {
		return fmt.Errorf("figure %q has no points", fig.Title)
	}

	maxSize := 0.0
	for _, t := range fig.Traces {
		for _, p := range t.Points {
			maxSize = math.Max(maxSize, p.Size)
		}
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)

	series := make([]chart.Series, 0, len(fig.Traces))
	for _, t := range fig.Traces {
		xs := make([]float64, 0, len(t.Points))
		ys := make([]float64, 0, len(t.Points))
		widths := make([]float64, 0, len(t.Points))

		for _, p := range t.Points {
			x := p.X
			if fig.LogX {
				x = math.Log10(math.Max(p.X, 1e-9))
			}
			xs = append(xs, x)
			ys = append(ys, p.Y)
			widths = append(widths, dotWidth(p.Size, maxSize))

			xMin, xMax = math.Min(xMin, x), math.Max(xMax, x)
			yMin, yMax = math.Min(yMin, p.Y), math.Max(yMax, p.Y)
		}
		// A lone point is duplicated so the series still has a segment to draw.
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
			widths = append(widths, widths[0])
		}

		color := hexColor(t.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    t.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: color,
				DotColor:    color.WithAlpha(190),
				DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
					return widths[index]
				},
			},
		})
	}

	xAxis := chart.XAxis{
		Name:           fig.XLabel,
		ValueFormatter: compactNumber,
		Range:          paddedRange(xMin, xMax),
	}
	if fig.LogX {
		xAxis.ValueFormatter = nil
		xAxis.Ticks = decadeTicks(xMin, xMax)
		xAxis.Range = &chart.ContinuousRange{
			Min: xAxis.Ticks[0].Value,
			Max: xAxis.Ticks[len(xAxis.Ticks)-1].Value,
		}
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:           fig.YLabel,
			ValueFormatter: compactNumber,
			Range:          paddedRange(yMin, yMax),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.SVG, w)
}

// dotWidth scales marker diameter so its area follows size.
func dotWidth(size, maxSize float64) float64 {
	if maxSize <= 0 {
		return minBubbleWidth
	}
	return minBubbleWidth + (maxBubbleWidth-minBubbleWidth)*math.Sqrt(size/maxSize)
}

// decadeTicks labels every power of ten spanning [lo, hi] in log10 space.
func decadeTicks(lo, hi float64) []chart.Tick {
	first, last := math.Floor(lo), math.Ceil(hi)
	if last <= first {
		last = first + 1
	}

	ticks := make([]chart.Tick, 0, int(last-first)+1)
	for e := first; e <= last; e++ {
		ticks = append(ticks, chart.Tick{Value: e, Label: formatNumber(math.Pow(10, e))})
	}
	return ticks
}

func paddedRange(lo, hi float64) *chart.ContinuousRange {
	span := hi - lo
	if span <= 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	return &chart.ContinuousRange{Min: lo - span*0.05, Max: hi + span*0.05}
}

func padMax(lo, hi float64) float64 {
	if hi > lo {
		return hi
	}
	return lo + 1
}

func maxBar(bars []Bar) float64 {
	m := 0.0
	for _, b := range bars {
		m = math.Max(m, b.Value)
	}
	return m
}

// niceMax rounds v up to one significant step so the tallest bar has headroom.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(v)))
	return (math.Floor(v/step) + 1) * step
}

func compactNumber(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatNumber(f)
	}
	return fmt.Sprintf("%v", v)
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}

// formatNumber renders axis values with SI prefixes, e.g. 1500 -> "1.5k".
func formatNumber(v float64) string {
	if math.Abs(v) < 1000 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
	}
	s := humanize.SIWithDigits(v, 1, "")
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

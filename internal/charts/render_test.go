package charts

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapdash.dashboardpro.org/internal/dataset"
)

func renderToString(t *testing.T, fig Figure) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, fig, DefaultSize))
	return buf.String()
}

func TestRenderSVG(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name string
		fig  Figure
	}{
		{
			name: "bar",
			fig: NewBarFigure(dataset.MeasurePop, []dataset.ContinentMean{
				{Continent: "Americas", Mean: 33390141},
				{Continent: "Asia", Mean: 16299248},
				{Continent: "Europe", Mean: 3600523},
			}),
		},
		{name: "bubble", fig: NewBubbleFigure(rows)},
		{name: "scatter", fig: NewScatterFigure(rows, dataset.AllContinents)},
		{name: "scatter single point", fig: NewScatterFigure(rows[3:], "Americas")},
		{
			name: "histogram",
			fig: NewHistogramFigure(dataset.Distribution{
				Measure: dataset.MeasureLifeExp,
				Country: "Canada",
				Overlay: 80.653,
				Bins:    dataset.Histogram([]float64{43.8, 76.4, 75.6, 80.7}, dataset.DefaultHistogramBins),
			}),
		},
		{
			name: "histogram of identical values",
			fig: NewHistogramFigure(dataset.Distribution{
				Measure: dataset.MeasureGdpPercap,
				Country: "Chad",
				Overlay: 10,
				Bins:    dataset.Histogram([]float64{10, 10}, dataset.DefaultHistogramBins),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := renderToString(t, tt.fig)
			assert.Contains(t, svg, "<svg")
			assert.Contains(t, svg, "</svg>")
		})
	}
}

func TestRenderBarWritesValueLabels(t *testing.T) {
	fig := NewBarFigure(dataset.MeasureLifeExp, []dataset.ContinentMean{
		{Continent: "Africa", Mean: 54.806},
		{Continent: "Europe", Mean: 77.6486},
	})

	svg := renderToString(t, fig)

	assert.Contains(t, svg, ">54.8</text>")
	assert.Contains(t, svg, ">77.6</text>")
	assert.Contains(t, svg, "Africa")
}

func TestRenderSVGRejectsEmptyFigures(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderSVG(&buf, Figure{Kind: KindBar}, DefaultSize))
	assert.Error(t, RenderSVG(&buf, Figure{Kind: KindHistogram}, DefaultSize))
	assert.Error(t, RenderSVG(&buf, Figure{Kind: KindScatter}, DefaultSize))
	assert.Error(t, RenderSVG(&buf, Figure{Kind: "pie"}, DefaultSize))
}

func TestDecadeTicks(t *testing.T) {
	ticks := decadeTicks(2.98, 4.56)
	require.Len(t, ticks, 4)
	assert.Equal(t, 2.0, ticks[0].Value)
	assert.Equal(t, "100", ticks[0].Label)
	assert.Equal(t, "1k", ticks[1].Label)
	assert.Equal(t, "10k", ticks[2].Label)
	assert.Equal(t, "100k", ticks[3].Label)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "42.5", formatNumber(42.5))
	assert.Equal(t, "1.5k", formatNumber(1500))
	assert.Equal(t, "33.4M", formatNumber(33390141))
}

func TestDotWidth(t *testing.T) {
	assert.Equal(t, maxBubbleWidth, dotWidth(100, 100))
	assert.Equal(t, minBubbleWidth, dotWidth(0, 100))
	assert.Equal(t, minBubbleWidth, dotWidth(5, 0))
}

func TestRendererCachesByKey(t *testing.T) {
	renderer, err := NewRenderer(8, DefaultSize)
	require.NoError(t, err)

	var builds int32
	build := func() (Figure, error) {
		atomic.AddInt32(&builds, 1)
		return NewBubbleFigure(sampleRows()), nil
	}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svg, err := renderer.SVG(KindBubble, "all", build)
			assert.NoError(t, err)
			results[i] = svg
		}(i)
	}
	wg.Wait()

	svg, err := renderer.SVG(KindBubble, "all", build)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
	assert.Equal(t, 1, renderer.Len())
	for _, r := range results {
		assert.Equal(t, svg, r)
	}

	_, err = renderer.SVG(KindScatter, "all", func() (Figure, error) {
		return NewScatterFigure(sampleRows(), dataset.AllContinents), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, renderer.Len(), "kinds do not share cache entries")
}

func TestRendererDoesNotCacheErrors(t *testing.T) {
	renderer, err := NewRenderer(4, DefaultSize)
	require.NoError(t, err)

	_, err = renderer.SVG(KindHistogram, "pop|Atlantis", func() (Figure, error) {
		return Figure{}, dataset.ErrCountryNotFound
	})
	assert.True(t, errors.Is(err, dataset.ErrCountryNotFound))
	assert.Equal(t, 0, renderer.Len())
}

func TestNewRendererRejectsZeroSize(t *testing.T) {
	_, err := NewRenderer(0, DefaultSize)
	assert.Error(t, err)
}

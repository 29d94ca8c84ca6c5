package charts

import (
	"fmt"

	"gapdash.dashboardpro.org/internal/dataset"
)

// Kind is the chart type of a Figure.
type Kind string

const (
	KindBar       Kind = "bar"
	KindBubble    Kind = "bubble"
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
)

// Qualitative palette assigned to continents in order of first appearance.
var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

const overlayColor = "#FF0000"

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
}

// Trace is one colored group of points, one per continent.
type Trace struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// VLine is a vertical marker drawn across the whole plot area.
type VLine struct {
	X     float64 `json:"x"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// Figure is a render-ready chart description. Only the fields relevant to Kind
// are populated.
type Figure struct {
	Kind        Kind          `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	XLabel      string        `json:"xLabel"`
	YLabel      string        `json:"yLabel"`
	LogX        bool          `json:"logX"`
	Bars        []Bar         `json:"bars,omitempty"`
	Traces      []Trace       `json:"traces,omitempty"`
	Bins        []dataset.Bin `json:"bins,omitempty"`
	VLines      []VLine       `json:"vlines,omitempty"`
}

// NewBarFigure plots the per-continent means of a measure.
func NewBarFigure(measure dataset.Measure, means []dataset.ContinentMean) Figure {
	bars := make([]Bar, len(means))
	for i, m := range means {
		bars[i] = Bar{Label: m.Continent, Value: m.Mean}
	}

	return Figure{
		Kind:        KindBar,
		Title:       fmt.Sprintf("%s promedio por continente", measure.Label()),
		Description: measure.Insight(),
		XLabel:      "continent",
		YLabel:      string(measure),
		Bars:        bars,
	}
}

// NewBubbleFigure plots GDP per capita (log scale) against life expectancy, sized by
// population and colored by continent.
func NewBubbleFigure(rows []dataset.Row) Figure {
	return Figure{
		Kind:   KindBubble,
		Title:  "Bubble Plot",
		XLabel: string(dataset.MeasureGdpPercap),
		YLabel: string(dataset.MeasureLifeExp),
		LogX:   true,
		Traces: continentTraces(rows),
	}
}

// NewScatterFigure is the linear-axis variant of the bubble plot over a
// continent-filtered subset. Markers are still sized by population.
func NewScatterFigure(rows []dataset.Row, continent string) Figure {
	title := "PIB vs Esperanza de Vida"
	if !dataset.IsAllContinents(continent) {
		title = fmt.Sprintf("%s (%s)", title, continent)
	}

	return Figure{
		Kind:   KindScatter,
		Title:  title,
		XLabel: string(dataset.MeasureGdpPercap),
		YLabel: string(dataset.MeasureLifeExp),
		Traces: continentTraces(rows),
	}
}

// NewHistogramFigure plots a distribution with a red line at the selected country's value.
func NewHistogramFigure(d dataset.Distribution) Figure {
	return Figure{
		Kind:   KindHistogram,
		Title:  fmt.Sprintf("%s: %s", d.Measure.Label(), d.Country),
		XLabel: string(d.Measure),
		YLabel: "count",
		Bins:   d.Bins,
		VLines: []VLine{{X: d.Overlay, Color: overlayColor, Label: d.Country}},
	}
}

func continentTraces(rows []dataset.Row) []Trace {
	var traces []Trace
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.Continent]
		if !ok {
			i = len(traces)
			index[r.Continent] = i
			traces = append(traces, Trace{
				Name:  r.Continent,
				Color: palette[i%len(palette)],
			})
		}
		traces[i].Points = append(traces[i].Points, Point{
			Label: r.Country,
			X:     r.GdpPercap,
			Y:     r.LifeExp,
			Size:  float64(r.Pop),
		})
	}

	return traces
}

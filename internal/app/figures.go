package app

import (
	"gapdash.dashboardpro.org/internal/charts"
	"gapdash.dashboardpro.org/internal/dataset"
)

// DefaultCountry is preselected on the distribution page.
const DefaultCountry = "Canada"

// DistributionMeasures is the order of the three histograms on the distribution page.
var DistributionMeasures = []dataset.Measure{
	dataset.MeasureLifeExp,
	dataset.MeasurePop,
	dataset.MeasureGdpPercap,
}

func (app *Application) BarFigure(measure dataset.Measure) (charts.Figure, error) {
	means, err := app.Dataset.MeanByContinent(measure)
	if err != nil {
		return charts.Figure{}, err
	}
	return charts.NewBarFigure(measure, means), nil
}

func (app *Application) BubbleFigure() charts.Figure {
	return charts.NewBubbleFigure(app.Dataset.Rows())
}

func (app *Application) ScatterFigure(continent string) (charts.Figure, error) {
	rows, err := app.Dataset.FilterByContinent(continent)
	if err != nil {
		return charts.Figure{}, err
	}
	return charts.NewScatterFigure(rows, continent), nil
}

func (app *Application) DistributionFigure(measure dataset.Measure, country string) (charts.Figure, error) {
	d, err := app.Dataset.Distribution(measure, country)
	if err != nil {
		return charts.Figure{}, err
	}
	return charts.NewHistogramFigure(d), nil
}

// DistributionFigures returns one histogram per DistributionMeasures entry.
func (app *Application) DistributionFigures(country string) ([]charts.Figure, error) {
	figs := make([]charts.Figure, 0, len(DistributionMeasures))
	for _, m := range DistributionMeasures {
		fig, err := app.DistributionFigure(m, country)
		if err != nil {
			return nil, err
		}
		figs = append(figs, fig)
	}
	return figs, nil
}

func (app *Application) BarSVG(measure dataset.Measure) ([]byte, error) {
	return app.Charts.SVG(charts.KindBar, string(measure), func() (charts.Figure, error) {
		return app.BarFigure(measure)
	})
}

func (app *Application) BubbleSVG() ([]byte, error) {
	return app.Charts.SVG(charts.KindBubble, "all", func() (charts.Figure, error) {
		return app.BubbleFigure(), nil
	})
}

func (app *Application) ScatterSVG(continent string) ([]byte, error) {
	if dataset.IsAllContinents(continent) {
		continent = dataset.AllContinents
	}
	return app.Charts.SVG(charts.KindScatter, continent, func() (charts.Figure, error) {
		return app.ScatterFigure(continent)
	})
}

func (app *Application) DistributionSVG(measure dataset.Measure, country string) ([]byte, error) {
	return app.Charts.SVG(charts.KindHistogram, string(measure)+"|"+country, func() (charts.Figure, error) {
		return app.DistributionFigure(measure, country)
	})
}

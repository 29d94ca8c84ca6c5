package webui

import (
	"net/http"

	"gapdash.dashboardpro.org/internal/app"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/utils"
)

func (webUI *WebUI) writeSVG(w http.ResponseWriter, r *http.Request, svg []byte, err error) {
	if err != nil {
		webUI.datasetError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	// The dataset never changes while the process runs
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(svg)
}

func (webUI *WebUI) barChartHandler(w http.ResponseWriter, r *http.Request) {
	m, err := dataset.ParseMeasure(queryOrDefault(r, "var", string(dataset.MeasureLifeExp)))
	if err != nil {
		webUI.datasetError(w, r, err)
		return
	}
	svg, err := webUI.BarSVG(m)
	webUI.writeSVG(w, r, svg, err)
}

func (webUI *WebUI) bubbleChartHandler(w http.ResponseWriter, r *http.Request) {
	svg, err := webUI.BubbleSVG()
	webUI.writeSVG(w, r, svg, err)
}

func (webUI *WebUI) scatterChartHandler(w http.ResponseWriter, r *http.Request) {
	svg, err := webUI.ScatterSVG(r.URL.Query().Get("continent"))
	webUI.writeSVG(w, r, svg, err)
}

func (webUI *WebUI) distributionChartHandler(w http.ResponseWriter, r *http.Request) {
	m, err := dataset.ParseMeasure(utils.ExtractIDFromParams(r, "measure"))
	if err != nil {
		webUI.datasetError(w, r, err)
		return
	}

	country := queryOrDefault(r, "country", app.DefaultCountry)
	if err := utils.ValidateCountry(country); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	svg, err := webUI.DistributionSVG(m, country)
	webUI.writeSVG(w, r, svg, err)
}

package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/models"
)

type debugData struct {
	Title string
	Pre   string
}

var debugDump = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	var buf bytes.Buffer
	err := webUI.debug.Execute(&buf, debugData{
		Title: title,
		Pre:   debugDump.Sdump(data),
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "rows":
		data = webUI.Dataset.Rows()
		title = "Dataset - Rows"
	case "summary":
		data = models.NewSummaryEntry(webUI.Dataset.Summary())
		title = "Dataset - Summary"
	case "continents":
		data = webUI.Dataset.Continents()
		title = "Dataset - Continents"
	case "countries":
		data = webUI.Dataset.Countries()
		title = "Dataset - Countries"
	case "means":
		means := make(map[dataset.Measure][]dataset.ContinentMean, len(dataset.Measures))
		for _, m := range dataset.Measures {
			means[m], _ = webUI.Dataset.MeanByContinent(m)
		}
		data = means
		title = "Dataset - Means by Continent"
	case "warnings":
		data = webUI.Dataset.Warnings()
		title = "Dataset - Parse Warnings"
	default:
		data = map[string]string{
			"error": "Please use one of the following: rows, summary, continents, countries, means, warnings.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}

package restapi

import (
	"net/http"

	"gapdash.dashboardpro.org/internal/app"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/models"
	"gapdash.dashboardpro.org/internal/utils"
)

const (
	bubbleDescription       = "Los países con mayor PIB per cápita tienden a tener mayor esperanza de vida."
	distributionDescription = "Las líneas rojas indican los valores del país seleccionado."
)

func queryOrDefault(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

func (api *RestAPI) barFigureHandler(w http.ResponseWriter, r *http.Request) {
	measure := queryOrDefault(r, "var", string(dataset.MeasureLifeExp))
	if err := utils.ValidateMeasure(measure); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"var": {err.Error()}})
		return
	}

	fig, err := api.BarFigure(dataset.Measure(measure))
	if err != nil {
		api.errorResponse(w, r, "var", err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.FigureEntry{
		Figure:      fig,
		Description: fig.Description,
	}))
}

func (api *RestAPI) bubbleFigureHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(models.FigureEntry{
		Figure:      api.BubbleFigure(),
		Description: bubbleDescription,
	}))
}

func (api *RestAPI) distributionFiguresHandler(w http.ResponseWriter, r *http.Request) {
	country := queryOrDefault(r, "country", app.DefaultCountry)
	if err := utils.ValidateCountry(country); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"country": {err.Error()}})
		return
	}

	figs, err := api.DistributionFigures(country)
	if err != nil {
		api.errorResponse(w, r, "country", err)
		return
	}

	entries := make([]models.FigureEntry, len(figs))
	for i, fig := range figs {
		entries[i] = models.FigureEntry{Figure: fig, Description: distributionDescription}
	}
	api.sendResponse(w, r, models.NewListResponse(entries, false))
}

func (api *RestAPI) scatterFigureHandler(w http.ResponseWriter, r *http.Request) {
	continent := queryOrDefault(r, "continent", dataset.AllContinents)
	if err := utils.ValidateContinent(continent); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"continent": {err.Error()}})
		return
	}

	fig, err := api.ScatterFigure(continent)
	if err != nil {
		api.errorResponse(w, r, "continent", err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.FigureEntry{Figure: fig}))
}


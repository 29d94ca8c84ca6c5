package restapi

import (
	"net/http"

	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/models"
	"gapdash.dashboardpro.org/internal/utils"
)

func (api *RestAPI) summaryHandler(w http.ResponseWriter, r *http.Request) {
	entry := models.NewSummaryEntry(api.Dataset.Summary())
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

func (api *RestAPI) rowsHandler(w http.ResponseWriter, r *http.Request) {
	params, fieldErrors := utils.ParsePageParams(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	page, err := api.DB.Page(r.Context(), params)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewRowsPage(page)))
}

func (api *RestAPI) continentsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Dataset.Continents(), false))
}

func (api *RestAPI) countriesHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Dataset.Countries(), false))
}

func (api *RestAPI) countryHandler(w http.ResponseWriter, r *http.Request) {
	country := utils.ExtractIDFromParams(r, "country")
	if err := utils.ValidateCountry(country); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"country": {err.Error()}})
		return
	}

	row, err := api.Dataset.FindCountry(country)
	if err != nil {
		api.errorResponse(w, r, "country", err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(row))
}

func (api *RestAPI) meansHandler(w http.ResponseWriter, r *http.Request) {
	measure := dataset.Measure(utils.ExtractIDFromParams(r, "measure"))

	means, err := api.Dataset.MeanByContinent(measure)
	if err != nil {
		api.errorResponse(w, r, "measure", err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(means, false))
}

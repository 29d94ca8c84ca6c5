package webui

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"gapdash.dashboardpro.org/internal/app"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/models"
	"gapdash.dashboardpro.org/internal/utils"
)

const (
	logoURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/3/30/Gapminder_logo.svg/512px-Gapminder_logo.svg.png"

	indexTitle        = "Dashboard Profesional - Gapminder 2007"
	indexIntro        = "Explore los indicadores clave de desarrollo humano por continente y país."
	bubbleDescription = "Los países con mayor PIB per cápita tienden a tener mayor esperanza de vida."
	distributionNote  = "Las líneas rojas indican los valores del país seleccionado."
)

type option struct {
	Value    string
	Selected bool
}

func options(values []string, selected string) []option {
	opts := make([]option, len(values))
	for i, v := range values {
		opts[i] = option{Value: v, Selected: v == selected}
	}
	return opts
}

func queryOrDefault(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

type indexView struct {
	LogoURL string
	Heading string
	KPIs    []models.KPI
	Intro   string
}

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	webUI.render(w, r, http.StatusOK, "index", indexTitle, indexView{
		LogoURL: logoURL,
		Heading: indexTitle,
		KPIs:    models.NewKPIs(webUI.Dataset.Summary()),
		Intro:   indexIntro,
	})
}

type tableHeader struct {
	Name  string
	Href  string
	Arrow string
}

type tableView struct {
	models.RowsPage
	Headers []tableHeader
	Current int
	Prev    string
	Next    string
}

func (webUI *WebUI) tableHandler(w http.ResponseWriter, r *http.Request) {
	params, fieldErrors := utils.ParsePageParams(r.URL.Query())
	if len(fieldErrors) > 0 {
		http.Error(w, "invalid table parameters", http.StatusBadRequest)
		return
	}

	page, err := webUI.DB.Page(r.Context(), params)
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}

	view := tableView{RowsPage: models.NewRowsPage(page), Current: page.Page}
	for _, col := range view.Columns {
		header := tableHeader{Name: col}
		desc := false
		if col == page.SortBy {
			header.Arrow = "▲"
			if page.Desc {
				header.Arrow = "▼"
			} else {
				desc = true
			}
		}
		header.Href = tableURL(1, page.Size, col, desc)
		view.Headers = append(view.Headers, header)
	}
	if page.Page > 1 {
		view.Prev = tableURL(page.Page-1, page.Size, page.SortBy, page.Desc)
	}
	if page.Page < page.TotalPages {
		view.Next = tableURL(page.Page+1, page.Size, page.SortBy, page.Desc)
	}

	webUI.render(w, r, http.StatusOK, "table", "Tabla de Datos", view)
}

func tableURL(page, size int, sortBy string, desc bool) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if size != 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if sortBy != "" {
		q.Set("sort", sortBy)
		if desc {
			q.Set("order", "desc")
		}
	}
	return "/table?" + q.Encode()
}

type chartView struct {
	Options     []option
	ChartURL    string
	Description string
}

func (webUI *WebUI) graphHandler(w http.ResponseWriter, r *http.Request) {
	measure := queryOrDefault(r, "var", string(dataset.MeasureLifeExp))
	m, err := dataset.ParseMeasure(measure)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	names := make([]string, len(dataset.Measures))
	for i, v := range dataset.Measures {
		names[i] = string(v)
	}

	webUI.render(w, r, http.StatusOK, "graph", "Promedios por Continente", chartView{
		Options:     options(names, measure),
		ChartURL:    "/charts/bar.svg?" + url.Values{"var": {measure}}.Encode(),
		Description: m.Insight(),
	})
}

func (webUI *WebUI) bubbleHandler(w http.ResponseWriter, r *http.Request) {
	webUI.render(w, r, http.StatusOK, "bubble", "Bubble Plot: PIB vs Esperanza de Vida", chartView{
		ChartURL:    "/charts/bubble.svg",
		Description: bubbleDescription,
	})
}

type distributionChart struct {
	Measure string
	URL     string
}

type distributionView struct {
	Options []option
	Charts  []distributionChart
	Note    string
}

func (webUI *WebUI) distributionHandler(w http.ResponseWriter, r *http.Request) {
	country := queryOrDefault(r, "country", app.DefaultCountry)
	if err := utils.ValidateCountry(country); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := webUI.Dataset.FindCountry(country); err != nil {
		webUI.datasetError(w, r, err)
		return
	}

	view := distributionView{
		Options: options(webUI.Dataset.Countries(), country),
		Note:    distributionNote,
	}
	query := url.Values{"country": {country}}.Encode()
	for _, m := range app.DistributionMeasures {
		view.Charts = append(view.Charts, distributionChart{
			Measure: string(m),
			URL:     "/charts/distribution/" + string(m) + ".svg?" + query,
		})
	}

	webUI.render(w, r, http.StatusOK, "distribution", "Distribuciones por País", view)
}

func (webUI *WebUI) scatterHandler(w http.ResponseWriter, r *http.Request) {
	continent := queryOrDefault(r, "continent", dataset.AllContinents)
	if err := utils.ValidateContinent(continent); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dataset.IsAllContinents(continent) {
		continent = dataset.AllContinents
	}

	choices := append(webUI.Dataset.Continents(), dataset.AllContinents)
	webUI.render(w, r, http.StatusOK, "scatter", "Scatter Plot Interactivo", chartView{
		Options:  options(choices, continent),
		ChartURL: "/charts/scatter.svg?" + url.Values{"continent": {continent}}.Encode(),
	})
}

// datasetError maps dataset sentinel errors onto plain text 400 and 404 replies.
func (webUI *WebUI) datasetError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dataset.ErrCountryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, dataset.ErrUnknownMeasure), errors.Is(err, dataset.ErrUnknownContinent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		webUI.serverError(w, r, err)
	}
}

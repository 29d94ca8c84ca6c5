package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetRoutes registers the JSON API, health and metrics endpoints.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/summary", api.summaryHandler)
	mux.HandleFunc("GET /api/rows", api.rowsHandler)
	mux.HandleFunc("GET /api/continents", api.continentsHandler)
	mux.HandleFunc("GET /api/countries", api.countriesHandler)
	mux.HandleFunc("GET /api/countries/{country}", api.countryHandler)
	mux.HandleFunc("GET /api/means/{measure}", api.meansHandler)
	mux.HandleFunc("GET /api/figures/bar", api.barFigureHandler)
	mux.HandleFunc("GET /api/figures/bubble", api.bubbleFigureHandler)
	mux.HandleFunc("GET /api/figures/distribution", api.distributionFiguresHandler)
	mux.HandleFunc("GET /api/figures/scatter", api.scatterFigureHandler)
	mux.HandleFunc("/api/", api.apiNotFoundHandler)

	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", api.requireAPIKey(promhttp.Handler()))
}

func (api *RestAPI) apiNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	api.notFoundResponse(w, r, "resource not found")
}

// requireAPIKey rejects requests without a configured key. With no keys
// configured every request passes.
func (api *RestAPI) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package webui

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"gapdash.dashboardpro.org/internal/metrics"
)

// Handler returns the router for the dashboard pages. Paths it does not know
// render the home page, except under /api/.
func (webUI *WebUI) Handler() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/", webUI.route("/", webUI.indexHandler))
	router.HandlerFunc(http.MethodGet, "/table", webUI.route("/table", webUI.tableHandler))
	router.HandlerFunc(http.MethodGet, "/graph", webUI.route("/graph", webUI.graphHandler))
	router.HandlerFunc(http.MethodGet, "/bubble", webUI.route("/bubble", webUI.bubbleHandler))
	router.HandlerFunc(http.MethodGet, "/distribution", webUI.route("/distribution", webUI.distributionHandler))
	router.HandlerFunc(http.MethodGet, "/scatter", webUI.route("/scatter", webUI.scatterHandler))

	router.HandlerFunc(http.MethodGet, "/charts/bar.svg", webUI.route("/charts/bar", webUI.barChartHandler))
	router.HandlerFunc(http.MethodGet, "/charts/bubble.svg", webUI.route("/charts/bubble", webUI.bubbleChartHandler))
	router.HandlerFunc(http.MethodGet, "/charts/scatter.svg", webUI.route("/charts/scatter", webUI.scatterChartHandler))
	router.HandlerFunc(http.MethodGet, "/charts/distribution/:measure",
		webUI.route("/charts/distribution", webUI.distributionChartHandler))

	router.HandlerFunc(http.MethodGet, "/debug/", webUI.route("/debug", webUI.debugIndexHandler))
	router.Handler(http.MethodGet, "/static/*filepath",
		http.StripPrefix("/static", http.FileServerFS(webUI.static)))

	router.NotFound = http.HandlerFunc(webUI.route("fallback", webUI.fallbackHandler))

	return router
}

// route tags the request with a fixed metrics label before calling next.
func (webUI *WebUI) route(label string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.SetRoute(r.Context(), label)
		next(w, r)
	}
}

func (webUI *WebUI) fallbackHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		http.NotFound(w, r)
		return
	}
	webUI.indexHandler(w, r)
}

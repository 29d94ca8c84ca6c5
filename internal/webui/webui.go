package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dustin/go-humanize"

	"gapdash.dashboardpro.org/internal/app"
	"gapdash.dashboardpro.org/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const footerText = "© 2025 Dashboard Pro"

// pages are rendered inside templates/layout.html.
var pages = []string{"index", "table", "graph", "bubble", "distribution", "scatter"}

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/", Label: "Inicio"},
	{Href: "/table", Label: "Tabla"},
	{Href: "/graph", Label: "Gráfico"},
	{Href: "/bubble", Label: "Bubble Plot"},
	{Href: "/distribution", Label: "Distribuciones"},
	{Href: "/scatter", Label: "Scatter Plot"},
}

// layoutData is passed to every page template. Content holds the page's own view.
type layoutData struct {
	Title   string
	Active  string
	Nav     []navLink
	Footer  string
	Content any
}

// WebUI serves the dashboard pages, the chart images and the debug page.
type WebUI struct {
	*app.Application
	templates map[string]*template.Template
	debug     *template.Template
	static    fs.FS
}

var templateFuncs = template.FuncMap{
	"comma": humanize.Comma,
	"float": func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
}

func NewWebUI(application *app.Application) (*WebUI, error) {
	webUI := &WebUI{
		Application: application,
		templates:   make(map[string]*template.Template, len(pages)),
	}

	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing %s template: %w", page, err)
		}
		webUI.templates[page] = tmpl
	}

	debug, err := template.ParseFS(templateFS, "templates/debug_index.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing debug template: %w", err)
	}
	webUI.debug = debug

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	webUI.static = static

	return webUI, nil
}

// render executes a page into a buffer first so a template error never leaves
// a half written response.
func (webUI *WebUI) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	tmpl, ok := webUI.templates[page]
	if !ok {
		webUI.serverError(w, r, fmt.Errorf("template %q does not exist", page))
		return
	}

	active := "/"
	if page != "index" {
		active = "/" + page
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, layoutData{
		Title:   title,
		Active:  active,
		Nav:     navLinks,
		Footer:  footerText,
		Content: content,
	})
	if err != nil {
		webUI.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "web ui error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

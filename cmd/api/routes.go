package main

import (
	"net/http"

	"gapdash.dashboardpro.org/internal/app"
	"gapdash.dashboardpro.org/internal/restapi"
	"gapdash.dashboardpro.org/internal/webui"
)

// routes mounts the JSON API, health and metrics on a ServeMux and hands every
// other path to the web UI router.
func routes(application *app.Application) (http.Handler, error) {
	api := restapi.NewRestAPI(application)

	webUI, err := webui.NewWebUI(application)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	mux.Handle("/", webUI.Handler())

	return api.Middleware(mux), nil
}

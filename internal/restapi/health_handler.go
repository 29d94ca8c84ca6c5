package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gapdash.dashboardpro.org/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:   "ok",
		Rows:     api.Dataset.Len(),
		Source:   api.Dataset.Source(),
		LoadedAt: api.Dataset.LoadedAt().UnixMilli(),
		Uptime:   strings.TrimSpace(humanize.RelTime(api.StartedAt, time.Now(), "", "")),
	}
	api.sendResponse(w, r, models.NewOKResponse(status))
}

package models

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"gapdash.dashboardpro.org/internal/charts"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/datasetdb"
)

// KPI is one headline card on the home page.
type KPI struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
}

// SummaryEntry is the payload of /api/summary.
type SummaryEntry struct {
	dataset.Summary
	KPIs []KPI `json:"kpis"`
}

// NewKPIs formats the three headline indicators the way the home page shows them.
func NewKPIs(s dataset.Summary) []KPI {
	return []KPI{
		{
			Label: "Esperanza de vida promedio",
			Value: fmt.Sprintf("%.2f años", s.MeanLifeExp),
			Raw:   s.MeanLifeExp,
		},
		{
			Label: "Población total",
			Value: fmt.Sprintf("%.2f B", float64(s.TotalPop)/1e9),
			Raw:   float64(s.TotalPop),
		},
		{
			Label: "PIB per cápita promedio",
			Value: "$" + humanize.Comma(int64(math.Round(s.MeanGdpPercap))),
			Raw:   s.MeanGdpPercap,
		},
	}
}

func NewSummaryEntry(s dataset.Summary) SummaryEntry {
	return SummaryEntry{Summary: s, KPIs: NewKPIs(s)}
}

// RowsPage is the payload of /api/rows.
type RowsPage struct {
	datasetdb.Page
	Columns []string `json:"columns"`
}

// TableColumns lists the table columns in the order of the source file.
var TableColumns = []string{"country", "continent", "year", "lifeExp", "pop", "gdpPercap"}

func NewRowsPage(page datasetdb.Page) RowsPage {
	return RowsPage{Page: page, Columns: TableColumns}
}

// FigureEntry pairs a figure with the text shown beside it.
type FigureEntry struct {
	Figure      charts.Figure `json:"figure"`
	Description string        `json:"description,omitempty"`
}

// HealthStatus is the payload of /healthz.
type HealthStatus struct {
	Status   string `json:"status"`
	Rows     int    `json:"rows"`
	Source   string `json:"source"`
	LoadedAt int64  `json:"loadedAt"`
	Uptime   string `json:"uptime"`
}

package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMeasure   = errors.New("unknown measure")
	ErrCountryNotFound  = errors.New("country not found")
	ErrUnknownContinent = errors.New("unknown continent")
)

// AllContinents is the continent filter value meaning "no filter".
const AllContinents = "Todos"

// DefaultYear is assigned to rows when the source has no year column.
const DefaultYear = 2007

// KnownContinents is the fixed category set of the continent column.
var KnownContinents = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// IsKnownContinent reports whether c belongs to KnownContinents.
func IsKnownContinent(c string) bool {
	for _, k := range KnownContinents {
		if k == c {
			return true
		}
	}
	return false
}

// Row is one country's indicators for a single year.
type Row struct {
	Country   string  `json:"country"`
	Continent string  `json:"continent"`
	Year      int     `json:"year"`
	LifeExp   float64 `json:"lifeExp"`
	Pop       int64   `json:"pop"`
	GdpPercap float64 `json:"gdpPercap"`
}

// Value returns the row's value for the given measure.
func (r Row) Value(m Measure) float64 {
	switch m {
	case MeasurePop:
		return float64(r.Pop)
	case MeasureLifeExp:
		return r.LifeExp
	case MeasureGdpPercap:
		return r.GdpPercap
	}
	return 0
}

// Measure names a numeric column that can be aggregated.
type Measure string

const (
	MeasurePop       Measure = "pop"
	MeasureLifeExp   Measure = "lifeExp"
	MeasureGdpPercap Measure = "gdpPercap"
)

// Measures lists the selectable measures in dropdown order.
var Measures = []Measure{MeasurePop, MeasureLifeExp, MeasureGdpPercap}

// ParseMeasure validates a measure name as it appears in the CSV header.
func ParseMeasure(s string) (Measure, error) {
	for _, m := range Measures {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMeasure, s)
}

// Label is the human readable axis label for the measure.
func (m Measure) Label() string {
	switch m {
	case MeasurePop:
		return "Población"
	case MeasureLifeExp:
		return "Esperanza de vida"
	case MeasureGdpPercap:
		return "PIB per cápita"
	}
	return string(m)
}

// Insight is the short commentary shown under the per-continent bar chart.
func (m Measure) Insight() string {
	switch m {
	case MeasureLifeExp:
		return "Europa y América presentan mayores esperanzas de vida."
	case MeasurePop:
		return "Asia lidera con mayor población promedio."
	case MeasureGdpPercap:
		return "Europa y América tienen el mayor PIB per cápita promedio."
	}
	return ""
}

// ContinentMean is the mean of one measure over the rows of a continent.
type ContinentMean struct {
	Continent string  `json:"continent"`
	Mean      float64 `json:"mean"`
	Count     int     `json:"count"`
}

// Summary holds the headline KPIs of the dataset.
type Summary struct {
	MeanLifeExp    float64 `json:"meanLifeExp"`
	TotalPop       int64   `json:"totalPop"`
	MeanGdpPercap  float64 `json:"meanGdpPercap"`
	Rows           int     `json:"rows"`
	ContinentCount int     `json:"continentCount"`
	CountryCount   int     `json:"countryCount"`
}

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Distribution is a histogram of a measure with the selected country's value.
type Distribution struct {
	Measure Measure `json:"measure"`
	Country string  `json:"country"`
	Overlay float64 `json:"overlay"`
	Bins    []Bin   `json:"bins"`
}

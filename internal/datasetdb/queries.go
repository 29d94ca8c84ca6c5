package datasetdb

import (
	"context"
	"fmt"

	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/logging"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// sortColumns whitelists the sortable columns by their dataset name.
var sortColumns = map[string]string{
	"":          "position",
	"country":   "country",
	"continent": "continent",
	"year":      "year",
	"lifeExp":   "life_exp",
	"pop":       "pop",
	"gdpPercap": "gdp_percap",
}

// IsSortColumn reports whether name can be used as PageParams.SortBy.
func IsSortColumn(name string) bool {
	_, ok := sortColumns[name]
	return ok
}

// PageParams selects one page of the table. Page is 1-based.
type PageParams struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// Normalize clamps the params into valid ranges.
func (p PageParams) Normalize() PageParams {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Page is one page of rows together with the paging metadata.
type Page struct {
	Rows       []dataset.Row `json:"rows"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	SortBy     string        `json:"sortBy,omitempty"`
	Desc       bool          `json:"desc"`
}

// Count returns the number of mirrored rows.
func (c *Client) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM countries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting countries: %w", err)
	}
	return n, nil
}

// Page returns the requested page. Pages past the end are empty but still carry
// the totals so callers can render a pager.
func (c *Client) Page(ctx context.Context, params PageParams) (Page, error) {
	params = params.Normalize()

	column, ok := sortColumns[params.SortBy]
	if !ok {
		return Page{}, fmt.Errorf("unsupported sort column %q", params.SortBy)
	}
	direction := "ASC"
	if params.Desc {
		direction = "DESC"
	}

	total, err := c.Count(ctx)
	if err != nil {
		return Page{}, err
	}

	// column and direction come from the whitelist above.
	query := fmt.Sprintf(`
		SELECT country, continent, year, life_exp, pop, gdp_percap
		FROM countries
		ORDER BY %s %s, position ASC
		LIMIT ? OFFSET ?`, column, direction)

	rows, err := c.DB.QueryContext(ctx, query, params.Size, (params.Page-1)*params.Size)
	if err != nil {
		return Page{}, fmt.Errorf("error querying countries: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger(), "page_rows")

	page := Page{
		Rows:       make([]dataset.Row, 0, params.Size),
		Page:       params.Page,
		Size:       params.Size,
		Total:      total,
		TotalPages: (total + params.Size - 1) / params.Size,
		SortBy:     params.SortBy,
		Desc:       params.Desc,
	}
	for rows.Next() {
		var r dataset.Row
		if err := rows.Scan(&r.Country, &r.Continent, &r.Year, &r.LifeExp, &r.Pop, &r.GdpPercap); err != nil {
			return Page{}, fmt.Errorf("error scanning country: %w", err)
		}
		page.Rows = append(page.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("error iterating countries: %w", err)
	}

	return page, nil
}

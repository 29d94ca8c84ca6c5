package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"gapdash.dashboardpro.org/internal/datasetdb"
)

// ParseIntParam retrieves an int value from the provided URL query parameters.
// If the key is absent it returns def. An invalid value returns def and is
// recorded in fieldErrors.
func ParseIntParam(params url.Values, key string, def int, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return def, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return def, fieldErrors
	}
	return n, fieldErrors
}

// ParsePageParams reads page, size, sort and order for the table endpoints.
func ParsePageParams(params url.Values) (datasetdb.PageParams, map[string][]string) {
	fieldErrors := make(map[string][]string)

	var p datasetdb.PageParams
	p.Page, fieldErrors = ParseIntParam(params, "page", 1, fieldErrors)
	p.Size, fieldErrors = ParseIntParam(params, "size", datasetdb.DefaultPageSize, fieldErrors)

	p.SortBy = params.Get("sort")
	if !datasetdb.IsSortColumn(p.SortBy) {
		fieldErrors["sort"] = append(fieldErrors["sort"], fmt.Sprintf("Unknown sort column %q.", p.SortBy))
	}

	switch params.Get("order") {
	case "", "asc":
	case "desc":
		p.Desc = true
	default:
		fieldErrors["order"] = append(fieldErrors["order"], `Order must be "asc" or "desc".`)
	}

	return p.Normalize(), fieldErrors
}

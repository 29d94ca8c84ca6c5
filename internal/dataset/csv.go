package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	colCountry   = "country"
	colContinent = "continent"
	colYear      = "year"
	colLifeExp   = "lifeExp"
	colPop       = "pop"
	colGdpPercap = "gdpPercap"
)

var requiredColumns = []string{colCountry, colContinent, colLifeExp, colPop, colGdpPercap}

// ParseCSV parses the Gapminder CSV. Columns are located by header name, so their
// order does not matter and extra columns (such as a pandas index) are ignored.
// Rows that cannot be parsed are skipped and reported as warnings; a duplicate
// (country, year) or a continent outside KnownContinents fails the whole parse.
func ParseCSV(data []byte) ([]Row, []string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", col)
		}
	}
	yearIdx, hasYear := index[colYear]

	var (
		rows     []Row
		warnings []string
		seen     = make(map[string]int)
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				warnings = append(warnings, fmt.Sprintf("line %d: %v", perr.Line, perr.Err))
				continue
			}
			return nil, warnings, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(headers) {
			warnings = append(warnings, fmt.Sprintf("line %d: expected %d fields, got %d", line, len(headers), len(record)))
			continue
		}

		field := func(col string) string { return strings.TrimSpace(record[index[col]]) }

		row := Row{
			Country:   field(colCountry),
			Continent: field(colContinent),
			Year:      DefaultYear,
		}
		if row.Country == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: empty country", line))
			continue
		}

		var perr error
		if hasYear {
			row.Year, perr = strconv.Atoi(strings.TrimSpace(record[yearIdx]))
		}
		if perr == nil {
			row.LifeExp, perr = parseFloatColumn(colLifeExp, field(colLifeExp))
		}
		if perr == nil {
			row.Pop, perr = parsePopulation(field(colPop))
		}
		if perr == nil {
			row.GdpPercap, perr = parseFloatColumn(colGdpPercap, field(colGdpPercap))
		}
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("line %d (%s): %v", line, row.Country, perr))
			continue
		}

		if !IsKnownContinent(row.Continent) {
			return nil, warnings, fmt.Errorf("line %d: %w %q for %s", line, ErrUnknownContinent, row.Continent, row.Country)
		}

		key := fmt.Sprintf("%s|%d", row.Country, row.Year)
		if prev, dup := seen[key]; dup {
			return nil, warnings, fmt.Errorf("line %d: duplicate row for %s in %d (first seen on line %d)", line, row.Country, row.Year, prev)
		}
		seen[key] = line

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, warnings, errors.New("dataset contains no rows")
	}

	return rows, warnings, nil
}

// parseFloatColumn parses a float column, rejecting NaN and infinities so they
// never reach the means.
func parseFloatColumn(col, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid %s %q", col, s)
	}
	return f, nil
}

// parsePopulation accepts both integer and float notation ("31889923", "3.1889923e7").
func parsePopulation(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid population %q", s)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid population %q", s)
	}
	return int64(math.Round(f)), nil
}

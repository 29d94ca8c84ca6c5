package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const DefaultHistogramBins = 20

func (manager *Manager) LoadDuration() time.Duration {
	return manager.loadDuration
}

// MeanByContinent returns the arithmetic mean of measure for every continent,
// ordered by continent name.
func (manager *Manager) MeanByContinent(measure Measure) ([]ContinentMean, error) {
	if _, err := ParseMeasure(string(measure)); err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range manager.rows {
		sums[r.Continent] += r.Value(measure)
		counts[r.Continent]++
	}

	means := make([]ContinentMean, 0, len(sums))
	for continent, sum := range sums {
		means = append(means, ContinentMean{
			Continent: continent,
			Mean:      sum / float64(counts[continent]),
			Count:     counts[continent],
		})
	}
	sort.Slice(means, func(i, j int) bool {
		return means[i].Continent < means[j].Continent
	})

	return means, nil
}

// FindCountry returns the row for the given country.
func (manager *Manager) FindCountry(country string) (Row, error) {
	i, ok := manager.byCountry[country]
	if !ok {
		return Row{}, fmt.Errorf("%w: %q", ErrCountryNotFound, country)
	}
	return manager.rows[i], nil
}

// CountryValue returns the value of measure for the given country.
func (manager *Manager) CountryValue(country string, measure Measure) (float64, error) {
	if _, err := ParseMeasure(string(measure)); err != nil {
		return 0, err
	}
	row, err := manager.FindCountry(country)
	if err != nil {
		return 0, err
	}
	return row.Value(measure), nil
}

// FilterByContinent returns the rows of the given continent. AllContinents, "all"
// and the empty string select every row.
func (manager *Manager) FilterByContinent(continent string) ([]Row, error) {
	if IsAllContinents(continent) {
		return manager.Rows(), nil
	}
	if !IsKnownContinent(continent) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContinent, continent)
	}

	var rows []Row
	for _, r := range manager.rows {
		if r.Continent == continent {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// IsAllContinents reports whether the filter value is the "no filter" sentinel.
func IsAllContinents(continent string) bool {
	return continent == "" || continent == AllContinents || continent == "all"
}

// Distribution bins every row's value of measure and attaches the country's own
// value as the overlay.
func (manager *Manager) Distribution(measure Measure, country string) (Distribution, error) {
	overlay, err := manager.CountryValue(country, measure)
	if err != nil {
		return Distribution{}, err
	}

	values := make([]float64, len(manager.rows))
	for i, r := range manager.rows {
		values[i] = r.Value(measure)
	}

	return Distribution{
		Measure: measure,
		Country: country,
		Overlay: overlay,
		Bins:    Histogram(values, DefaultHistogramBins),
	}, nil
}

// Histogram splits [min, max] of values into nbins equal-width bins. Every bin is
// half open except the last, which also holds max.
func Histogram(values []float64, nbins int) []Bin {
	if len(values) == 0 || nbins <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(nbins)
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[nbins-1].Hi = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= nbins {
			i = nbins - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}

	return bins
}

func summarize(rows []Row, continents, countries int) Summary {
	var lifeSum, gdpSum float64
	var popSum int64
	for _, r := range rows {
		lifeSum += r.LifeExp
		gdpSum += r.GdpPercap
		popSum += r.Pop
	}

	n := float64(len(rows))
	return Summary{
		MeanLifeExp:    lifeSum / n,
		TotalPop:       popSum,
		MeanGdpPercap:  gdpSum / n,
		Rows:           len(rows),
		ContinentCount: continents,
		CountryCount:   countries,
	}
}

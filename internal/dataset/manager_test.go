package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixturePath = filepath.Join("../../testdata", "gapminder_sample.csv")

func loadFixture(t *testing.T) *Manager {
	t.Helper()
	manager, err := InitManager(context.Background(), Config{SourceURL: fixturePath})
	require.NoError(t, err)
	return manager
}

func TestInitManagerFromLocalFile(t *testing.T) {
	manager := loadFixture(t)

	assert.Equal(t, 14, manager.Len())
	assert.Equal(t, fixturePath, manager.Source())
	assert.Empty(t, manager.Warnings())
	assert.False(t, manager.LoadedAt().IsZero())
	assert.Equal(t, []string{"Asia", "Europe", "Africa", "Americas", "Oceania"}, manager.Continents())

	countries := manager.Countries()
	require.Len(t, countries, 14)
	assert.Equal(t, "Afghanistan", countries[0])
	assert.Equal(t, "New Zealand", countries[13])
}

func TestInitManagerMissingFile(t *testing.T) {
	_, err := InitManager(context.Background(), Config{SourceURL: "../../testdata/nope.csv"})
	assert.ErrorContains(t, err, "error reading local dataset file")
}

func TestNewManagerInvariants(t *testing.T) {
	_, err := NewManager("empty", nil)
	assert.Error(t, err)

	_, err = NewManager("dup", []Row{
		{Country: "Chad", Continent: "Africa", Year: 2007},
		{Country: "Chad", Continent: "Africa", Year: 2007},
	})
	assert.ErrorContains(t, err, "duplicate row")

	_, err = NewManager("continent", []Row{{Country: "Atlantis", Continent: "Lemuria", Year: 2007}})
	assert.ErrorIs(t, err, ErrUnknownContinent)
}

func TestRowsReturnsCopy(t *testing.T) {
	manager := loadFixture(t)

	rows := manager.Rows()
	rows[0].Country = "mutated"

	assert.Equal(t, "Afghanistan", manager.Rows()[0].Country)
}

func TestMeanByContinent(t *testing.T) {
	manager := loadFixture(t)

	t.Run("mean of each continent equals the mean of its rows", func(t *testing.T) {
		for _, measure := range Measures {
			means, err := manager.MeanByContinent(measure)
			require.NoError(t, err)
			require.Len(t, means, 5)

			for _, m := range means {
				rows, err := manager.FilterByContinent(m.Continent)
				require.NoError(t, err)

				var sum float64
				for _, r := range rows {
					sum += r.Value(measure)
				}
				assert.Equal(t, len(rows), m.Count)
				assert.InDelta(t, sum/float64(len(rows)), m.Mean, 1e-9, "%s %s", measure, m.Continent)
			}
		}
	})

	t.Run("life expectancy values", func(t *testing.T) {
		means, err := manager.MeanByContinent(MeasureLifeExp)
		require.NoError(t, err)

		got := make(map[string]float64)
		for _, m := range means {
			got[m.Continent] = m.Mean
		}
		assert.InDelta(t, (72.301+42.731+56.728)/3, got["Africa"], 1e-9)
		assert.InDelta(t, (75.32+65.554+80.653)/3, got["Americas"], 1e-9)
		assert.InDelta(t, (43.828+75.635+64.062)/3, got["Asia"], 1e-9)
		assert.InDelta(t, (76.423+79.829+79.441)/3, got["Europe"], 1e-9)
		assert.InDelta(t, (81.235+80.204)/2, got["Oceania"], 1e-9)
	})

	t.Run("ordered by continent name", func(t *testing.T) {
		means, err := manager.MeanByContinent(MeasurePop)
		require.NoError(t, err)

		names := make([]string, len(means))
		for i, m := range means {
			names[i] = m.Continent
		}
		assert.Equal(t, []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}, names)
	})

	t.Run("unknown measure", func(t *testing.T) {
		_, err := manager.MeanByContinent(Measure("year"))
		assert.ErrorIs(t, err, ErrUnknownMeasure)
	})
}

func TestFilterByContinent(t *testing.T) {
	manager := loadFixture(t)

	for _, sentinel := range []string{AllContinents, "all", ""} {
		rows, err := manager.FilterByContinent(sentinel)
		require.NoError(t, err)
		assert.Equal(t, manager.Rows(), rows, "sentinel %q", sentinel)
	}

	rows, err := manager.FilterByContinent("Oceania")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Australia", rows[0].Country)
	assert.Equal(t, "New Zealand", rows[1].Country)

	for _, continent := range KnownContinents {
		rows, err := manager.FilterByContinent(continent)
		require.NoError(t, err)
		for _, r := range rows {
			assert.Equal(t, continent, r.Continent)
		}
	}

	_, err = manager.FilterByContinent("oceania")
	assert.ErrorIs(t, err, ErrUnknownContinent)
}

func TestFindCountry(t *testing.T) {
	manager := loadFixture(t)

	row, err := manager.FindCountry("Canada")
	require.NoError(t, err)
	assert.Equal(t, "Americas", row.Continent)
	assert.InDelta(t, 80.653, row.LifeExp, 1e-9)
	assert.Equal(t, int64(33390141), row.Pop)

	for _, c := range manager.Countries() {
		row, err := manager.FindCountry(c)
		require.NoError(t, err)
		assert.Equal(t, c, row.Country)
	}

	_, err = manager.FindCountry("Narnia")
	assert.ErrorIs(t, err, ErrCountryNotFound)

	v, err := manager.CountryValue("Canada", MeasureGdpPercap)
	require.NoError(t, err)
	assert.InDelta(t, 36319.23501, v, 1e-9)

	_, err = manager.CountryValue("Canada", Measure("continent"))
	assert.ErrorIs(t, err, ErrUnknownMeasure)
}

func TestSummary(t *testing.T) {
	manager := loadFixture(t)
	summary := manager.Summary()

	var life, gdp float64
	for _, r := range manager.Rows() {
		life += r.LifeExp
		gdp += r.GdpPercap
	}

	assert.Equal(t, int64(366432540), summary.TotalPop)
	assert.InDelta(t, life/14, summary.MeanLifeExp, 1e-9)
	assert.InDelta(t, gdp/14, summary.MeanGdpPercap, 1e-9)
	assert.Equal(t, 14, summary.Rows)
	assert.Equal(t, 5, summary.ContinentCount)
	assert.Equal(t, 14, summary.CountryCount)
}

func TestDistribution(t *testing.T) {
	manager := loadFixture(t)

	d, err := manager.Distribution(MeasureLifeExp, "Canada")
	require.NoError(t, err)
	assert.Equal(t, MeasureLifeExp, d.Measure)
	assert.InDelta(t, 80.653, d.Overlay, 1e-9)
	require.Len(t, d.Bins, DefaultHistogramBins)

	total := 0
	for _, b := range d.Bins {
		total += b.Count
	}
	assert.Equal(t, manager.Len(), total)
	assert.InDelta(t, 42.731, d.Bins[0].Lo, 1e-9)
	assert.InDelta(t, 81.235, d.Bins[len(d.Bins)-1].Hi, 1e-9)

	_, err = manager.Distribution(MeasurePop, "Narnia")
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestHistogram(t *testing.T) {
	t.Run("max lands in last bin", func(t *testing.T) {
		bins := Histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
		require.Len(t, bins, 5)
		assert.Equal(t, 2, bins[0].Count)
		assert.Equal(t, 2, bins[1].Count)
		assert.Equal(t, 1, bins[2].Count)
		assert.Equal(t, 0, bins[3].Count)
		assert.Equal(t, 1, bins[4].Count)
		assert.InDelta(t, 10, bins[4].Hi, 1e-12)
	})

	t.Run("constant values", func(t *testing.T) {
		bins := Histogram([]float64{7, 7, 7}, 4)
		require.Len(t, bins, 4)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, 3, total)
		assert.InDelta(t, 6.5, bins[0].Lo, 1e-12)
		assert.InDelta(t, 7.5, bins[3].Hi, 1e-12)
		assert.Equal(t, 3, bins[2].Count, "values land in the middle bin")
	})

	t.Run("degenerate input", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 20))
		assert.Nil(t, Histogram([]float64{1}, 0))
	})
}

func TestParseMeasure(t *testing.T) {
	for _, m := range Measures {
		got, err := ParseMeasure(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.NotEmpty(t, m.Insight())
		assert.NotEmpty(t, m.Label())
	}

	_, err := ParseMeasure("LIFEEXP")
	assert.ErrorIs(t, err, ErrUnknownMeasure)
}

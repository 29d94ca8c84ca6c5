package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"gapdash.dashboardpro.org/internal/logging"
)

// Manager holds the dataset snapshot loaded at startup. It is never mutated after
// construction, so all methods are safe for concurrent use without locking.
type Manager struct {
	source       string
	rows         []Row
	byCountry    map[string]int
	continents   []string
	countries    []string
	summary      Summary
	warnings     []string
	loadedAt     time.Time
	loadDuration time.Duration
}

// InitManager downloads and parses the dataset from config.SourceURL, which may be an
// http(s) URL, an s3://bucket/key URI or a local file path.
func InitManager(ctx context.Context, config Config) (*Manager, error) {
	start := time.Now()

	if config.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.LoadTimeout)
		defer cancel()
	}

	b, err := rawDatasetData(ctx, config)
	if err != nil {
		return nil, err
	}

	rows, warnings, err := ParseCSV(b)
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset: %w", err)
	}

	manager, err := NewManager(config.SourceURL, rows)
	if err != nil {
		return nil, err
	}
	manager.warnings = warnings
	manager.loadDuration = time.Since(start)

	return manager, nil
}

// NewManager builds a Manager over already parsed rows, enforcing the dataset
// invariants: at least one row, unique (country, year) and a known continent.
func NewManager(source string, rows []Row) (*Manager, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s contains no rows", source)
	}

	manager := &Manager{
		source:    source,
		rows:      slices.Clone(rows),
		byCountry: make(map[string]int, len(rows)),
		loadedAt:  time.Now(),
	}

	seenYear := make(map[string]bool, len(rows))
	seenContinent := make(map[string]bool)
	for i, r := range manager.rows {
		if !IsKnownContinent(r.Continent) {
			return nil, fmt.Errorf("%w %q for %s", ErrUnknownContinent, r.Continent, r.Country)
		}
		key := fmt.Sprintf("%s|%d", r.Country, r.Year)
		if seenYear[key] {
			return nil, fmt.Errorf("duplicate row for %s in %d", r.Country, r.Year)
		}
		seenYear[key] = true

		if _, ok := manager.byCountry[r.Country]; !ok {
			manager.byCountry[r.Country] = i
			manager.countries = append(manager.countries, r.Country)
		}
		if !seenContinent[r.Continent] {
			seenContinent[r.Continent] = true
			manager.continents = append(manager.continents, r.Continent)
		}
	}

	manager.summary = summarize(manager.rows, len(manager.continents), len(manager.countries))

	return manager, nil
}

func (manager *Manager) Source() string {
	return manager.source
}

func (manager *Manager) LoadedAt() time.Time {
	return manager.loadedAt
}

func (manager *Manager) Len() int {
	return len(manager.rows)
}

// Rows returns a copy of all rows in dataset order.
func (manager *Manager) Rows() []Row {
	return slices.Clone(manager.rows)
}

// Continents returns the continents in order of first appearance.
func (manager *Manager) Continents() []string {
	return slices.Clone(manager.continents)
}

// Countries returns the country names in dataset order.
func (manager *Manager) Countries() []string {
	return slices.Clone(manager.countries)
}

func (manager *Manager) Summary() Summary {
	return manager.summary
}

// Warnings returns the parse warnings for rows skipped at load time.
func (manager *Manager) Warnings() []string {
	return slices.Clone(manager.warnings)
}

// PrintStatistics logs a one-line description of the loaded snapshot.
func (manager *Manager) PrintStatistics(logger *slog.Logger) {
	logging.LogOperation(logger, "dataset_loaded",
		slog.String("source", manager.source),
		slog.String("source_kind", string(ClassifySource(manager.source))),
		slog.Int("rows", len(manager.rows)),
		slog.Int("countries", len(manager.countries)),
		slog.Int("continents", len(manager.continents)),
		slog.Int("warnings", len(manager.warnings)),
		slog.Duration("duration", manager.loadDuration),
		slog.Time("loaded_at", manager.loadedAt))

	for _, w := range manager.warnings {
		logger.Warn("dataset_row_skipped", slog.String("detail", w))
	}
}

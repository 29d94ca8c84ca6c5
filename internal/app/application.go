package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gapdash.dashboardpro.org/internal/appconf"
	"gapdash.dashboardpro.org/internal/charts"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/datasetdb"
	"gapdash.dashboardpro.org/internal/metrics"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. Everything in it is read-only once New returns.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Dataset   *dataset.Manager
	DB        *datasetdb.Client
	Charts    *charts.Renderer
	StartedAt time.Time
}

// New loads the dataset, mirrors it into SQLite and prepares the chart renderer.
func New(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	manager, err := dataset.InitManager(ctx, dataset.Config{
		SourceURL:   cfg.DatasetURL,
		LoadTimeout: cfg.LoadTimeout,
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}
	manager.PrintStatistics(logger)
	metrics.DatasetRows.Set(float64(manager.Len()))
	metrics.DatasetLoadSeconds.Set(manager.LoadDuration().Seconds())

	db, err := datasetdb.NewClient(datasetdb.NewConfig(cfg.DBPath, cfg.Env, logger))
	if err != nil {
		return nil, err
	}
	if err := db.ImportRows(ctx, manager.Rows()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error mirroring dataset: %w", err)
	}
	logger.Info("dataset mirrored",
		slog.String("db_path", cfg.DBPath),
		slog.Int("rows", manager.Len()),
		slog.Duration("import_runtime", db.ImportRuntime()))

	renderer, err := charts.NewRenderer(cfg.RenderCacheSize, charts.DefaultSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Dataset:   manager,
		DB:        db,
		Charts:    renderer,
		StartedAt: time.Now(),
	}, nil
}

func (app *Application) Close() error {
	if app.DB == nil {
		return nil
	}
	return app.DB.Close()
}

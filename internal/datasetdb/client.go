package datasetdb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gapdash.dashboardpro.org/internal/appconf"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/logging"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var ddl string

// Config holds configuration options for the Client
type Config struct {
	DBPath string // Path to SQLite database file, ":memory:" for an in-process mirror
	Env    appconf.Environment
	Logger *slog.Logger
}

func NewConfig(dbPath string, env appconf.Environment, logger *slog.Logger) Config {
	return Config{
		DBPath: dbPath,
		Env:    env,
		Logger: logger,
	}
}

// Client is a read-mostly SQLite mirror of the dataset used to serve the table view
type Client struct {
	config        Config
	DB            *sql.DB
	importRuntime time.Duration
}

// NewClient opens the database and applies the schema
func NewClient(config Config) (*Client, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("refusing to create file database %q in test environment", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return &Client{
		config: config,
		DB:     db,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportRuntime reports how long the last ImportRows call took
func (c *Client) ImportRuntime() time.Duration {
	return c.importRuntime
}

// ImportRows replaces the mirrored table with rows, preserving dataset order
func (c *Client) ImportRows(ctx context.Context, rows []dataset.Row) (err error) {
	startTime := time.Now()
	defer func() {
		c.importRuntime = time.Since(startTime)
		if err == nil {
			logging.LogOperation(c.logger(), "dataset_mirrored",
				slog.Int("rows", len(rows)),
				slog.String("db_path", c.config.DBPath),
				slog.Duration("duration", c.importRuntime))
		}
	}()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger(), "import_rows")

	if _, err := tx.ExecContext(ctx, `DELETE FROM countries`); err != nil {
		return fmt.Errorf("error clearing countries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO countries (
			country, continent, year, life_exp, pop, gdp_percap, position
		) VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger(), "import_rows_stmt")

	for i, r := range rows {
		_, err := stmt.ExecContext(ctx, r.Country, r.Continent, r.Year, r.LifeExp, r.Pop, r.GdpPercap, i)
		if err != nil {
			return fmt.Errorf("error inserting %s: %w", r.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (c *Client) logger() *slog.Logger {
	if c.config.Logger != nil {
		return c.config.Logger
	}
	return slog.Default()
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

package config

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database. The
// schema mirrors the YAML layout: a single-row pipeline_config table and an
// optional results_config table.
func (s *SQLiteProvider) LoadConfig() (*Data, error) {
	data := &Data{}

	row := s.db.QueryRow(`
		SELECT range_max, outlier_filter, unmatched
		FROM pipeline_config
		WHERE name = 'default'
	`)
	err := row.Scan(&data.Pipeline.RangeMax, &data.Pipeline.OutlierFilter, &data.Pipeline.Unmatched)
	switch {
	case err == sql.ErrNoRows || isMissingTable(err):
		// No stored pipeline row: fall through to defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to load pipeline config: %w", err)
	}

	var database string
	row = s.db.QueryRow(`SELECT database FROM results_config WHERE name = 'default'`)
	err = row.Scan(&database)
	switch {
	case err == nil:
		data.Results = &ResultsData{Database: database}
	case err == sql.ErrNoRows || isMissingTable(err):
		// The results section is optional.
	default:
		return nil, fmt.Errorf("failed to load results config: %w", err)
	}

	return applyDefaults(data), nil
}

// isMissingTable reports whether err is SQLite's "no such table" error.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// IsReadOnly returns false; SQLite configuration can be managed in place.
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection.
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}

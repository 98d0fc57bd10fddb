// Package resultstore persists pipeline runs and their per-plot statistics
// to a local SQLite database for downstream phenotyping queries.
package resultstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/croplab/phenopipe/internal/log"
	"github.com/croplab/phenopipe/internal/pipeline"
)

// Store holds the connection to the run-history database
type Store struct {
	DB *gorm.DB
}

// Open connects to (or creates) the run-history database at path and
// migrates its schema.
func Open(path string) (*Store, error) {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to open run-history database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}, &PlotRecord{}); err != nil {
		return nil, fmt.Errorf("unable to migrate run-history schema: %w", err)
	}

	return &Store{DB: db}, nil
}

// RecordRun stores a completed pipeline run and its plot statistics in a
// single transaction and returns the generated run ID.
func (s *Store) RecordRun(inputFile, outputDir string, opts pipeline.Options, result *pipeline.Result, startedAt time.Time) (string, error) {
	run := Run{
		ID:            uuid.New().String(),
		InputFile:     inputFile,
		OutputDir:     outputDir,
		RangeMax:      opts.RangeMax,
		OutlierFilter: opts.OutlierFilter,
		Unmatched:     string(opts.Unmatched),
		Measurements:  result.Measurements,
		UnmatchedRows: result.Unmatched,
		Plots:         len(result.Statistics),
		Status:        "completed",
		StartedAt:     startedAt,
		CompletedAt:   time.Now(),
	}

	records := make([]PlotRecord, 0, len(result.Statistics))
	for i, st := range result.Statistics {
		norm := result.Normalized[i]
		records = append(records, PlotRecord{
			RunID:         run.ID,
			PlotID:        st.PlotID,
			Count:         st.Count,
			Mean:          st.Mean,
			StdDev:        st.StdDev,
			CVPercent:     st.CVPercent,
			Entropy:       st.Entropy,
			NormStdDev:    norm.StdDev,
			NormCVPercent: norm.CVPercent,
			NormEntropy:   norm.Entropy,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("failed to insert plot records: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return run.ID, nil
}

// RecordFailure stores a failed pipeline run with its error message.
func (s *Store) RecordFailure(inputFile, outputDir string, opts pipeline.Options, runErr error, startedAt time.Time) (string, error) {
	run := Run{
		ID:            uuid.New().String(),
		InputFile:     inputFile,
		OutputDir:     outputDir,
		RangeMax:      opts.RangeMax,
		OutlierFilter: opts.OutlierFilter,
		Unmatched:     string(opts.Unmatched),
		Status:        "failed",
		Error:         runErr.Error(),
		StartedAt:     startedAt,
		CompletedAt:   time.Now(),
	}

	if err := s.DB.Create(&run).Error; err != nil {
		return "", fmt.Errorf("failed to insert failed run: %w", err)
	}
	return run.ID, nil
}

// RunPlots returns the stored plot records for a run, ordered by plot ID.
func (s *Store) RunPlots(runID string) ([]PlotRecord, error) {
	var records []PlotRecord
	if err := s.DB.Where("run_id = ?", runID).Order("plot_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query plot records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timmy/movierec/internal/catalog"
	"github.com/timmy/movierec/internal/domain"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/source"
	"github.com/timmy/movierec/internal/storage"
)

// MovieWriter replaces the stored catalog.
type MovieWriter interface {
	ReplaceAll(ctx context.Context, movies []domain.Movie) error
}

// IngestStats summarizes an import or publish run.
type IngestStats struct {
	Source     string `json:"source"`
	Movies     int    `json:"movies"`
	Duplicates int    `json:"duplicates"`
	Bytes      int64  `json:"bytes,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// IngestService copies a catalog dataset into the database or object storage,
// where the API later reads it from at startup.
type IngestService struct {
	writer  MovieWriter
	storage storage.ObjectStorage
	logger  *logger.Logger
}

// NewIngestService creates a new ingest service. Either dependency may be nil
// when the matching operation is not used.
// Parameters:
//   - writer: movie table writer for ImportCatalog.
//   - objectStorage: bucket client for PublishFile.
//   - log: logger instance.
//
// Returns:
//   - *IngestService: initialized service.
func NewIngestService(writer MovieWriter, objectStorage storage.ObjectStorage, log *logger.Logger) *IngestService {
	if log == nil {
		log = logger.GetDefault()
	}
	return &IngestService{
		writer:  writer,
		storage: objectStorage,
		logger:  log.WithField(logger.FieldComponent, "ingest"),
	}
}

// ImportCatalog validates src through the catalog loader and replaces the
// movies table with its rows, keeping dataset order.
func (s *IngestService) ImportCatalog(ctx context.Context, src source.Source) (*IngestStats, error) {
	if s.writer == nil {
		return nil, fmt.Errorf("ingest: no database configured")
	}
	start := time.Now()

	c, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	records := c.Records()
	movies := make([]domain.Movie, len(records))
	for i, r := range records {
		m := domain.Movie{
			Position:   r.ID,
			ExternalID: r.ExternalID,
			Title:      r.Title,
			Rating:     r.Rating,
		}
		if r.Overview != "" {
			overview := r.Overview
			m.Overview = &overview
		}
		movies[i] = m
	}

	if err := s.writer.ReplaceAll(ctx, movies); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}

	stats := &IngestStats{
		Source:     src.GetSourceID(),
		Movies:     len(movies),
		Duplicates: c.Duplicates(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	s.logger.WithFields(logger.Fields{
		logger.FieldSource:     stats.Source,
		logger.FieldCount:      stats.Movies,
		logger.FieldDurationMs: stats.DurationMs,
	}).Info("Catalog imported into database")
	return stats, nil
}

// PublishFile validates the CSV at path and uploads it to object storage under key.
func (s *IngestService) PublishFile(ctx context.Context, path, key string) (*IngestStats, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("publish: no object storage configured")
	}
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := source.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	c, err := catalog.Load(ctx, source.NewMemorySource(filepath.Base(path), table))
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", path, err)
	}
	if err := s.storage.Upload(ctx, key, f, info.Size(), "text/csv"); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	stats := &IngestStats{
		Source:     key,
		Movies:     c.Len(),
		Duplicates: c.Duplicates(),
		Bytes:      info.Size(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	s.logger.WithFields(logger.Fields{
		"key":                  key,
		logger.FieldCount:      stats.Movies,
		logger.FieldDurationMs: stats.DurationMs,
	}).Info("Catalog published to object storage")
	return stats, nil
}

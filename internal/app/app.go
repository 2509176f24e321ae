// Package app wires configuration into the catalog source, recommender engine,
// poster resolver and services shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/timmy/movierec/internal/config"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/poster"
	"github.com/timmy/movierec/internal/recommend"
	"github.com/timmy/movierec/internal/repository"
	"github.com/timmy/movierec/internal/service"
	"github.com/timmy/movierec/internal/source"
	"github.com/timmy/movierec/internal/source/csvfile"
	"github.com/timmy/movierec/internal/source/database"
	"github.com/timmy/movierec/internal/source/objectstore"
	"github.com/timmy/movierec/internal/storage"
	"gorm.io/gorm"
)

// App holds the initialized, read-only application state.
type App struct {
	Config    *config.Config
	Engine    *recommend.Engine
	Resolver  poster.Resolver
	Recommend *service.RecommendService

	closers []func() error
}

// New loads the configured catalog and builds every service.
// A bad catalog is reported as *catalog.LoadError.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	a := &App{Config: cfg}

	src, err := a.NewSource()
	if err != nil {
		a.Close()
		return nil, err
	}
	log.WithFields(logger.Fields{
		logger.FieldSource: src.GetSourceID(),
		"display_name":     src.GetDisplayName(),
	}).Info("Loading catalog")

	engine, err := recommend.Initialize(ctx, src, recommend.Options{Workers: cfg.Recommend.Workers})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Engine = engine
	a.Resolver = NewResolver(&cfg.TMDB)
	a.Recommend = service.NewRecommendService(engine, a.Resolver, log, &service.RecommendConfig{
		DefaultTopN:       cfg.Recommend.DefaultTopN,
		MaxTopN:           cfg.Recommend.MaxTopN,
		ResolvePosters:    cfg.Recommend.ResolvePosters,
		PosterConcurrency: cfg.TMDB.Concurrency,
		Placeholder:       cfg.TMDB.Placeholder,
	})
	return a, nil
}

// NewResolver builds the poster resolver from the TMDB settings.
func NewResolver(cfg *config.TMDBConfig) poster.Resolver {
	return poster.NewResolver(&poster.TMDBConfig{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		ImageBaseURL:      cfg.ImageBaseURL,
		PosterSize:        cfg.PosterSize,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		BreakerFailures:   cfg.BreakerFailures,
		BreakerCooldown:   cfg.BreakerCooldown,
	})
}

// NewSource returns the catalog source selected by catalog.source.
func (a *App) NewSource() (source.Source, error) {
	cfg := a.Config
	switch cfg.Catalog.Source {
	case config.SourceCSV:
		return csvfile.NewAdapter(cfg.Catalog.Path), nil
	case config.SourceS3:
		store, err := storage.NewStorage(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return objectstore.NewAdapter(store, cfg.Catalog.Key), nil
	case config.SourceDatabase:
		repo, err := a.MovieRepository()
		if err != nil {
			return nil, err
		}
		return database.NewAdapter(repo), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

// MovieRepository opens the configured database. The connection is closed by Close.
func (a *App) MovieRepository() (*repository.MovieRepository, error) {
	db, err := repository.InitDB(&a.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.closers = append(a.closers, closeDB(db))
	return repository.NewMovieRepository(db), nil
}

func closeDB(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}

// Close releases database connections opened while building the app.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

package repository

import (
	"context"
	"fmt"

	"github.com/timmy/movierec/internal/domain"
	"gorm.io/gorm"
)

const importBatchSize = 500

// MovieRepository reads and replaces the persisted movie catalog.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new MovieRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MovieRepository: repository instance bound to db.
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ListOrdered returns every movie row in catalog order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Movie: all rows sorted by position.
//   - error: non-nil if the query fails.
func (r *MovieRepository) ListOrdered(ctx context.Context) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// Count returns the number of stored movie rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: row count.
//   - error: non-nil if the query fails.
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Movie{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceAll atomically swaps the stored catalog for movies.
// Positions are reassigned from slice order so the table mirrors the import file.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - movies: rows to store, in catalog order.
// Returns:
//   - error: non-nil if the transaction fails.
func (r *MovieRepository) ReplaceAll(ctx context.Context, movies []domain.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Movie{}).Error; err != nil {
			return fmt.Errorf("failed to clear movies: %w", err)
		}
		if len(movies) == 0 {
			return nil
		}
		rows := make([]domain.Movie, len(movies))
		for i, m := range movies {
			m.ID = 0
			m.Position = i
			rows[i] = m
		}
		if err := tx.CreateInBatches(rows, importBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert movies: %w", err)
		}
		return nil
	})
}

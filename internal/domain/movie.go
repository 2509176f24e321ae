package domain

import "time"

// MovieRecord is one row of the loaded catalog.
// ID is the 0-based position in load order and doubles as the row index of
// every derived structure (term vectors, similarity matrix).
type MovieRecord struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Overview   string   `json:"overview"`
	Rating     *float64 `json:"rating"`
	ExternalID string   `json:"external_id,omitempty"`
}

// HasRating reports whether the record carries a numeric rating.
func (m MovieRecord) HasRating() bool {
	return m.Rating != nil
}

// Movie is the persisted catalog row read by the database source.
// Position preserves the dataset order so that ids stay stable across loads.
type Movie struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Position   int       `gorm:"not null;uniqueIndex:idx_movies_position" json:"position"`
	ExternalID string    `gorm:"type:text;index:idx_movies_external_id" json:"external_id"`
	Title      string    `gorm:"type:text;not null;index:idx_movies_title" json:"title"`
	Overview   *string   `gorm:"type:text" json:"overview"`
	Rating     *float64  `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for Movie.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Movie) TableName() string {
	return "movies"
}

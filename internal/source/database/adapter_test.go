package database

import (
	"context"
	"errors"
	"testing"

	"github.com/timmy/movierec/internal/domain"
)

type fakeLister struct {
	movies []domain.Movie
	err    error
}

func (f *fakeLister) ListOrdered(ctx context.Context) ([]domain.Movie, error) {
	return f.movies, f.err
}

func TestAdapter_Fetch(t *testing.T) {
	overview := "A spy thriller"
	rating := 6.5
	lister := &fakeLister{movies: []domain.Movie{
		{Position: 0, ExternalID: "19995", Title: "Alpha", Overview: &overview, Rating: &rating},
		{Position: 1, Title: "Beta"},
	}}

	table, err := NewAdapter(lister).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	ratingCol := table.ColumnIndex("rating")
	if v, ok := table.Rows[0].Get(ratingCol); !ok || v != "6.5" {
		t.Errorf("row 0 rating = %q, %v; want 6.5", v, ok)
	}
	if _, ok := table.Rows[1].Get(table.ColumnIndex("overview")); ok {
		t.Error("NULL overview should be missing")
	}
	if _, ok := table.Rows[1].Get(ratingCol); ok {
		t.Error("NULL rating should be missing")
	}
}

func TestAdapter_FetchError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewAdapter(&fakeLister{err: boom}).Fetch(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Fetch() error = %v, want wrapped %v", err, boom)
	}
}

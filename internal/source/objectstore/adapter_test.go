package objectstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/timmy/movierec/internal/storage"
)

func TestAdapter_Fetch(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	body := "title,overview\nAlpha,spy thriller\n"
	if err := store.Upload(ctx, "catalog/movies.csv", strings.NewReader(body), int64(len(body)), "text/csv"); err != nil {
		t.Fatal(err)
	}

	a := NewAdapter(store, "catalog/movies.csv")
	table, err := a.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestAdapter_FetchMissingObject(t *testing.T) {
	a := NewAdapter(storage.NewMemoryStorage(), "absent.csv")
	if _, err := a.Fetch(context.Background()); !errors.Is(err, storage.ErrObjectNotFound) {
		t.Errorf("Fetch() error = %v, want ErrObjectNotFound", err)
	}
}

package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/timmy/movierec/internal/catalog"
	"github.com/timmy/movierec/internal/domain"
	"github.com/timmy/movierec/internal/source"
	"github.com/timmy/movierec/internal/source/objectstore"
	"github.com/timmy/movierec/internal/storage"
)

type fakeWriter struct {
	movies []domain.Movie
}

func (f *fakeWriter) ReplaceAll(ctx context.Context, movies []domain.Movie) error {
	f.movies = movies
	return nil
}

const sampleCSV = "id,title,overview,vote_average\n" +
	"1,Alpha,a spy thriller about espionage,7.1\n" +
	"2,Beta,,\n" +
	"3,Alpha,\"quoted, overview\",5\n"

func TestImportCatalog(t *testing.T) {
	w := &fakeWriter{}
	svc := NewIngestService(w, nil, nil)
	table, err := source.ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	stats, err := svc.ImportCatalog(context.Background(), source.NewMemorySource("sample", table))
	if err != nil {
		t.Fatalf("ImportCatalog() error = %v", err)
	}
	if stats.Movies != 3 || stats.Duplicates != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(w.movies) != 3 {
		t.Fatalf("stored %d movies", len(w.movies))
	}
	if w.movies[1].Overview != nil || w.movies[1].Rating != nil {
		t.Errorf("Beta = %+v, want nil overview and rating", w.movies[1])
	}
	if w.movies[2].Position != 2 || *w.movies[2].Overview != "quoted, overview" {
		t.Errorf("third row = %+v", w.movies[2])
	}
}

func TestImportCatalog_RejectsBadHeader(t *testing.T) {
	svc := NewIngestService(&fakeWriter{}, nil, nil)
	src := source.NewMemorySource("bad", &source.Table{Header: []string{"name"}})
	_, err := svc.ImportCatalog(context.Background(), src)
	var loadErr *catalog.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("error = %v, want *catalog.LoadError", err)
	}

	if _, err := NewIngestService(nil, nil, nil).ImportCatalog(context.Background(), src); err == nil {
		t.Error("ImportCatalog without a database should fail")
	}
}

func TestPublishFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	store := storage.NewMemoryStorage()
	svc := NewIngestService(nil, store, nil)

	stats, err := svc.PublishFile(context.Background(), path, "catalog/movies.csv")
	if err != nil {
		t.Fatalf("PublishFile() error = %v", err)
	}
	if stats.Movies != 3 || stats.Bytes != int64(len(sampleCSV)) {
		t.Errorf("stats = %+v", stats)
	}

	c, err := catalog.Load(context.Background(), objectstore.NewAdapter(store, "catalog/movies.csv"))
	if err != nil {
		t.Fatalf("reading published object: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("published catalog has %d movies", c.Len())
	}
}

func TestPublishFile_InvalidCSVNotUploaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("name,year\nx,1999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := storage.NewMemoryStorage()
	if _, err := NewIngestService(nil, store, nil).PublishFile(context.Background(), path, "k"); err == nil {
		t.Fatal("PublishFile() should reject a CSV without title/overview")
	}
	if ok, _ := store.Exists(context.Background(), "k"); ok {
		t.Error("invalid CSV should not be uploaded")
	}
}

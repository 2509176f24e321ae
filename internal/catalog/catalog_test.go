package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/timmy/movierec/internal/source"
)

func tableSource(header []string, rows ...source.Row) source.Source {
	return source.NewMemorySource("test", &source.Table{Header: header, Rows: rows})
}

func TestLoad_NormalizesRows(t *testing.T) {
	src := tableSource(
		[]string{"id", "title", "overview", "vote_average"},
		source.Row{"19995", "Avatar", "A paraplegic Marine", "7.2"},
		source.Row{"", "Untold", "", ""},
		source.Row{"3", "Broken", "Has text", "n/a"},
	)

	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	avatar, _ := c.Record(0)
	if avatar.ID != 0 || avatar.ExternalID != "19995" {
		t.Errorf("record 0 = %+v", avatar)
	}
	if avatar.Rating == nil || *avatar.Rating != 7.2 {
		t.Errorf("record 0 rating = %v, want 7.2 from vote_average", avatar.Rating)
	}

	untold, _ := c.Record(1)
	if untold.Overview != "" || untold.Rating != nil {
		t.Errorf("record 1 = %+v, want empty overview and nil rating", untold)
	}

	broken, _ := c.Record(2)
	if broken.Rating != nil {
		t.Errorf("non-numeric rating parsed as %v, want nil", *broken.Rating)
	}
}

func TestLoad_PrefersRatingColumn(t *testing.T) {
	src := tableSource(
		[]string{"title", "overview", "vote_average", "rating"},
		source.Row{"A", "x", "1.0", "9.5"},
	)
	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := c.Record(0)
	if r.Rating == nil || *r.Rating != 9.5 {
		t.Errorf("rating = %v, want 9.5", r.Rating)
	}
}

func TestLoad_MissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
	}{
		{"no title", []string{"overview"}},
		{"no overview", []string{"title", "rating"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tableSource(tt.header))
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("Load() error = %v, want *LoadError", err)
			}
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("Load() error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestLoad_UnreadableSource(t *testing.T) {
	_, err := Load(context.Background(), source.NewMemorySource("nil", nil))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
}

func TestLoad_EmptyTable(t *testing.T) {
	c, err := Load(context.Background(), tableSource([]string{"title", "overview"}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Lookup(""); ok {
		t.Error("Lookup on empty catalog should miss")
	}
}

func TestCatalog_LookupDuplicatesAndCase(t *testing.T) {
	src := tableSource(
		[]string{"title", "overview"},
		source.Row{"Heat", "first"},
		source.Row{"Up", "second"},
		source.Row{"Heat", "remake"},
	)
	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	if id, ok := c.Lookup("Heat"); !ok || id != 0 {
		t.Errorf("Lookup(Heat) = %d, %v; want 0, true", id, ok)
	}
	if _, ok := c.Lookup("heat"); ok {
		t.Error("Lookup must be case-sensitive")
	}
	if c.Duplicates() != 1 {
		t.Errorf("Duplicates() = %d, want 1", c.Duplicates())
	}

	titles := c.Titles()
	if len(titles) != 3 || titles[2] != "Heat" {
		t.Errorf("Titles() = %v", titles)
	}
	if ov := c.Overviews(); ov[2] != "remake" {
		t.Errorf("Overviews()[2] = %q", ov[2])
	}
}

func TestCatalog_RecordsIsCopy(t *testing.T) {
	c, _ := Load(context.Background(), tableSource([]string{"title", "overview"}, source.Row{"A", "x"}))
	recs := c.Records()
	recs[0].Title = "mutated"
	if r, _ := c.Record(0); r.Title != "A" {
		t.Error("Records() must return a copy")
	}
	if _, ok := c.Record(5); ok {
		t.Error("Record(out of range) should report false")
	}
}

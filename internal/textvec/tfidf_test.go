package textvec

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"lowercases and drops stopwords", "The Spy and THE Thriller", []string{"spy", "thriller"}},
		{"drops single characters", "a b cd 7 42", []string{"cd", "42"}},
		{"punctuation splits", "well-known, high_speed chase!", []string{"known", "high_speed", "chase"}},
		{"unicode letters", "Amélie à Paris", []string{"amélie", "paris"}},
		{"non-decimal numerals", "8½ weeks, e=mc², Rocky Ⅱ", []string{"8½", "weeks", "mc²", "rocky"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFit_VocabularySortedAndIDF(t *testing.T) {
	vocab, vectors := Fit([]string{
		"a spy thriller about espionage",
		"a romantic espionage drama",
		"a cooking documentary",
	})
	want := []string{"cooking", "documentary", "drama", "espionage", "romantic", "spy", "thriller"}
	if !reflect.DeepEqual(vocab.Terms(), want) {
		t.Fatalf("Terms() = %v, want %v", vocab.Terms(), want)
	}
	if len(vectors) != 3 {
		t.Fatalf("len(vectors) = %d, want 3", len(vectors))
	}

	esp, _ := vocab.Index("espionage")
	spy, _ := vocab.Index("spy")
	wantEsp := math.Log(4.0/3.0) + 1
	wantSpy := math.Log(4.0/2.0) + 1
	if math.Abs(vocab.IDF(esp)-wantEsp) > 1e-12 {
		t.Errorf("IDF(espionage) = %v, want %v", vocab.IDF(esp), wantEsp)
	}
	if math.Abs(vocab.IDF(spy)-wantSpy) > 1e-12 {
		t.Errorf("IDF(spy) = %v, want %v", vocab.IDF(spy), wantSpy)
	}
	if vocab.IDF(-1) != 0 || vocab.Term(99) != "" {
		t.Error("out-of-range lookups should return zero values")
	}
}

func TestFit_UnitNormalization(t *testing.T) {
	_, vectors := Fit([]string{
		"space space pirates fight",
		"pirates of the ocean",
		"",
		"the and of",
	})
	for i, v := range vectors {
		if v.IsZero() {
			continue
		}
		if n := v.Norm(); math.Abs(n-1) > 1e-6 {
			t.Errorf("vector %d norm = %v, want 1", i, n)
		}
	}
	if !vectors[2].IsZero() {
		t.Error("empty overview should produce the zero vector")
	}
	if !vectors[3].IsZero() {
		t.Error("stopword-only overview should produce the zero vector")
	}
	if n := vectors[2].Norm(); math.IsNaN(n) || n != 0 {
		t.Errorf("zero vector norm = %v, want 0", n)
	}
}

func TestFit_Deterministic(t *testing.T) {
	docs := []string{"alien invasion earth", "earth defense force", "alien love story"}
	v1, a := Fit(docs)
	v2, b := Fit(docs)
	if !reflect.DeepEqual(v1.Terms(), v2.Terms()) {
		t.Fatal("vocabulary order differs between runs")
	}
	for i := range a {
		if !reflect.DeepEqual(a[i].Entries(), b[i].Entries()) {
			t.Errorf("vector %d differs between runs", i)
		}
	}
}

func TestTermVector_DotAndWeight(t *testing.T) {
	a := NewTermVector(map[int]float64{0: 1, 2: 2, 5: 3})
	b := NewTermVector(map[int]float64{2: 4, 3: 1, 5: 1, 7: 0})
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := b.Dot(a); got != 11 {
		t.Errorf("Dot reversed = %v, want 11", got)
	}
	if b.Len() != 3 {
		t.Errorf("zero weight kept, Len = %d", b.Len())
	}
	if a.Weight(2) != 2 || a.Weight(4) != 0 {
		t.Errorf("Weight lookups wrong: %v %v", a.Weight(2), a.Weight(4))
	}
	if (TermVector{}).Dot(a) != 0 {
		t.Error("zero vector dot should be 0")
	}
}

func TestTransformAndTopTerms(t *testing.T) {
	vocab, vectors := Fit([]string{
		"heist crew heist vault",
		"vault of secrets",
	})
	got := vocab.TopTerms(vectors[0], 2)
	if len(got) != 2 || got[0].Term != "heist" {
		t.Fatalf("TopTerms = %+v, want heist first", got)
	}

	v := vocab.Transform("Heist of an unknown word vault")
	if v.IsZero() {
		t.Fatal("Transform should keep vocabulary terms")
	}
	if _, ok := vocab.Index("unknown"); ok {
		t.Fatal("unknown should not be in the vocabulary")
	}
	if math.Abs(v.Norm()-1) > 1e-9 {
		t.Errorf("Transform norm = %v, want 1", v.Norm())
	}
	if len(vocab.TopTerms(TermVector{}, 3)) != 0 {
		t.Error("TopTerms of zero vector should be empty")
	}
}

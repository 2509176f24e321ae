package textvec

import (
	"math"
	"sort"
)

// Entry is one non-zero dimension of a TermVector.
type Entry struct {
	Dim    int
	Weight float64
}

// TermVector is a sparse vector over the vocabulary. Entries are sorted by
// ascending Dim and hold only non-zero weights.
type TermVector struct {
	entries []Entry
}

// NewTermVector builds a vector from a dimension to weight map.
// Zero weights are dropped.
func NewTermVector(weights map[int]float64) TermVector {
	entries := make([]Entry, 0, len(weights))
	for dim, w := range weights {
		if w == 0 {
			continue
		}
		entries = append(entries, Entry{Dim: dim, Weight: w})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Dim < entries[j].Dim })
	return TermVector{entries: entries}
}

// Entries returns a copy of the non-zero entries in dimension order.
func (v TermVector) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Len returns the number of non-zero dimensions.
func (v TermVector) Len() int {
	return len(v.entries)
}

// IsZero reports whether every weight is zero.
func (v TermVector) IsZero() bool {
	return len(v.entries) == 0
}

// Weight returns the weight at dim, or 0.
func (v TermVector) Weight(dim int) float64 {
	i := sort.Search(len(v.entries), func(i int) bool { return v.entries[i].Dim >= dim })
	if i < len(v.entries) && v.entries[i].Dim == dim {
		return v.entries[i].Weight
	}
	return 0
}

// Norm returns the Euclidean length.
func (v TermVector) Norm() float64 {
	var sum float64
	for _, e := range v.entries {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product, merging both sorted entry lists.
func (v TermVector) Dot(o TermVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.entries) && j < len(o.entries) {
		a, b := v.entries[i], o.entries[j]
		switch {
		case a.Dim == b.Dim:
			sum += a.Weight * b.Weight
			i++
			j++
		case a.Dim < b.Dim:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalized scales v to unit length. The zero vector is returned unchanged.
func (v TermVector) normalized() TermVector {
	n := v.Norm()
	if n == 0 {
		return TermVector{}
	}
	out := make([]Entry, len(v.entries))
	for i, e := range v.entries {
		out[i] = Entry{Dim: e.Dim, Weight: e.Weight / n}
	}
	return TermVector{entries: out}
}

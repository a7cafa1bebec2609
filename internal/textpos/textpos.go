// Package textpos converts between the position spaces a piece of text can be
// indexed in. Ranges are expressed in Unicode code points (runes); an Index
// maps them to UTF-8 byte offsets, UTF-16 code unit offsets and grapheme
// cluster offsets.
package textpos

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Range is a half-open [Start, End) span of rune offsets.
type Range struct {
	Start int
	End   int
}

// Span builds a Range from a start offset and a length.
func Span(start, length int) Range { return Range{Start: start, End: start + length} }

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Empty() bool { return r.End <= r.Start }

func (r Range) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// Intersect returns the overlap of r and o; it is empty when they are disjoint.
func (r Range) Intersect(o Range) Range {
	out := Range{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

// Clamp limits both ends of r to [0, n]. A range lying wholly outside
// comes back empty at the nearer edge.
func (r Range) Clamp(n int) Range {
	out := Range{Start: min(max(r.Start, 0), n), End: min(max(r.End, 0), n)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Index holds precomputed offset tables for one text. It is immutable and
// safe to share.
type Index struct {
	bytes     []int // rune offset -> byte offset, len n+1
	units     []int // rune offset -> UTF-16 offset, len n+1
	clusters  []int // rune offset -> grapheme cluster index, len n+1
	graphemes int
}

// NewIndex builds the offset tables for s.
func NewIndex(s string) *Index {
	n := utf8.RuneCountInString(s)
	idx := &Index{
		bytes:    make([]int, 0, n+1),
		units:    make([]int, 0, n+1),
		clusters: make([]int, 0, n+1),
	}
	u := 0
	for off, r := range s {
		idx.bytes = append(idx.bytes, off)
		idx.units = append(idx.units, u)
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1 // invalid runes are encoded as U+FFFD
		}
		u += w
	}
	idx.bytes = append(idx.bytes, len(s))
	idx.units = append(idx.units, u)

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		for range g.Runes() {
			idx.clusters = append(idx.clusters, idx.graphemes)
		}
		idx.graphemes++
	}
	// Invalid UTF-8 can be segmented differently from range decoding; keep
	// the table aligned with the rune count.
	for len(idx.clusters) < n {
		idx.clusters = append(idx.clusters, idx.graphemes)
	}
	idx.clusters = append(idx.clusters[:n], idx.graphemes)
	return idx
}

// Len is the text length in runes.
func (idx *Index) Len() int { return len(idx.bytes) - 1 }

// UTF16Len is the text length in UTF-16 code units.
func (idx *Index) UTF16Len() int { return idx.units[len(idx.units)-1] }

// Graphemes is the number of grapheme clusters in the text.
func (idx *Index) Graphemes() int { return idx.graphemes }

// Byte converts a rune offset to a byte offset.
func (idx *Index) Byte(pos int) int { return idx.bytes[idx.clamp(pos)] }

// ByteRange converts r to byte offsets suitable for slicing the text.
func (idx *Index) ByteRange(r Range) (int, int) {
	r = r.Clamp(idx.Len())
	return idx.bytes[r.Start], idx.bytes[r.End]
}

// UTF16Range converts r to UTF-16 code unit offsets.
func (idx *Index) UTF16Range(r Range) Range {
	r = r.Clamp(idx.Len())
	return Range{Start: idx.units[r.Start], End: idx.units[r.End]}
}

// GraphemeRange returns the smallest span of grapheme clusters covering r.
func (idx *Index) GraphemeRange(r Range) Range {
	r = r.Clamp(idx.Len())
	start := idx.clusters[r.Start]
	if r.Empty() {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: idx.clusters[r.End-1] + 1}
}

func (idx *Index) clamp(pos int) int {
	return min(max(pos, 0), idx.Len())
}

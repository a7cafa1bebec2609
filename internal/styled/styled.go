// Package styled implements the attribute run map behind a highlighting pass:
// a text plus a sorted list of contiguous, disjoint runs, each carrying the
// full attribute state for its span.
//
// Writes split runs at the edges of the written range so that every run is
// uniformly styled; Coalesce merges neighbours that ended up equal.
package styled

import (
	"iter"
	"sort"
	"unicode/utf8"

	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/textpos"
)

// Run is a span of text sharing one attribute state.
type Run struct {
	Range textpos.Range
	Attrs style.Attributes
}

// Text is a text with an attribute table. Runs always cover [0, Len()) with
// no gaps or overlaps.
type Text struct {
	text string
	n    int
	runs []Run
	idx  *textpos.Index
}

// New returns a Text whose every position carries base.
func New(text string, base style.Attributes) *Text {
	t := &Text{text: text, n: utf8.RuneCountInString(text)}
	if t.n > 0 {
		t.runs = []Run{{Range: textpos.Range{Start: 0, End: t.n}, Attrs: base}}
	}
	return t
}

// Text returns the underlying string.
func (t *Text) Text() string { return t.text }

// Len is the length in runes.
func (t *Text) Len() int { return t.n }

// Runs returns a copy of the run table.
func (t *Text) Runs() []Run {
	out := make([]Run, len(t.runs))
	copy(out, t.runs)
	return out
}

// RunsIn yields every run overlapping r, clipped to r.
func (t *Text) RunsIn(r textpos.Range) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		r = r.Clamp(t.n)
		if r.Empty() {
			return
		}
		for i := t.find(r.Start); i < len(t.runs) && t.runs[i].Range.Start < r.End; i++ {
			run := t.runs[i]
			run.Range = run.Range.Intersect(r)
			if !yield(run) {
				return
			}
		}
	}
}

// At returns the attributes in effect at pos. Out of range positions yield
// the zero Attributes.
func (t *Text) At(pos int) style.Attributes {
	if pos < 0 || pos >= t.n {
		return style.Attributes{}
	}
	return t.runs[t.find(pos)].Attrs
}

// Set writes v under key across r, replacing any previous value.
func (t *Text) Set(r textpos.Range, key style.Key, v style.Value) {
	t.Update(r, func(a style.Attributes) style.Attributes {
		return a.With(key, v)
	})
}

// Update rewrites the attributes of every run inside r with fn. Each
// existing run is read and written on its own, so fn sees the state left
// by earlier writes to narrower ranges.
func (t *Text) Update(r textpos.Range, fn func(style.Attributes) style.Attributes) {
	r = r.Clamp(t.n)
	if r.Empty() {
		return
	}
	t.split(r.Start)
	t.split(r.End)
	for i := t.find(r.Start); i < len(t.runs) && t.runs[i].Range.Start < r.End; i++ {
		t.runs[i].Attrs = fn(t.runs[i].Attrs)
	}
}

// Coalesce merges adjacent runs with equal attributes.
func (t *Text) Coalesce() {
	if len(t.runs) < 2 {
		return
	}
	out := t.runs[:1]
	for _, run := range t.runs[1:] {
		last := &out[len(out)-1]
		if last.Attrs.Equal(run.Attrs) {
			last.Range.End = run.Range.End
			continue
		}
		out = append(out, run)
	}
	t.runs = out
}

// Index returns the position tables for the text, building them on first use.
func (t *Text) Index() *textpos.Index {
	if t.idx == nil {
		t.idx = textpos.NewIndex(t.text)
	}
	return t.idx
}

// Slice returns the substring covered by r.
func (t *Text) Slice(r textpos.Range) string {
	b0, b1 := t.Index().ByteRange(r)
	return t.text[b0:b1]
}

// find returns the index of the run containing pos.
func (t *Text) find(pos int) int {
	return sort.Search(len(t.runs), func(i int) bool {
		return t.runs[i].Range.End > pos
	})
}

// split ensures a run boundary at pos.
func (t *Text) split(pos int) {
	if pos <= 0 || pos >= t.n {
		return
	}
	i := t.find(pos)
	run := t.runs[i]
	if run.Range.Start == pos {
		return
	}
	left, right := run, run
	left.Range.End = pos
	right.Range.Start = pos
	t.runs = append(t.runs, Run{})
	copy(t.runs[i+2:], t.runs[i+1:])
	t.runs[i] = left
	t.runs[i+1] = right
}

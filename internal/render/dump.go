package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xonecas/hitext/internal/styled"
)

// Dump writes one line per run: its rune range, the quoted text and its
// attributes. UTF-16 and grapheme ranges follow when they differ from the
// rune range.
func Dump(w io.Writer, st *styled.Text) error {
	idx := st.Index()
	for _, run := range st.Runs() {
		line := fmt.Sprintf("%s %q %s", run.Range, st.Slice(run.Range), run.Attrs)
		if u := idx.UTF16Range(run.Range); u != run.Range {
			line += " u16" + u.String()
		}
		if g := idx.GraphemeRange(run.Range); g != run.Range {
			line += " g" + g.String()
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is Dump into a string.
func DumpString(st *styled.Text) string {
	var b strings.Builder
	_ = Dump(&b, st)
	return b.String()
}

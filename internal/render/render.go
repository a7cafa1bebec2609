// Package render turns styled text into output for terminals and for humans
// reading a run table. Attributes a terminal cannot show (font family, size,
// kerning, strikethrough color) are dropped by ANSI and kept by Dump.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/styled"
)

// ANSI renders st with 24-bit SGR sequences and OSC 8 hyperlinks. Stripping
// the escapes yields the original text.
func ANSI(st *styled.Text) string {
	var b strings.Builder
	for _, run := range st.Runs() {
		b.WriteString(segment(st.Slice(run.Range), run.Attrs))
	}
	return b.String()
}

// segment styles one run. Each line is rendered on its own since lipgloss
// pads multi-line blocks to a common width.
func segment(text string, a style.Attributes) string {
	if text == "" {
		return ""
	}
	sty, extra := terminalStyle(a)
	link, hasLink := a.Link()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		out := sty.Render(line)
		if extra != "" {
			out = extra + out + ansi.ResetStyle
		}
		if hasLink && link.URL != nil {
			out = ansi.SetHyperlink(link.URL.String()) + out + ansi.ResetHyperlink()
		}
		lines[i] = out
	}
	return strings.Join(lines, "\n")
}

// terminalStyle maps attributes onto a lipgloss style. Underline variants
// lipgloss has no switch for come back as raw SGR to emit before the text.
func terminalStyle(a style.Attributes) (lipgloss.Style, string) {
	sty := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)

	if c, ok := a.Color(style.KeyForeground); ok {
		sty = sty.Foreground(lipgloss.Color(c.String()))
	}
	if c, ok := a.Color(style.KeyBackground); ok {
		sty = sty.Background(lipgloss.Color(c.String()))
	}

	traits := a.Font().Traits
	if traits.Has(style.Bold) {
		sty = sty.Bold(true)
	}
	if traits.Has(style.Italic) {
		sty = sty.Italic(true)
	}
	if a.Line(style.KeyStrikethrough) != style.LineNone {
		sty = sty.Strikethrough(true)
	}

	var extra strings.Builder
	switch a.Line(style.KeyUnderline) {
	case style.LineSingle, style.LineThick:
		sty = sty.Underline(true)
	case style.LineDouble:
		extra.WriteString("\x1b[4:2m")
	case style.LineDotted:
		extra.WriteString("\x1b[4:4m")
	}
	if c, ok := a.Color(style.KeyUnderlineColor); ok && a.Line(style.KeyUnderline) != style.LineNone {
		fmt.Fprintf(&extra, "\x1b[58:2::%d:%d:%dm", c.R, c.G, c.B)
	}
	return sty, extra.String()
}

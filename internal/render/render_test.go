package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/require"

	"github.com/xonecas/hitext/internal/highlight"
	"github.com/xonecas/hitext/internal/presets"
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
)

func TestANSIStripsToText(t *testing.T) {
	rs, err := presets.Combine([]string{"markdown", "url"}, presets.DefaultOptions())
	require.NoError(t, err)

	texts := []string{
		"",
		"plain",
		"# Title\n\n> quoted *bold* line\n\tindented ~~old~~ see https://example.com\n",
		"multi\nline `code\nspan` end",
		"emoji \U0001F44D and e\u0301 and \u4f60\u597d",
	}
	for _, text := range texts {
		st := highlight.Highlight(text, rs, highlight.DefaultBase)
		require.Equal(t, text, ansi.Strip(ANSI(st)), "text %q", text)
	}
}

func TestANSIEmitsStyles(t *testing.T) {
	red := style.RGB(0xff, 0, 0)
	rs := []rules.Rule{
		rules.MustNew(rules.MustCompile(`bold`, 0), rules.Foreground(red, style.Bold)),
		rules.MustNew(rules.MustCompile(`link`, 0),
			rules.Set(style.KeyUnderline, style.LineDouble),
			rules.Compute(style.KeyLink, rules.LinkFromMatch),
		),
	}
	out := ANSI(highlight.Highlight("bold link", rs, highlight.DefaultBase))

	require.Contains(t, out, "38;2;255;0;0")
	require.Contains(t, out, "\x1b[4:2m")
	require.Contains(t, out, ansi.SetHyperlink("link"))
	require.Contains(t, out, ansi.ResetHyperlink())
}

func TestANSILinkPerLine(t *testing.T) {
	rs := []rules.Rule{
		rules.MustNew(rules.MustCompile(`a\nb`, 0), rules.Set(style.KeyLink, mustLink(t, "https://x.io"))),
	}
	out := ANSI(highlight.Highlight("a\nb", rs, highlight.DefaultBase))
	require.Equal(t, 2, strings.Count(out, ansi.SetHyperlink("https://x.io")))
}

func TestDumpURL(t *testing.T) {
	st := highlight.Highlight("Visit https://example.com today", presets.URL(), highlight.DefaultBase)
	golden.RequireEqual(t, []byte(DumpString(st)))
}

func TestDumpOffsets(t *testing.T) {
	st := highlight.Highlight("\U0001F44D ok", nil, highlight.DefaultBase)
	require.Equal(t, "[0,4) \"\U0001F44D ok\" font=system-ui/13 fg=#c8c8c8 u16[0,5)\n", DumpString(st))

	st = highlight.Highlight("e\u0301", nil, highlight.DefaultBase)
	require.Equal(t, "[0,2) \"e\u0301\" font=system-ui/13 fg=#c8c8c8 g[0,1)\n", DumpString(st))

	require.Empty(t, DumpString(highlight.Highlight("", nil, highlight.DefaultBase)))
}

func mustLink(t *testing.T, raw string) style.Link {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return style.Link{URL: u}
}

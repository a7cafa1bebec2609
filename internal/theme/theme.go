// Package theme derives the colors rule sets and renderers use from a Chroma
// style, so that highlighting matches the user's syntax theme.
package theme

import (
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/xonecas/hitext/internal/style"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "vulcan"

// Palette holds colors derived deterministically from a Chroma theme.
// The grayscale ramp is a linear interpolation from bg to fg; the accent is
// the most saturated token color in the theme.
type Palette struct {
	Bg        style.Color // theme background
	Fg        style.Color // primary text
	Secondary style.Color // 10% bg->fg, blockquote and code backgrounds
	Dim       style.Color // 25% bg->fg
	Muted     style.Color // 45% bg->fg, list markers, footnotes, HTML
	Accent    style.Color // most saturated token color
	Error     style.Color // Error token blended with bg
}

// Exists reports whether name is a registered Chroma style.
func Exists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Names lists the registered Chroma styles, sorted.
func Names() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load derives a palette from a Chroma theme name. Unknown themes yield
// Default().
func Load(name string) Palette {
	if !Exists(name) {
		return Default()
	}
	sty := styles.Get(name)
	entry := sty.Get(chroma.Background)
	bg := style.RGB(0, 0, 0)
	fg := style.RGB(0xc8, 0xc8, 0xc8)
	if entry.Background.IsSet() {
		bg = fromChroma(entry.Background)
	}
	if entry.Colour.IsSet() {
		fg = fromChroma(entry.Colour)
	}

	return Palette{
		Bg:        bg,
		Fg:        fg,
		Secondary: lerp(bg, fg, 0.10),
		Dim:       lerp(bg, fg, 0.25),
		Muted:     lerp(bg, fg, 0.45),
		Accent:    pickAccent(sty, fg),
		Error:     pickError(sty, bg, fg),
	}
}

// Default is the palette used without a theme.
func Default() Palette {
	return Palette{
		Bg:        style.RGB(0x00, 0x00, 0x00),
		Fg:        style.RGB(0xc8, 0xc8, 0xc8),
		Secondary: style.RGB(0x14, 0x14, 0x14),
		Dim:       style.RGB(0x32, 0x32, 0x32),
		Muted:     style.RGB(0x5a, 0x5a, 0x5a),
		Accent:    style.RGB(0x00, 0xdf, 0xff),
		Error:     style.RGB(0x93, 0x2e, 0x2e),
	}
}

func fromChroma(c chroma.Colour) style.Color {
	return style.RGB(c.Red(), c.Green(), c.Blue())
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback style.Color) style.Color {
	best := fallback
	bestSat := 0.0
	for _, tt := range sty.Types() {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		c := fromChroma(e.Colour)
		mx := max(c.R, c.G, c.B)
		mn := min(c.R, c.G, c.B)
		if mx == 0 {
			continue
		}
		sat := float64(mx-mn) / float64(mx)
		if sat > bestSat {
			bestSat = sat
			best = c
		}
	}
	return best
}

// pickError blends the Error token color 45% of the way from bg so it is
// visible but not garish against the theme background.
func pickError(sty *chroma.Style, bg, fg style.Color) style.Color {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerp(bg, fg, 0.45)
	}
	return lerp(bg, fromChroma(e.Colour), 0.45)
}

// lerp linearly interpolates between two colors at fraction t.
func lerp(a, b style.Color, t float64) style.Color {
	return style.RGB(
		clampByte(float64(a.R)+(float64(b.R)-float64(a.R))*t),
		clampByte(float64(a.G)+(float64(b.G)-float64(a.G))*t),
		clampByte(float64(a.B)+(float64(b.B)-float64(a.B))*t),
	)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Traits is a set of symbolic font traits.
type Traits uint16

const (
	Bold Traits = 1 << iota
	Italic
	Expanded
	Condensed
	Monospace
	TightLeading
	LooseLeading
	Vertical
)

var traitNames = []struct {
	t    Traits
	name string
}{
	{Bold, "bold"},
	{Italic, "italic"},
	{Expanded, "expanded"},
	{Condensed, "condensed"},
	{Monospace, "monospace"},
	{TightLeading, "tight-leading"},
	{LooseLeading, "loose-leading"},
	{Vertical, "vertical"},
}

// Has reports whether every trait in o is set in t.
func (t Traits) Has(o Traits) bool { return t&o == o }

// Union returns t with every trait of o added.
func (t Traits) Union(o Traits) Traits { return t | o }

// Without returns t with every trait of o removed.
func (t Traits) Without(o Traits) Traits { return t &^ o }

// String joins trait names with "|", in declaration order.
func (t Traits) String() string {
	if t == 0 {
		return ""
	}
	var names []string
	for _, tn := range traitNames {
		if t.Has(tn.t) {
			names = append(names, tn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseTraits converts trait names ("bold", "italic", ...) into a set.
func ParseTraits(names []string) (Traits, error) {
	var t Traits
	for _, name := range names {
		found := false
		for _, tn := range traitNames {
			if strings.EqualFold(tn.name, name) {
				t |= tn.t
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown font trait %q", name)
		}
	}
	return t, nil
}

// Font is an abstract font descriptor. Resolving it to a concrete face is
// the host's job.
type Font struct {
	Family string
	Size   float64
	Traits Traits
}

// DefaultFont is the body font used when no other is configured.
var DefaultFont = Font{Family: "system-ui", Size: 13}

// WithTraits returns f with t unioned into its traits.
func (f Font) WithTraits(t Traits) Font {
	f.Traits = f.Traits.Union(t)
	return f
}

// WithoutTraits returns f with t removed from its traits.
func (f Font) WithoutTraits(t Traits) Font {
	f.Traits = f.Traits.Without(t)
	return f
}

func (f Font) String() string {
	s := f.Family + "/" + strconv.FormatFloat(f.Size, 'g', -1, 64)
	if f.Traits != 0 {
		s += "+" + f.Traits.String()
	}
	return s
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb" or "#rrggbb" (ANSI color names are accepted too).
func ParseColor(s string) (Color, error) {
	c := chroma.ParseColour(s)
	if !c.IsSet() {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{R: c.Red(), G: c.Green(), B: c.Blue()}, nil
}

// MustParseColor is like ParseColor but panics on error. It is meant for
// fixed literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Package highlight runs rule-based highlighting passes: raw text plus an
// ordered rule list in, a freshly styled text out. A pass is pure and
// synchronous; it holds no state between calls.
package highlight

import (
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/styled"
	"github.com/xonecas/hitext/internal/textpos"
)

// Base is the style every character starts from.
type Base struct {
	Font       style.Font
	Foreground style.Color
}

// DefaultBase uses the default font and a neutral light gray.
var DefaultBase = Base{Font: style.DefaultFont, Foreground: style.RGB(0xc8, 0xc8, 0xc8)}

// Attributes returns the base as an attribute set.
func (b Base) Attributes() style.Attributes {
	return style.Base(b.Font, b.Foreground)
}

// Highlight styles text with rs. Rules apply in list order: for each match
// of a rule, its directives apply in order. Later attribute writes replace
// earlier ones for the same key; font traits accumulate. Within one
// directive the attribute is written before its traits are unioned, so a
// directive setting KeyFont together with traits keeps those traits.
func Highlight(text string, rs []rules.Rule, base Base) *styled.Text {
	out := styled.New(text, base.Attributes())
	if out.Len() == 0 {
		return out
	}
	runes := []rune(text)
	for _, rule := range rs {
		for r := range rule.Pattern.Matches(runes) {
			if r.Empty() {
				continue
			}
			apply(out, rule.Directives, runes, r)
		}
	}
	out.Coalesce()
	return out
}

func apply(out *styled.Text, ds []rules.Directive, runes []rune, r textpos.Range) {
	var match string
	for _, d := range ds {
		if d.HasAttribute() {
			if d.Func != nil && match == "" {
				match = string(runes[r.Start:r.End])
			}
			if v := d.ValueFor(match, r); v != nil {
				out.Set(r, d.Key, v)
			}
		}
		if d.Traits != 0 {
			traits := d.Traits
			out.Update(r, func(a style.Attributes) style.Attributes {
				return a.With(style.KeyFont, a.Font().WithTraits(traits))
			})
		}
	}
}

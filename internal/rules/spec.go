package rules

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/textpos"
)

// Spec is the serialisable form of a rule, as written in configuration files
// and stored in the rule-set catalog. Empty fields are not applied.
type Spec struct {
	Pattern            string   `toml:"pattern" json:"pattern"`
	Flags              []string `toml:"flags,omitempty" json:"flags,omitempty"`
	Foreground         string   `toml:"foreground,omitempty" json:"foreground,omitempty"`
	Background         string   `toml:"background,omitempty" json:"background,omitempty"`
	Underline          string   `toml:"underline,omitempty" json:"underline,omitempty"`
	UnderlineColor     string   `toml:"underline_color,omitempty" json:"underline_color,omitempty"`
	Strikethrough      string   `toml:"strikethrough,omitempty" json:"strikethrough,omitempty"`
	StrikethroughColor string   `toml:"strikethrough_color,omitempty" json:"strikethrough_color,omitempty"`
	Kern               *float64 `toml:"kern,omitempty" json:"kern,omitempty"`
	Link               bool     `toml:"link,omitempty" json:"link,omitempty"`
	Traits             []string `toml:"traits,omitempty" json:"traits,omitempty"`
}

// Rule compiles s. Font traits are applied first, then attributes in field
// order.
func (s Spec) Rule() (Rule, error) {
	if s.Pattern == "" {
		return Rule{}, fmt.Errorf("%w: empty pattern", ErrInvalidRule)
	}
	flags, err := ParseFlags(s.Flags)
	if err != nil {
		return Rule{}, err
	}
	p, err := Compile(s.Pattern, flags)
	if err != nil {
		return Rule{}, err
	}

	var ds []Directive
	var errs []error

	if len(s.Traits) > 0 {
		t, err := style.ParseTraits(s.Traits)
		if err != nil {
			errs = append(errs, err)
		} else {
			ds = append(ds, WithTraits(t))
		}
	}
	for _, c := range []struct {
		key style.Key
		hex string
	}{
		{style.KeyForeground, s.Foreground},
		{style.KeyBackground, s.Background},
	} {
		if c.hex == "" {
			continue
		}
		col, err := style.ParseColor(c.hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.key, err))
			continue
		}
		ds = append(ds, Set(c.key, col))
	}
	for _, l := range []struct {
		key, colorKey style.Key
		name, hex     string
	}{
		{style.KeyUnderline, style.KeyUnderlineColor, s.Underline, s.UnderlineColor},
		{style.KeyStrikethrough, style.KeyStrikethroughColor, s.Strikethrough, s.StrikethroughColor},
	} {
		if l.name != "" {
			ls, err := style.ParseLineStyle(l.name)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", l.key, err))
			} else {
				ds = append(ds, Set(l.key, ls))
			}
		}
		if l.hex != "" {
			col, err := style.ParseColor(l.hex)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", l.colorKey, err))
			} else {
				ds = append(ds, Set(l.colorKey, col))
			}
		}
	}
	if s.Kern != nil {
		ds = append(ds, Set(style.KeyKern, style.Kern(*s.Kern)))
	}
	if s.Link {
		ds = append(ds, Compute(style.KeyLink, LinkFromMatch))
	}

	if len(errs) > 0 {
		return Rule{}, fmt.Errorf("%w: %q: %w", ErrInvalidRule, s.Pattern, errors.Join(errs...))
	}
	return New(p, ds...)
}

// CompileSpecs builds every spec, in order. The first failure is returned with
// the index of the offending spec.
func CompileSpecs(specs []Spec) ([]Rule, error) {
	out := make([]Rule, 0, len(specs))
	for i, s := range specs {
		r, err := s.Rule()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// LinkFromMatch parses the matched text as a URL. Text that does not parse
// produces no link.
func LinkFromMatch(match string, _ textpos.Range) style.Value {
	u, err := url.Parse(match)
	if err != nil {
		return nil
	}
	return style.Link{URL: u}
}

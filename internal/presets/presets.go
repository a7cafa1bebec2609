// Package presets provides ready-made rule sets: Markdown and bare URL
// detection. Their patterns are fixed and compiled once at package load.
package presets

import (
	"errors"
	"fmt"

	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/theme"
)

// ErrUnknownPreset is returned by Lookup for names it does not know.
var ErrUnknownPreset = errors.New("unknown preset")

// Options carries the colors and body font presets derive their styles from.
type Options struct {
	Palette theme.Palette
	Font    style.Font
}

// DefaultOptions uses the default palette and font.
func DefaultOptions() Options {
	return Options{Palette: theme.Default(), Font: style.DefaultFont}
}

var builders = map[string]func(Options) []rules.Rule{
	"markdown": Markdown,
	"url":      func(Options) []rules.Rule { return URL() },
}

// Names lists the preset names in a stable order.
func Names() []string { return []string{"markdown", "url"} }

// Lookup builds the named preset.
func Lookup(name string, o Options) ([]rules.Rule, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(o), nil
}

// Combine builds several presets and concatenates them in the given order.
func Combine(names []string, o Options) ([]rules.Rule, error) {
	var out []rules.Rule
	for _, name := range names {
		rs, err := Lookup(name, o)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

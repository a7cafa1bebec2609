// Package rules holds the highlight rule model: compiled patterns paired with
// ordered formatting directives. Rules are validated when they are built so
// that a highlighting pass never has to fail.
package rules

import (
	"errors"
	"fmt"

	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/textpos"
)

// ErrInvalidRule is wrapped by every rule construction failure.
var ErrInvalidRule = errors.New("invalid rule")

// ValueFunc derives an attribute value from a match. Returning nil skips the
// write for that match.
type ValueFunc func(match string, r textpos.Range) style.Value

// Directive is one formatting step applied to every match of a rule: an
// attribute write, a font trait union, or both.
type Directive struct {
	Key    style.Key
	Value  style.Value
	Func   ValueFunc
	Traits style.Traits
}

// Set writes a constant value under key.
func Set(key style.Key, v style.Value) Directive {
	return Directive{Key: key, Value: v}
}

// Compute writes the value fn derives from each match under key.
func Compute(key style.Key, fn ValueFunc) Directive {
	return Directive{Key: key, Func: fn}
}

// WithTraits unions t into the font of every matched run.
func WithTraits(t style.Traits) Directive {
	return Directive{Traits: t}
}

// Foreground sets the text color, optionally adding font traits.
func Foreground(c style.Color, t style.Traits) Directive {
	return Set(style.KeyForeground, c).WithTraits(t)
}

// Highlight sets the background color, optionally adding font traits.
func Highlight(c style.Color, t style.Traits) Directive {
	return Set(style.KeyBackground, c).WithTraits(t)
}

// WithTraits returns d with t added to its traits.
func (d Directive) WithTraits(t style.Traits) Directive {
	d.Traits = d.Traits.Union(t)
	return d
}

// HasAttribute reports whether d writes an attribute.
func (d Directive) HasAttribute() bool {
	return d.Key != style.NoKey && (d.Value != nil || d.Func != nil)
}

// Empty reports whether d has no effect.
func (d Directive) Empty() bool { return !d.HasAttribute() && d.Traits == 0 }

// ValueFor returns the value d writes for the match text s at r, or nil.
// Computed values of the wrong kind for d.Key are dropped.
func (d Directive) ValueFor(s string, r textpos.Range) style.Value {
	if !d.HasAttribute() {
		return nil
	}
	if d.Func == nil {
		return d.Value
	}
	v := d.Func(s, r)
	if v == nil || !d.Key.Accepts(v) {
		return nil
	}
	return v
}

func (d Directive) validate() error {
	switch {
	case d.Value != nil && d.Func != nil:
		return errors.New("directive has both a constant and a computed value")
	case d.Key == style.NoKey && (d.Value != nil || d.Func != nil):
		return errors.New("directive has a value but no attribute key")
	case d.Key != style.NoKey && !d.Key.Valid():
		return fmt.Errorf("unknown attribute key %d", d.Key)
	case d.Key != style.NoKey && d.Value == nil && d.Func == nil:
		return fmt.Errorf("attribute %s has no value", d.Key)
	case d.Value != nil && !d.Key.Accepts(d.Value):
		return fmt.Errorf("attribute %s cannot hold %T", d.Key, d.Value)
	}
	return nil
}

// Rule pairs a pattern with the directives applied to each of its matches.
type Rule struct {
	Pattern    *Pattern
	Directives []Directive
}

// New builds a rule, rejecting malformed directives.
func New(p *Pattern, ds ...Directive) (Rule, error) {
	if p == nil {
		return Rule{}, fmt.Errorf("%w: nil pattern", ErrInvalidRule)
	}
	for i, d := range ds {
		if err := d.validate(); err != nil {
			return Rule{}, fmt.Errorf("%w: %s: directive %d: %v", ErrInvalidRule, p, i, err)
		}
	}
	return Rule{Pattern: p, Directives: append([]Directive(nil), ds...)}, nil
}

// MustNew is like New but panics on error.
func MustNew(p *Pattern, ds ...Directive) Rule {
	r, err := New(p, ds...)
	if err != nil {
		panic(err)
	}
	return r
}

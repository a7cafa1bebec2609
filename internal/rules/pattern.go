package rules

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dlclark/regexp2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/hitext/internal/textpos"
)

// ErrInvalidPattern is wrapped by every pattern compilation failure.
var ErrInvalidPattern = errors.New("invalid pattern")

// Flags adjust how a pattern matches.
type Flags uint8

const (
	// Multiline makes ^ and $ match at line boundaries.
	Multiline Flags = 1 << iota
	// DotAll makes . match line separators.
	DotAll
	// IgnoreCase matches case-insensitively.
	IgnoreCase
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{Multiline, "multiline"},
	{DotAll, "dotall"},
	{IgnoreCase, "ignorecase"},
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseFlags converts flag names ("multiline", "dotall", "ignorecase").
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		found := false
		for _, fn := range flagNames {
			if strings.EqualFold(fn.name, name) {
				f |= fn.f
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidPattern, name)
		}
	}
	return f, nil
}

func (f Flags) options() regexp2.RegexOptions {
	opts := regexp2.None
	if f&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&DotAll != 0 {
		opts |= regexp2.Singleline
	}
	if f&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	return opts
}

// Pattern is a compiled regular expression. It is immutable and safe for
// concurrent use. The syntax is that of regexp2 (.NET flavoured), which
// supports lookaround and backreferences.
type Pattern struct {
	source string
	flags  Flags
	re     *regexp2.Regexp
}

// compiled memoises patterns by flags and source so rule sets rebuilt from
// configuration never recompile the same expression.
var compiled = gocache.New(gocache.NoExpiration, 0)

// Compile compiles src. Syntax errors wrap ErrInvalidPattern.
func Compile(src string, flags Flags) (*Pattern, error) {
	key := flags.String() + "\x00" + src
	if p, ok := compiled.Get(key); ok {
		log.Debug().Str("pattern", src).Msg("pattern cache hit")
		return p.(*Pattern), nil
	}
	re, err := regexp2.Compile(src, flags.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, src, err)
	}
	p := &Pattern{source: src, flags: flags, re: re}
	compiled.Set(key, p, gocache.NoExpiration)
	return p, nil
}

// MustCompile is like Compile but panics on error. Use it only for fixed
// patterns initialised at package load.
func MustCompile(src string, flags Flags) *Pattern {
	p, err := Compile(src, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// All matches the whole text as a single span.
var All = MustCompile(`^.*$`, DotAll)

func (p *Pattern) String() string { return p.source }

// Flags returns the flags the pattern was compiled with.
func (p *Pattern) Flags() Flags { return p.flags }

// Matches yields the non-overlapping matches of p in text, left to right,
// as rune ranges. Iteration always moves forward, including past empty
// matches.
func (p *Pattern) Matches(text []rune) iter.Seq[textpos.Range] {
	return func(yield func(textpos.Range) bool) {
		m, err := p.re.FindRunesMatch(text)
		last := -1
		for err == nil && m != nil {
			r := textpos.Span(m.Index, m.Length)
			if r.Start < last {
				return
			}
			// An empty match touching the previous match is not reported.
			if !r.Empty() || r.Start != last {
				if !yield(r) {
					return
				}
				last = r.End
			}
			m, err = p.re.FindNextMatch(m)
		}
	}
}

// FindAll collects every match of p in s.
func (p *Pattern) FindAll(s string) []textpos.Range {
	var out []textpos.Range
	for r := range p.Matches([]rune(s)) {
		out = append(out, r)
	}
	return out
}

package presets

import (
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
)

var (
	inlineCode          = rules.MustCompile("`[^`]*`", 0)
	codeBlock           = rules.MustCompile("(`){3}((?!\\1).)+\\1{3}", rules.DotAll)
	heading             = rules.MustCompile(`^#{1,6}\s.*$`, rules.Multiline)
	linkOrImage         = rules.MustCompile(`!?\[([^\[\]]*)\]\((.*?)\)`, 0)
	linkOrImageTag      = rules.MustCompile(`!?\[([^\[\]]*)\]\[(.*?)\]`, 0)
	strong              = rules.MustCompile(`((\*|_){2})((?!\1).)+\1`, 0)
	underscoreEmphasis  = rules.MustCompile(`(?<!_)_[^_]+_(?!\*)`, 0)
	asteriskEmphasis    = rules.MustCompile(`(?<!\*)(\*)((?!\1).)+\1(?!\*)`, 0)
	strongEmphasis      = rules.MustCompile(`(\*){3}((?!\1).)+\1{3}`, 0)
	blockquote          = rules.MustCompile(`^>.*`, rules.Multiline)
	horizontalRule      = rules.MustCompile(`\n\n(-{3}|\*{3})\n`, 0)
	unorderedList       = rules.MustCompile(`^(\-|\*)\s`, rules.Multiline)
	orderedList         = rules.MustCompile(`^\d*\.\s`, rules.Multiline)
	button              = rules.MustCompile(`<\s*button[^>]*>(.*?)<\s*/\s*button>`, 0)
	strikethrough       = rules.MustCompile(`(~)((?!\1).)+\1`, 0)
	referenceTag        = rules.MustCompile(`^\[([^\[\]]*)\]:`, rules.Multiline)
	footnote            = rules.MustCompile(`\[\^(.*?)\]`, 0)
	html                = rules.MustCompile(`<([A-Z][A-Z0-9]*)\b[^>]*>(.*?)</\1>`, rules.DotAll|rules.IgnoreCase)
	headingTraits       = style.Bold | style.Expanded
	strongTraits        = style.Bold
	emphasisTraits      = style.Italic
	strongEmphasisTrait = style.Bold | style.Italic
)

// Markdown highlights headings, emphasis, code, links, lists, blockquotes,
// strikethrough, footnotes and embedded HTML. Single-asterisk spans read
// as bold; single-underscore spans as italic.
func Markdown(o Options) []rules.Rule {
	code := CodeFont(o.Font)
	return []rules.Rule{
		rules.MustNew(inlineCode, rules.Set(style.KeyFont, code)),
		rules.MustNew(codeBlock, rules.Set(style.KeyFont, code)),
		rules.MustNew(heading,
			rules.WithTraits(headingTraits),
			rules.Set(style.KeyKern, style.Kern(0.5)),
		),
		rules.MustNew(linkOrImage, rules.Set(style.KeyUnderline, style.LineSingle)),
		rules.MustNew(linkOrImageTag, rules.Set(style.KeyUnderline, style.LineSingle)),
		rules.MustNew(strong, rules.WithTraits(strongTraits)),
		rules.MustNew(asteriskEmphasis, rules.WithTraits(strongTraits)),
		rules.MustNew(underscoreEmphasis, rules.WithTraits(emphasisTraits)),
		rules.MustNew(strongEmphasis, rules.WithTraits(strongEmphasisTrait)),
		rules.MustNew(blockquote, rules.Set(style.KeyBackground, o.Palette.Secondary)),
		rules.MustNew(horizontalRule, rules.Set(style.KeyForeground, o.Palette.Muted)),
		rules.MustNew(unorderedList, rules.Set(style.KeyForeground, o.Palette.Muted)),
		rules.MustNew(orderedList, rules.Set(style.KeyForeground, o.Palette.Muted)),
		rules.MustNew(button, rules.Set(style.KeyForeground, o.Palette.Muted)),
		rules.MustNew(strikethrough,
			rules.Set(style.KeyStrikethrough, style.LineSingle),
			rules.Set(style.KeyStrikethroughColor, o.Palette.Fg),
		),
		rules.MustNew(referenceTag, rules.Set(style.KeyForeground, o.Palette.Muted)),
		rules.MustNew(footnote, rules.Set(style.KeyForeground, o.Palette.Muted)),
		rules.MustNew(html,
			rules.Set(style.KeyFont, code),
			rules.Set(style.KeyForeground, o.Palette.Muted),
		),
	}
}

// CodeFont is the monospaced face used for code spans, sized like body.
func CodeFont(body style.Font) style.Font {
	size := body.Size
	if size <= 0 {
		size = style.DefaultFont.Size
	}
	return style.Font{Family: "monospace", Size: size, Traits: style.Monospace}
}

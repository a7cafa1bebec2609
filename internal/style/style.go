// Package style defines the closed set of text attributes a highlighting pass
// can write: font descriptors with symbolic traits, colors, line styles,
// kerning, links and an opaque custom escape hatch.
package style

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Key identifies an attribute kind. The zero value NoKey means "no direct
// attribute"; directives with NoKey only modify font traits.
type Key uint8

const (
	NoKey Key = iota
	KeyFont
	KeyForeground
	KeyBackground
	KeyUnderline
	KeyUnderlineColor
	KeyStrikethrough
	KeyStrikethroughColor
	KeyKern
	KeyLink
	KeyCustom

	keyCount
)

var keyNames = [keyCount]string{
	NoKey:                 "none",
	KeyFont:               "font",
	KeyForeground:         "fg",
	KeyBackground:         "bg",
	KeyUnderline:          "underline",
	KeyUnderlineColor:     "underline-color",
	KeyStrikethrough:      "strikethrough",
	KeyStrikethroughColor: "strikethrough-color",
	KeyKern:               "kern",
	KeyLink:               "link",
	KeyCustom:             "custom",
}

func (k Key) String() string {
	if k >= keyCount {
		return "key(" + strconv.Itoa(int(k)) + ")"
	}
	return keyNames[k]
}

// Valid reports whether k names an attribute (NoKey is not one).
func (k Key) Valid() bool { return k > NoKey && k < keyCount }

// Accepts reports whether v is a payload of the kind k stores.
func (k Key) Accepts(v Value) bool {
	switch v.(type) {
	case Font:
		return k == KeyFont
	case Color:
		return k == KeyForeground || k == KeyBackground ||
			k == KeyUnderlineColor || k == KeyStrikethroughColor
	case LineStyle:
		return k == KeyUnderline || k == KeyStrikethrough
	case Kern:
		return k == KeyKern
	case Link:
		return k == KeyLink
	case Custom:
		return k == KeyCustom
	}
	return false
}

// Value is an attribute payload. The set of implementations is closed.
type Value interface {
	fmt.Stringer
	isValue()
}

func (Font) isValue()      {}
func (Color) isValue()     {}
func (LineStyle) isValue() {}
func (Kern) isValue()      {}
func (Link) isValue()      {}
func (Custom) isValue()    {}

// LineStyle is the pattern of an underline or strikethrough.
type LineStyle uint8

const (
	LineNone LineStyle = iota
	LineSingle
	LineDouble
	LineThick
	LineDotted
)

var lineNames = map[LineStyle]string{
	LineNone:   "none",
	LineSingle: "single",
	LineDouble: "double",
	LineThick:  "thick",
	LineDotted: "dotted",
}

func (l LineStyle) String() string {
	if s, ok := lineNames[l]; ok {
		return s
	}
	return "line(" + strconv.Itoa(int(l)) + ")"
}

// ParseLineStyle maps a line style name ("single", "double", ...) to its value.
func ParseLineStyle(name string) (LineStyle, error) {
	for l, s := range lineNames {
		if s == name {
			return l, nil
		}
	}
	return LineNone, fmt.Errorf("unknown line style %q", name)
}

// Kern is extra spacing between characters, in points.
type Kern float64

func (k Kern) String() string { return strconv.FormatFloat(float64(k), 'g', -1, 64) }

// Link is a hyperlink target.
type Link struct {
	URL *url.URL
}

func (l Link) String() string {
	if l.URL == nil {
		return ""
	}
	return l.URL.String()
}

// Custom carries a host-defined attribute the engine does not interpret.
type Custom struct {
	Name string
	Data any
}

func (c Custom) String() string { return c.Name }

// equalValue compares two payloads. Links compare by URL text and custom
// payloads by deep equality since their data may not be comparable.
func equalValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Link:
		bv, ok := b.(Link)
		return ok && av.String() == bv.String()
	case Custom:
		bv, ok := b.(Custom)
		return ok && av.Name == bv.Name && reflect.DeepEqual(av.Data, bv.Data)
	}
	return a == b
}

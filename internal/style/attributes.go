package style

import "strings"

// Attributes is the full attribute state of a run. It has value semantics:
// With and Without return modified copies.
type Attributes struct {
	vals [keyCount]Value
}

// Base returns attributes carrying only a font and a foreground color.
func Base(font Font, fg Color) Attributes {
	var a Attributes
	a.vals[KeyFont] = font
	a.vals[KeyForeground] = fg
	return a
}

// Get returns the value stored under k, or nil.
func (a Attributes) Get(k Key) Value {
	if !k.Valid() {
		return nil
	}
	return a.vals[k]
}

// Has reports whether a value is stored under k.
func (a Attributes) Has(k Key) bool { return a.Get(k) != nil }

// With returns a copy of a with k set to v. Invalid keys and values of the
// wrong kind leave a unchanged.
func (a Attributes) With(k Key, v Value) Attributes {
	if !k.Valid() || v == nil || !k.Accepts(v) {
		return a
	}
	a.vals[k] = v
	return a
}

// Without returns a copy of a with k cleared.
func (a Attributes) Without(k Key) Attributes {
	if k.Valid() {
		a.vals[k] = nil
	}
	return a
}

// Font returns the resolved font, or the zero Font when none is set.
func (a Attributes) Font() Font {
	f, _ := a.vals[KeyFont].(Font)
	return f
}

// Color returns the color stored under k, if any.
func (a Attributes) Color(k Key) (Color, bool) {
	c, ok := a.Get(k).(Color)
	return c, ok
}

// Line returns the line style stored under k, or LineNone.
func (a Attributes) Line(k Key) LineStyle {
	l, _ := a.Get(k).(LineStyle)
	return l
}

// Link returns the hyperlink target, if any.
func (a Attributes) Link() (Link, bool) {
	l, ok := a.vals[KeyLink].(Link)
	return l, ok
}

// Keys lists the keys that carry a value, in key order.
func (a Attributes) Keys() []Key {
	var keys []Key
	for k := KeyFont; k < keyCount; k++ {
		if a.vals[k] != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// Equal reports whether a and b carry the same values under the same keys.
func (a Attributes) Equal(b Attributes) bool {
	for k := KeyFont; k < keyCount; k++ {
		if !equalValue(a.vals[k], b.vals[k]) {
			return false
		}
	}
	return true
}

// String renders the attributes as space separated key=value pairs in key
// order, e.g. "font=system-ui/13+bold fg=#c8c8c8 underline=single".
func (a Attributes) String() string {
	var b strings.Builder
	for _, k := range a.Keys() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
		b.WriteByte('=')
		b.WriteString(a.vals[k].String())
	}
	return b.String()
}

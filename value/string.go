package value

import "strings"

// StringObject is a UTF-8/UTF-16 text buffer object, stored internally
// as runes so indexing is by code point rather than by byte (spec.md
// §6's "source encoding ... identifiers may include non-ASCII code
// points" applies equally to runtime string indexing).
type StringObject struct {
	Header
	Runes []rune
}

// NewString allocates an unregistered StringObject; callers register it
// with the gc.Allocator before exposing it to a VM stack (see
// gc.Allocator.Track).
func NewString(s string) *StringObject {
	return &StringObject{Runes: []rune(s)}
}

func (s *StringObject) ObjKind() ObjectKind { return KString }
func (s *StringObject) String() string      { return string(s.Runes) }
func (s *StringObject) ByteSize() int       { return len(s.Runes)*4 + 32 }

func (s *StringObject) Equals(o Object) bool {
	other, ok := o.(*StringObject)
	if !ok {
		return false
	}
	return string(s.Runes) == string(other.Runes)
}

func (s *StringObject) Clone() Object {
	cp := make([]rune, len(s.Runes))
	copy(cp, s.Runes)
	return &StringObject{Runes: cp}
}

// Blacken is a no-op: strings hold no object references.
func (s *StringObject) Blacken(func(Object)) {}

// Len returns the string's length in code points.
func (s *StringObject) Len() int { return len(s.Runes) }

// Index returns the single-rune substring at i, after Python-style
// negative-index normalization (spec.md §3, §8 "Negative array/string
// indices"). ok is false if the normalized index is out of range.
func (s *StringObject) Index(i int64) (*StringObject, bool) {
	idx, ok := NormalizeIndex(i, len(s.Runes))
	if !ok {
		return nil, false
	}
	return &StringObject{Runes: []rune{s.Runes[idx]}}, true
}

// NormalizeIndex applies Python-style negative-index normalization
// shared by strings and arrays: a[-1] == a[len(a)-1].
func NormalizeIndex(i int64, length int) (int, bool) {
	idx := int(i)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}

// Concat implements string `+`.
func (s *StringObject) Concat(other *StringObject) *StringObject {
	var b strings.Builder
	b.WriteString(string(s.Runes))
	b.WriteString(string(other.Runes))
	return &StringObject{Runes: []rune(b.String())}
}

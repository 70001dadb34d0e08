package compound

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	utf16Suffix  = "001F"
	latin1Suffix = "001E"
)

// Encoding selects which variant of a string property is used when a file
// carries both.
type Encoding int

const (
	// PreferUnicode picks the UTF-16LE stream.
	PreferUnicode Encoding = iota

	// PreferLatin1 picks the 8-bit ISO-8859-1 stream.
	PreferLatin1
)

// ReadStringStream decodes the string property stored under prefix, which
// is a stream path without its four digit type suffix. When only one of the
// UTF-16LE and ISO-8859-1 streams exists it is used regardless of prefer.
func (m *Message) ReadStringStream(prefix string, prefer Encoding) (string, bool) {
	wide, hasWide := m.ReadStream(prefix + utf16Suffix)
	narrow, hasNarrow := m.ReadStream(prefix + latin1Suffix)

	switch {
	case hasWide && (!hasNarrow || prefer == PreferUnicode):
		return decodeString(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), wide)
	case hasNarrow:
		return decodeString(charmap.ISO8859_1, narrow)
	}
	return "", false
}

// Property decodes the top-level string property with the given tag, such
// as "0037" for the subject.
func (m *Message) Property(tag string) (string, bool) {
	return m.ReadStringStream(substgPrefix+tag, PreferUnicode)
}

func decodeString(enc encoding.Encoding, data []byte) (string, bool) {
	s, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(s), true
}

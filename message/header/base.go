package header

import (
	"io"
	"strings"

	"github.com/zostay/mailsplit/message/header/field"
)

// Break is the line break a header uses between fields.
type Break string

// The line breaks found in mail in the wild.
const (
	Meh  Break = ""         // unknown or does not matter
	CRLF Break = "\x0d\x0a" // \r\n
	LF   Break = "\x0a"     // \n
	CR   Break = "\x0d"     // \r
	LFCR Break = "\x0a\x0d" // \n\r, rare but seen
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// Base is the low-level storage of a header: an ordered list of fields and
// the line break that separates them.
type Base struct {
	lbr    Break
	fields []*field.Field
}

// NewBase returns an empty Base that will use the given line break.
func NewBase(lbr Break) Base {
	return Base{lbr: lbr}
}

// Break returns the line break used to separate header fields and terminate
// the header. It defaults to LF.
func (h *Base) Break() Break {
	if h.lbr == Meh {
		return LF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil if n is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 2)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// GetAllFieldsNamed returns all the fields with the given name in header
// order.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	fs := make([]*field.Field, 0, 2)
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// ListFields returns all the fields in the header.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// AddField appends a new field to the end of the header.
func (h *Base) AddField(name, body string) {
	h.fields = append(h.fields, field.New(name, body))
}

// Bytes returns the header as bytes, including the blank line that ends it.
// Parsed fields are written exactly as read.
func (h *Base) Bytes() []byte {
	lbr := h.Break().Bytes()
	buf := make([]byte, 0, 80*len(h.fields))
	for _, f := range h.fields {
		buf = append(buf, f.Bytes()...)
		buf = append(buf, lbr...)
	}
	return append(buf, lbr...)
}

// WriteTo writes the header to the given io.Writer.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.Bytes())
	return int64(n), err
}

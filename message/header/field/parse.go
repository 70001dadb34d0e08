package field

import (
	"bytes"
)

// BadStartError is returned when the header begins with junk text that does not
// appear to be a header. This text is preserved in the error object.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content for a complete header field line.
type Line []byte

// Lines represents the unparsed content for zero or more header field
// lines.
type Lines []Line

// ParseLines splits the given header bytes into field lines, keeping folded
// continuation lines attached to the field they continue.
//
// This does not follow RFC 5322 precisely. A new field starts on any line that
// does not begin with a space or tab and contains a colon. Any other line is a
// continuation of the previous field. Lines before the first field are
// skipped and reported through a BadStartError, which callers may treat as a
// warning: the returned Lines are still usable.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}
		if line[0] == '\t' || line[0] == ' ' || !bytes.Contains(line, []byte(":")) {
			if len(h) == 0 {
				if err != nil {
					err.BadStart = append(err.BadStart, line...)
				} else {
					err = &BadStartError{line}
				}
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
		} else {
			h = append(h, line)
		}
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// Unfold removes the line breaks from a folded header value. The whitespace
// that introduced each continuation line is kept.
func Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if b != '\r' && b != '\n' {
			uf = append(uf, b)
		}
	}
	return uf
}

// Parse takes a single header field line, including any folded continuation
// lines, and constructs a Field from it. The body is unfolded and trimmed but
// not decoded.
func Parse(f Line, lb []byte) *Field {
	rawField := bytes.TrimRight(f, string(lb))

	off := 1
	ix := bytes.IndexByte(rawField, ':')
	if ix < 0 {
		ix = len(rawField)
		off = 0
	}

	name := string(bytes.TrimSpace(Unfold(rawField[:ix])))
	body := string(bytes.TrimSpace(Unfold(rawField[ix+off:])))

	return &Field{
		Base: Base{name, body},
		raw:  &Raw{rawField, ix},
	}
}

// Package param parses parameterized header values, such as those found in the
// Content-type and Content-disposition fields.
package param

import (
	"mime"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in the
	// Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-disposition header.
	Filename = "filename"

	// Name is the legacy name parameter some mailers put on the Content-type
	// header instead of setting a Content-disposition filename.
	Name = "name"
)

// Value represents a parsed parameterized header field. A Value object is
// immutable.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body and parses it as a Value. The value is
// lower-cased, as are parameter names.
//
// Strict parsing per RFC 2045 and RFC 2231 is attempted first. Mail in the
// wild is often sloppy, so if only the parameters are bad, they are re-read
// with a forgiving parser that accepts unquoted specials, stray semicolons and
// unbalanced quotes. An error is returned only when the primary value itself
// cannot be made sense of.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err == nil {
		return &Value{mt, ps}, nil
	}

	if mt == "" {
		return nil, err
	}

	return &Value{mt, parseLenientParams(v)}, nil
}

// parseLenientParams splits the parameters after the first semicolon on
// further semicolons, treating each as name=value with optional quotes.
func parseLenientParams(v string) map[string]string {
	ps := map[string]string{}
	ix := strings.IndexByte(v, ';')
	if ix < 0 {
		return ps
	}

	for _, p := range strings.Split(v[ix+1:], ";") {
		eq := strings.IndexByte(p, '=')
		if eq < 0 {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(p[:eq]))
		if name == "" {
			continue
		}

		val := strings.TrimSpace(p[eq+1:])
		val = strings.TrimPrefix(val, `"`)
		val = strings.TrimSuffix(val, `"`)

		if _, exists := ps[name]; !exists {
			ps[name] = val
		}
	}

	return ps
}

// New creates a new parameterized header field with the given parameters.
func New(v string, ps map[string]string) *Value {
	if ps == nil {
		ps = map[string]string{}
	}
	return &Value{v, ps}
}

// Value returns the primary value of the Value. This is the value before the
// first semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Presentation is a synonym for Value() and returns the Content-disposition,
// either "inline" or "attachment".
func (pv *Value) Presentation() string {
	return pv.v
}

// Type returns the MIME major type, the part before the slash, or an empty
// string if there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the MIME subtype, the part after the slash, or an empty
// string if there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns a copy of the parameters.
func (pv *Value) Parameters() map[string]string {
	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}
	return ps
}

// Parameter returns the named parameter or an empty string.
func (pv *Value) Parameter(name string) string {
	return pv.ps[strings.ToLower(name)]
}

// Charset returns the charset parameter.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the boundary parameter.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// Filename returns the filename parameter.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	return &Value{pv.v, pv.Parameters()}
}

// String renders the value back into header field form.
func (pv *Value) String() string {
	if s := mime.FormatMediaType(pv.v, pv.ps); s != "" {
		return s
	}
	return pv.v
}

package field

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// DecodeError reports an encoded-word that could not be decoded. The
// original body is preserved so callers can fall back to it.
type DecodeError struct {
	Body string
	Err  error
}

// Error returns the error message.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode header value %q: %v", e.Body, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CharsetDecoder decodes b from the named charset into a native string. It
// understands every charset in the IANA registry that golang.org/x/text
// supports.
func CharsetDecoder(charset string, b []byte) (string, error) {
	cs := strings.ToLower(strings.TrimSpace(charset))
	e, err := ianaindex.MIME.Encoding(cs)
	if err != nil || e == nil {
		e, err = ianaindex.IANA.Encoding(cs)
	}
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}

// CharsetReader adapts CharsetDecoder for use as mime.WordDecoder's
// CharsetReader.
func CharsetReader(charset string, input io.Reader) (io.Reader, error) {
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	s, err := CharsetDecoder(charset, b)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader([]byte(s)), nil
}

// Decode looks for RFC 2047 encoded-words in a header field body and decodes
// them into native unicode. Bodies without encoded-words are returned as-is.
// On failure, the returned error is a *DecodeError and the returned string is
// the original body.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	dec := &mime.WordDecoder{CharsetReader: CharsetReader}
	s, err := dec.DecodeHeader(body)
	if err != nil {
		return body, &DecodeError{body, err}
	}

	return s, nil
}

// DecodeOrRaw is Decode for callers that only ever want a usable string.
func DecodeOrRaw(body string) string {
	s, _ := Decode(body)
	return s
}

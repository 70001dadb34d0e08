package message

import (
	"io"

	"github.com/zostay/mailsplit/message/header"
)

// Opaque is a leaf message or part: a header and a body, very similar to the
// net/mail message implementation. The body is exactly as it appeared in the
// input, including any Content-transfer-encoding.
type Opaque struct {
	// Header holds the header of the message or part. A part may have an
	// empty header.
	header.Header

	// Reader will contain the body content of the message. If there is no
	// body, Reader is nil.
	io.Reader

	// noHeader is set for a part that had neither a header nor the blank
	// line ending one. Nothing but the body is written back out.
	noHeader bool
}

// WriteTo writes the Opaque header and body to the destination io.Writer.
//
// This can only be safely called once as it will consume the io.Reader.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if !m.noHeader {
		hn, err := m.Header.WriteTo(w)
		total += hn
		if err != nil {
			return total, err
		}
	}

	if m.Reader != nil {
		bn, err := io.Copy(w, m.Reader)
		total += bn
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns the reader containing the raw body of the message.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}

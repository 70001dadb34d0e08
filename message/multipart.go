package message

import (
	"bytes"
	"io"

	"github.com/zostay/mailsplit/message/header"
)

// Part is a node of a parsed message. Each Part is either a branch or a leaf.
//
// A branch Part has sub-parts. IsMultipart() returns true and GetParts()
// returns the sub-parts, while GetReader() returns nil.
//
// A leaf Part has content. IsMultipart() returns false, GetReader() returns
// the raw body (still transfer encoded), and GetParts() returns nil. A leaf
// may still hold multipart content when parsing stopped at the depth limit.
type Part interface {
	io.WriterTo

	// IsMultipart returns true if this Part is a branch with nested parts.
	IsMultipart() bool

	// GetHeader is available on all Part objects.
	GetHeader() *header.Header

	// GetReader returns the body of a leaf, or nil for a branch or a leaf
	// with no body.
	GetReader() io.Reader

	// GetParts returns the sub-parts of a branch, or nil for a leaf.
	GetParts() []Part
}

// Generic is an alias for Part for values that are not necessarily a sub-part
// of a message. A Generic is always either a *Opaque or a *Multipart, so it is
// safe to type-switch on those two.
type Generic = Part

// Multipart is a message split into parts on its Content-type boundary.
type Multipart struct {
	// Header is the header for the message.
	header.Header

	// prefix holds the bytes before the first boundary and suffix the bytes
	// after the final one, starting with the line break that ends the final
	// boundary line. A nil prefix means no opening boundary was found. A nil
	// suffix means the final boundary is missing.
	prefix, suffix []byte

	// delims holds the delimiter line written before each part, exactly as
	// it was found, and closing the final delimiter line. When the final
	// boundary is missing, closing holds a dangling delimiter line, if any.
	delims  [][]byte
	closing []byte

	parts []Part
}

// WriteTo writes the Multipart header and parts to the destination
// io.Writer. The boundary lines are written exactly as they were parsed.
//
// This may only be safely called one time because it consumes the readers of
// every leaf within.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	n, err := mm.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	write := func(b []byte) error {
		bn, err := w.Write(b)
		n += int64(bn)
		return err
	}

	if err := write(mm.prefix); err != nil {
		return n, err
	}

	for i, part := range mm.parts {
		if i < len(mm.delims) {
			if err := write(mm.delims[i]); err != nil {
				return n, err
			}
		}

		pn, err := part.WriteTo(w)
		n += pn
		if err != nil {
			return n, err
		}
	}

	if err := write(mm.closing); err != nil {
		return n, err
	}

	return n, write(mm.suffix)
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// GetHeader returns the header for the message.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// GetReader always returns nil.
func (mm *Multipart) GetReader() io.Reader {
	return nil
}

// GetParts returns the sub-parts of this message or nil if there aren't any.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}

// Preamble returns the bytes before the first boundary, or nil if no opening
// boundary was found.
func (mm *Multipart) Preamble() []byte {
	return mm.prefix
}

// HasFinalBoundary returns true if the closing boundary was found.
func (mm *Multipart) HasFinalBoundary() bool {
	return mm.suffix != nil
}

// Epilogue returns the bytes following the final boundary line. The line
// break ending the boundary line is not included. It is nil when there is no
// final boundary.
func (mm *Multipart) Epilogue() []byte {
	if mm.suffix == nil {
		return nil
	}

	for _, lb := range []header.Break{header.CRLF, header.LF, header.CR} {
		if bytes.HasPrefix(mm.suffix, lb.Bytes()) {
			return mm.suffix[len(lb):]
		}
	}
	return mm.suffix
}

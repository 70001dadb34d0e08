package transfer

import (
	"bytes"
	"fmt"
	"io"
	"mime/quotedprintable"
)

// DecodeQuotedPrintable decodes quoted-printable bytes. If the input is
// malformed, the original bytes are returned with the error.
func DecodeQuotedPrintable(b []byte) ([]byte, error) {
	out, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(b)))
	if err != nil {
		return b, fmt.Errorf("quoted-printable: %w", err)
	}
	return out, nil
}

package transfer

import (
	"encoding/base64"
	"fmt"
)

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+' || c == '/':
		return true
	}
	return false
}

// DecodeBase64 decodes base64 bytes. Line breaks, padding, and any other
// characters outside the base64 alphabet are ignored. Decoding stops at the
// first padding character after data, which is where well-formed content
// ends.
//
// A dangling final character cannot carry a whole byte and is dropped with an
// error, though the bytes decoded before it are still returned.
func DecodeBase64(b []byte) ([]byte, error) {
	clean := make([]byte, 0, len(b))
	for _, c := range b {
		if c == '=' && len(clean) > 0 {
			break
		}
		if isBase64Char(c) {
			clean = append(clean, c)
		}
	}

	var trailErr error
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
		trailErr = fmt.Errorf("base64: dangling character at offset %d", len(clean))
	}

	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(clean)))
	n, err := base64.RawStdEncoding.Decode(out, clean)
	if err != nil {
		return out[:n], fmt.Errorf("base64: %w", err)
	}

	return out[:n], trailErr
}

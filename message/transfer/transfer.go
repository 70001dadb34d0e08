package transfer

import (
	"strings"

	"github.com/zostay/mailsplit/message/header"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be decoded from quoted-printable
	Base64          = "base64"           // bytes will be decoded from base64
)

// Decoder turns transfer encoded bytes back into their binary form. A decoder
// returns whatever it could recover even when it also returns an error.
type Decoder func([]byte) ([]byte, error)

// Decoders defines the supported Content-transfer-encodings and how to decode
// them. It can be modified to change the global handling of transfer
// encodings. Keys are lower case.
var Decoders = map[string]Decoder{
	None:            DecodeAsIs,
	Bit7:            DecodeAsIs,
	Bit8:            DecodeAsIs,
	Binary:          DecodeAsIs,
	QuotedPrintable: DecodeQuotedPrintable,
	Base64:          DecodeBase64,
}

// Normalize returns the encoding name as it is looked up in Decoders.
func Normalize(cte string) string {
	return strings.ToLower(strings.TrimSpace(cte))
}

// Decode decodes b according to the named transfer encoding. Unknown
// encodings leave the bytes as-is.
func Decode(cte string, b []byte) ([]byte, error) {
	if dec, ok := Decoders[Normalize(cte)]; ok {
		return dec(b)
	}
	return b, nil
}

// ApplyTransferDecoding checks the given header to see if transfer decoding
// ought to be performed and decodes b if so. Multipart content is never
// transfer decoded, nor is content with no readable Content-transfer-encoding.
func ApplyTransferDecoding(h *header.Header, b []byte) ([]byte, error) {
	ct, err := h.GetContentType()
	if err == nil && ct != nil && ct.Type() == "multipart" {
		return b, nil
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return b, nil
	}

	return Decode(cte, b)
}

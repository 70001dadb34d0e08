// Package transfer decodes Content-transfer-encodings. Only quoted-printable
// and base64 change the bytes. The 7bit, 8bit, binary, and missing encodings
// leave the bytes as-is, as does any encoding this package does not know.
//
// Decoding is forgiving. Mail in the wild frequently carries base64 with
// stray characters or broken padding and quoted-printable with invalid
// escapes, so the decoders recover as much as they can and report the
// problem alongside the recovered bytes.
package transfer

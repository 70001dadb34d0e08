// Package field holds the low-level representation of a single header field.
// Every parsed field remembers the exact bytes it was read from, so a header
// can be written back out byte-for-byte, while also exposing the field name
// and the unfolded body for inspection.
//
// Bodies are kept exactly as they appeared on the wire (minus folding).
// RFC 2047 encoded-words are only decoded on request via Decode, because
// several consumers (parameter parsing, address splitting) need to see the
// raw text before any decoding has taken place.
package field

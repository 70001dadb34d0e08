// Package header implements the ordered header map of an email message or
// message part. Fields are kept in the order they were read, duplicates are
// preserved, and lookups by name are case-insensitive.
//
// Getters return the raw, unfolded field body. Use GetDecoded when RFC 2047
// encoded-words should be turned into text. Getters that may find nothing
// return ErrNoSuchField so callers can tell "absent" apart from "empty".
package header

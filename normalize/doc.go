// Package normalize turns a parsed mail header into a normalized view:
// cleaned up address lists, the addresses and domains found in them,
// decoded extension headers, and the send time in UTC with the original
// timezone token kept aside.
//
// Nothing here fails. Values that cannot be decoded are kept raw and dates
// that cannot be parsed are left out.
package normalize

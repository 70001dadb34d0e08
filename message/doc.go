// Package message parses email messages into a tree of parts. The parser is
// lenient and keeps going when the input is not strictly correct, which is
// the normal state of mail found in spam traps and malware captures.
//
// Every message or part is either an *Opaque, a header and a raw body, or a
// *Multipart, a header and a list of parts:
//
//	msg, err := message.Parse(r)
//	if err != nil {
//	  panic(err)
//	}
//
//	switch m := msg.(type) {
//	case *message.Opaque:
//	  // m.Reader holds the raw body
//	case *message.Multipart:
//	  // m.GetParts() holds the parts and m.Epilogue() any trailing data
//	}
//
// Bodies keep their Content-transfer-encoding. The transfer package decodes
// them and the walk package visits every part in document order.
package message

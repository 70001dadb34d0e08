// Package mailsplit takes mail apart so that the pieces can be analyzed on
// their own. It understands three kinds of input: a raw RFC822 message, a
// MIME message (possibly with junk before the first header line), and an
// Outlook .msg file stored in an OLE2 compound file.
//
// The work is split according to the part of the message involved. The
// message package parses a message into a tree of message.Opaque leaves and
// message.Multipart branches while keeping every byte of the input, so the
// parts can be written back out exactly as they arrived. The message/header
// package provides the header on top of that, and message/transfer undoes
// the Content-transfer-encoding of a leaf.
//
// The analyses are built on those pieces:
//
//   - normalize turns a header into mail features such as the sender, the
//     recipients, their domains, the subject, and the date.
//   - mimewalk visits every leaf of a MIME message, emitting the body texts
//     and an extracted child for each attachment along with a summary of the
//     whole message.
//   - compound reads the streams of an Outlook message and recovers its
//     header fields, body, and attachments.
//   - dictionary builds the candidate passwords for an encrypted attachment
//     from the words of the bodies that came with it.
//
// The analyze package ties these together into the entry points used by the
// mailsplit command, and result holds what they produce.
package mailsplit

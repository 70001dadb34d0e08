// Package mimewalk decomposes a MIME message into the artifacts an analyst
// cares about: the decoded payload of every part, the mail body text, and a
// summary of what the message is made of.
//
// Walk visits the parts of the message in document order, including the
// parts of any message/rfc822 attachment. Each part with a payload is hashed
// and counted. Parts that look like the mail body are captured as text.
// Everything else not filtered by content type is emitted as a child
// artifact, and archive-like attachments get a password dictionary built
// from the body text in case they are encrypted.
package mimewalk

package compound

import (
	"regexp"
	"strings"

	"github.com/zostay/mailsplit/message/header"
)

// Property tags of the top-level message properties used by the accessors.
const (
	TagSubject          = "0037"
	TagTransportHeaders = "007D"
	TagSenderName       = "0C1A"
	TagSenderEmail      = "0C1F"
	TagDisplayCc        = "0E03"
	TagDisplayTo        = "0E04"
	TagBody             = "1000"
)

var (
	headerStart = regexp.MustCompile(`^\w{2,}: [\w\d]`)
	lineBreaks  = regexp.MustCompile(`\r\n|\n|\r`)
)

// Header returns the RFC822 transport header that Outlook keeps with mail it
// received. Anything before the first line that looks like a header field is
// skipped, and the header ends at the first blank line.
func (m *Message) Header() (*header.Header, bool) {
	h := m.cached("header", func() any {
		raw, ok := m.Property(TagTransportHeaders)
		if !ok {
			return (*header.Header)(nil)
		}

		lines := lineBreaks.Split(raw, -1)
		start := -1
		for i, line := range lines {
			if headerStart.MatchString(line) {
				start = i
				break
			}
		}
		if start < 0 {
			return (*header.Header)(nil)
		}

		var b strings.Builder
		for _, line := range lines[start:] {
			if line == "" {
				break
			}
			b.WriteString(line)
			b.WriteString(header.CRLF.String())
		}

		h, err := header.Parse([]byte(b.String()), header.CRLF)
		if err != nil {
			return (*header.Header)(nil)
		}
		return h
	}).(*header.Header)

	return h, h != nil
}

func (m *Message) headerField(name string) (string, bool) {
	h, ok := m.Header()
	if !ok {
		return "", false
	}
	return h.GetFirst(name)
}

// Date returns the date of the message as RFC822 text. It comes from the
// transport header when it has one. Otherwise it is recovered from the
// binary properties stream. Mail without a transport header is usually mail
// that was composed rather than received.
func (m *Message) Date() (string, bool) {
	if date, ok := m.headerField(header.Date); ok {
		return date, true
	}

	d := m.cached("date", func() any {
		t, ok := m.propertiesTime()
		if !ok {
			return ""
		}
		return t.Format(rfc822UTC)
	}).(string)

	return d, d != ""
}

// Sender returns the From of the message. Without a transport header it is
// put together from the sender name and address properties.
func (m *Message) Sender() (string, bool) {
	if from, ok := m.headerField(header.From); ok {
		return from, true
	}

	name, hasName := m.Property(TagSenderName)
	email, hasEmail := m.Property(TagSenderEmail)
	switch {
	case hasName && hasEmail:
		return name + " <" + email + ">", true
	case hasName:
		return name, true
	case hasEmail:
		return email, true
	}
	return "", false
}

// To returns the To of the message, falling back to the display list of
// recipients.
func (m *Message) To() (string, bool) {
	if to, ok := m.headerField(header.To); ok {
		return to, true
	}

	to, ok := m.Property(TagDisplayTo)
	return strings.TrimRight(to, "\x00"), ok
}

// CC returns the Cc of the message, falling back to the display list of
// carbon copy recipients.
func (m *Message) CC() (string, bool) {
	if cc, ok := m.headerField(header.Cc); ok {
		return cc, true
	}

	cc, ok := m.Property(TagDisplayCc)
	return strings.TrimRight(cc, "\x00"), ok
}

// Subject returns the subject property.
func (m *Message) Subject() (string, bool) {
	return m.Property(TagSubject)
}

// Body returns the plain text body property.
func (m *Message) Body() (string, bool) {
	return m.Property(TagBody)
}

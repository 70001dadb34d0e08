package compound

import (
	"fmt"
	"io"
)

// Dump writes a readable summary of the message to w: the date, the
// correspondents, the subject, the attachment names, and the body.
func (m *Message) Dump(w io.Writer) error {
	date, _ := m.Date()
	from, _ := m.Sender()
	to, _ := m.To()
	cc, _ := m.CC()
	subject, _ := m.Subject()
	body, _ := m.Body()

	names := []string{}
	for _, a := range m.Attachments() {
		names = append(names, a.Filename())
	}

	_, err := fmt.Fprintf(w,
		"Date: %s\nFrom: %s\nTo: %s\nCc: %s\nSubject: %s\nAttachments: %q\n\n%s\n",
		date, from, to, cc, subject, names, body)
	return err
}

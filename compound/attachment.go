package compound

import (
	"sort"
	"strconv"
	"strings"
)

// Attachment property tags, relative to the attachment storage.
const (
	TagAttachData      = "37010102"
	TagAttachShortName = "3704"
	TagAttachLongName  = "3707"
)

// Attachment is a file attached to an Outlook message.
type Attachment struct {
	// Dir is the name of the storage holding the attachment.
	Dir string

	LongFilename  string
	ShortFilename string
	Data          []byte

	index int
}

// Filename returns the base name of the long filename, or of the short one
// when there is no long one. An attachment without any name gets a
// placeholder built from its storage name so every attachment has one.
func (a *Attachment) Filename() string {
	name := a.LongFilename
	if name == "" {
		name = a.ShortFilename
	}
	if name == "" {
		id := strconv.Itoa(a.index)
		if _, suffix, ok := strings.Cut(a.Dir, "#"); ok && suffix != "" {
			id = suffix
		}
		return "UnknownFilename " + id + ".bin"
	}

	if ix := strings.LastIndexAny(name, `/\`); ix >= 0 {
		name = name[ix+1:]
	}
	return name
}

// Attachments returns the attachments that have a data stream, ordered by
// storage name. Attachments without data, such as embedded messages, are
// left out.
func (m *Message) Attachments() []*Attachment {
	return m.cached("attachments", func() any {
		seen := map[string]bool{}
		var dirs []string
		for _, s := range m.streams {
			dir, _, nested := strings.Cut(s.path, "/")
			if !nested || seen[strings.ToLower(dir)] {
				continue
			}
			if strings.HasPrefix(strings.ToLower(dir), attachPrefix) {
				seen[strings.ToLower(dir)] = true
				dirs = append(dirs, dir)
			}
		}
		sort.Strings(dirs)

		atts := make([]*Attachment, 0, len(dirs))
		for i, dir := range dirs {
			prefix := dir + "/" + substgPrefix
			data, ok := m.ReadStream(prefix + TagAttachData)
			if !ok {
				continue
			}

			long, _ := m.ReadStringStream(prefix+TagAttachLongName, PreferUnicode)
			short, _ := m.ReadStringStream(prefix+TagAttachShortName, PreferUnicode)
			atts = append(atts, &Attachment{
				Dir:           dir,
				LongFilename:  long,
				ShortFilename: short,
				Data:          data,
				index:         i,
			})
		}
		return atts
	}).([]*Attachment)
}

package header

import (
	"errors"

	"github.com/zostay/mailsplit/message/header/field"
)

// Parse parses the given bytes into a Header using the given line break. The
// entire input is treated as header.
//
// If the input starts with junk that does not look like a header field, the
// junk is skipped and a *field.BadStartError is returned alongside the
// usable Header.
func Parse(m []byte, lb Break) (*Header, error) {
	lines, err := field.ParseLines(m, lb.Bytes())

	var badStartErr *field.BadStartError
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	for i, line := range lines {
		fields[i] = field.Parse(line, lb.Bytes())
	}

	h := &Header{
		Base: Base{
			lbr:    lb,
			fields: fields,
		},
	}

	return h, finalErr
}

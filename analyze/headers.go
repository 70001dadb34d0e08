package analyze

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/zostay/mailsplit/message"
	"github.com/zostay/mailsplit/normalize"
	"github.com/zostay/mailsplit/result"
)

// HeaderScanDepth is how many bytes Headers searches for a header field.
const HeaderScanDepth = 2048

var headerSignature = regexp.MustCompile(`\w{3,}: ["\w=]`)

// Headers reports the normalized mail header found in r. Anything before
// the first thing that looks like a header field is skipped, which copes with
// mail saved with a preamble such as an mbox From_ line.
//
// A header without a From field yields no features.
func Headers(r io.ReadSeeker) (result.Features, error) {
	origin, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("unable to find read position: %w", err)
	}

	buf := make([]byte, HeaderScanDepth)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	loc := headerSignature.FindIndex(buf[:n])
	if loc == nil {
		return nil, fmt.Errorf("%w: nothing resembling a header field", ErrOptOut)
	}

	if _, err := r.Seek(origin+int64(loc[0]), io.SeekStart); err != nil {
		return nil, fmt.Errorf("unable to seek to header: %w", err)
	}

	msg, err := message.Parse(r, message.WithoutMultipart())
	if err != nil {
		return nil, fmt.Errorf("unable to parse header: %w", err)
	}

	hdrs, ok := normalize.Normalize(msg.GetHeader())
	if !ok {
		return result.Features{}, nil
	}
	return hdrs.Features(), nil
}

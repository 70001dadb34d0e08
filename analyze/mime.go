package analyze

import (
	"errors"
	"fmt"
	"io"

	"github.com/zostay/mailsplit/mimewalk"
	"github.com/zostay/mailsplit/result"
)

// MIME decomposes the MIME message read from r with mimewalk.Walk.
func MIME(r io.Reader, cfg mimewalk.Config, emit result.Emitter) (result.Features, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read message: %w", err)
	}

	sum, err := mimewalk.Walk(data, cfg, emit)
	if errors.Is(err, mimewalk.ErrNoMimeSignature) || errors.Is(err, mimewalk.ErrNotMimeVersioned) {
		return nil, fmt.Errorf("%w: %w", ErrOptOut, err)
	} else if err != nil {
		return nil, err
	}

	return sum.Features(), nil
}

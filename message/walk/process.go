// Package walk visits the parts of a parsed message in document order.
package walk

import (
	"errors"

	"github.com/zostay/mailsplit/message"
)

// ErrSkipParts may be returned by a Processor to skip the sub-parts of the
// current part. AndProcess does not return it.
var ErrSkipParts = errors.New("skip sub-parts")

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a message and its sub-parts.
//
// The Processor is given a part and the ancestry of the part. If len(parents)
// is zero, then this is the part AndProcess() was called upon, which might
// not be the root message.
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part message.Part, parents []message.Part) error

// AndProcess walks the part tree of a message (or a part of a message) and
// calls the given Processor for each part found, parents before children. It
// returns nil once all parts have been processed or the first error returned
// by the Processor other than ErrSkipParts.
func AndProcess(
	processor Processor,
	msg message.Part,
) error {
	parents := make([]message.Part, 0, 10)
	return andProcess(processor, msg, parents)
}

func andProcess(
	processor Processor,
	part message.Part,
	parents []message.Part,
) error {
	err := processor(part, parents)
	if errors.Is(err, ErrSkipParts) {
		return nil
	} else if err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.GetParts() {
			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Leaves returns every part of msg that has no sub-parts, in document order.
func Leaves(msg message.Part) []message.Part {
	leaves := make([]message.Part, 0, 4)
	_ = AndProcess(func(part message.Part, _ []message.Part) error {
		if !part.IsMultipart() {
			leaves = append(leaves, part)
		}
		return nil
	}, msg)
	return leaves
}

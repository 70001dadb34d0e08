// Package scanner adapts bufio.SplitFunc for splitters that consume input
// without producing a token on every call.
package scanner

import (
	"bufio"
	"errors"
)

// ErrContinue is a special SplitFunc signal that tells the wrapper made by
// MakeSplitFuncExitByAdvance to call the split function again rather than
// return, even where the wrapper would otherwise return.
var ErrContinue = errors.New("split func continue")

// MakeSplitFuncExitByAdvance wraps a bufio.SplitFunc so that consuming input
// without returning a token does not end the scan.
//
// A plain bufio.Scanner stops at EOF as soon as the split function returns a
// nil token. A split function that skips over input it does not want to
// return as a token, like the preamble of a multipart body, would have to
// loop internally to avoid that. The wrapper runs that loop instead. It keeps
// calling split on the unconsumed data, totaling the advances, until split
// returns a token, asks for more data by advancing 0, consumes all the data,
// or returns an error. ErrContinue forces another iteration in any case.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)

			// len(data)-advance < 0 is an error for the scanner to report
			if !errors.Is(err, ErrContinue) && (token != nil || advance == 0 || len(data)-advance <= 0 || err != nil) {
				return totalAdvance + advance, token, err
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}

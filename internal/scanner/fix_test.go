package scanner_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/mailsplit/internal/scanner"
)

// splitKeepers returns only lines starting with "+" and skips the rest
// without returning a token.
func splitKeepers(data []byte, atEOF bool) (int, []byte, error) {
	ix := bytes.IndexByte(data, '\n')
	if ix < 0 {
		if !atEOF {
			return 0, nil, nil
		}
		if len(data) > 0 && data[0] == '+' {
			return len(data), data[1:], bufio.ErrFinalToken
		}
		return len(data), nil, nil
	}

	if data[0] == '+' {
		return ix + 1, data[1:ix], nil
	}
	return ix + 1, nil, nil
}

func TestMakeSplitFuncExitByAdvance(t *testing.T) {
	t.Parallel()

	sc := bufio.NewScanner(strings.NewReader("skip\n+one\nskip\nskip\n+two\nskip"))
	sc.Split(scanner.MakeSplitFuncExitByAdvance(splitKeepers))

	var got []string
	for sc.Scan() {
		got = append(got, sc.Text())
	}

	assert.NoError(t, sc.Err())
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestMakeSplitFuncExitByAdvance_Continue(t *testing.T) {
	t.Parallel()

	calls := 0
	split := func(data []byte, atEOF bool) (int, []byte, error) {
		calls++
		if calls == 1 {
			return 0, nil, scanner.ErrContinue
		}
		return len(data), data, bufio.ErrFinalToken
	}

	sc := bufio.NewScanner(strings.NewReader("all"))
	sc.Split(scanner.MakeSplitFuncExitByAdvance(split))

	assert.True(t, sc.Scan())
	assert.Equal(t, "all", sc.Text())
	assert.Equal(t, 2, calls)
}

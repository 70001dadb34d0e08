package dictionary

import (
	"strings"
	"unicode/utf8"
)

type tokenState int

const (
	startRecord tokenState = iota
	startField
	inField
	inQuoted
	quoteInQuoted
)

// isLineBreak matches the characters that end a line in splitLines. A CR
// directly followed by LF is treated as one break by splitLines itself.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// splitLines splits text into lines without their line breaks. A trailing
// break does not produce an empty final line.
func splitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); {
		r, size := rune(text[i]), 1
		if r >= 0x80 {
			r, size = utf8.DecodeRuneInString(text[i:])
		}

		if !isLineBreak(r) {
			i += size
			continue
		}

		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// tokens splits text into space separated fields. A field that starts with a
// double quote runs to the matching quote, may contain spaces, and may span
// lines, which are joined with nothing between them. A doubled quote inside a
// quoted field is a literal quote. Text following the closing quote is added
// to the field. A quote inside an unquoted field is kept as-is.
func tokens(text string) []string {
	var (
		out   []string
		field strings.Builder
		state = startRecord
	)

	save := func() {
		out = append(out, field.String())
		field.Reset()
	}

	for _, line := range splitLines(text) {
		for _, c := range line {
			switch state {
			case startRecord, startField:
				switch c {
				case '"':
					state = inQuoted
				case ' ':
					save()
					state = startField
				default:
					field.WriteRune(c)
					state = inField
				}
			case inField:
				if c == ' ' {
					save()
					state = startField
				} else {
					field.WriteRune(c)
				}
			case inQuoted:
				if c == '"' {
					state = quoteInQuoted
				} else {
					field.WriteRune(c)
				}
			case quoteInQuoted:
				switch c {
				case '"':
					field.WriteRune('"')
					state = inQuoted
				case ' ':
					save()
					state = startField
				default:
					field.WriteRune(c)
					state = inField
				}
			}
		}

		switch state {
		case inQuoted, startRecord:
			// an open quote continues on the next line and an empty line
			// has no fields
		default:
			save()
			state = startRecord
		}
	}

	if state == inQuoted {
		save()
	}

	return out
}

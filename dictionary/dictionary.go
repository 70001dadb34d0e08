package dictionary

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Characters trimmed from both ends of every candidate.
const trimSet = ",.()[]:;'\" "

// Bounds on candidate length in characters. Both are exclusive.
const (
	MinWordLength = 2
	MaxWordLength = 20
)

// Words returns the sorted, de-duplicated password candidates found in the
// given bodies, plus the filename and the filename without its final
// extension when a filename is given.
//
// Tabs count as spaces. Invalid UTF-8 is replaced with U+FFFD. Candidates
// must be longer than MinWordLength and shorter than MaxWordLength
// characters.
func Words(bodies [][]byte, filename string) []string {
	set := make(map[string]struct{})
	for _, b := range bodies {
		text := strings.ReplaceAll(strings.ToValidUTF8(string(b), "\uFFFD"), "\t", " ")
		for _, tok := range tokens(text) {
			set[strings.Trim(tok, trimSet)] = struct{}{}
		}
	}

	if filename != "" {
		set[filename] = struct{}{}
		set[strings.TrimSuffix(filename, filepath.Ext(filename))] = struct{}{}
	}

	words := make([]string, 0, len(set))
	for w := range set {
		if n := utf8.RuneCountInString(w); n > MinWordLength && n < MaxWordLength {
			words = append(words, w)
		}
	}
	sort.Strings(words)

	return words
}

// Build returns Words joined by newlines. The output is identical for
// identical input.
func Build(bodies [][]byte, filename string) []byte {
	words := Words(bodies, filename)
	bs := make([][]byte, len(words))
	for i, w := range words {
		bs[i] = []byte(w)
	}
	return bytes.Join(bs, []byte{'\n'})
}

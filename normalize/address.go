package normalize

import (
	"regexp"
	"strings"

	"github.com/zostay/mailsplit/message/header"
)

// Sentinels that stand in for separators inside quoted strings while an
// address list is split.
const (
	quotedSemicolon = "\x01"
	quotedComma     = "\x02"
)

var quotedSpan = regexp.MustCompile(`".+?"`)

var unescapeParens = strings.NewReplacer(`\(`, "(", `\)`, ")")

// SplitAddressList splits an address header value into its entries.
//
// Both commas and semicolons separate entries, except inside double quoted
// strings. Entries are trimmed and empty entries are dropped. Escaped
// parentheses are unescaped first. An unquoted display name holding a comma
// is split in two.
func SplitAddressList(raw string) []string {
	raw = unescapeParens.Replace(raw)

	raw = quotedSpan.ReplaceAllStringFunc(raw, func(q string) string {
		q = strings.ReplaceAll(q, ";", quotedSemicolon)
		return strings.ReplaceAll(q, ",", quotedComma)
	})

	raw = strings.ReplaceAll(raw, ",", ";")

	segs := strings.Split(raw, ";")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		seg = strings.ReplaceAll(seg, quotedSemicolon, ";")
		seg = strings.ReplaceAll(seg, quotedComma, ",")
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}

	return out
}

// AddressDomains extracts the email addresses from each entry and returns
// those with an @ along with their domains. The domain is whatever follows
// the first @, case unchanged.
func AddressDomains(entries []string) (addrs, domains []string) {
	for _, entry := range entries {
		for _, a := range header.Addresses(entry) {
			at := strings.Index(a, "@")
			if at < 0 {
				continue
			}

			dom := a[at+1:]
			if end := strings.Index(dom, "@"); end >= 0 {
				dom = dom[:end]
			}

			addrs = append(addrs, a)
			domains = append(domains, dom)
		}
	}
	return addrs, domains
}

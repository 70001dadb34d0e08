package header

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList parses any address field body. A strict parse is tried
// first. If that fails, a very lenient parse is used instead, which returns
// something for any input even if the result is odd.
func ParseAddressList(body string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		al = parseEmailAddressList(body)
	}

	return al
}

// Addresses parses body with ParseAddressList and returns the bare addresses
// found, with angle brackets and surrounding space removed. Empty addresses
// are skipped.
func Addresses(body string) []string {
	al := ParseAddressList(body)
	out := make([]string, 0, len(al))
	for _, a := range al {
		s := strings.Trim(a.Address(), "<> \t")
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// extractComments splits s into the text outside parentheses and the text
// inside them. Unbalanced closing parentheses are kept as text.
func extractComments(s string) (string, string) {
	var clean, comment strings.Builder
	nestLevel := 0
	for _, c := range s {
		switch {
		case c == '(':
			nestLevel++
			if nestLevel > 1 {
				comment.WriteRune(c)
			}
		case c == ')':
			nestLevel--
			switch {
			case nestLevel == 0:
			case nestLevel < 0:
				nestLevel = 0
				clean.WriteRune(c)
			default:
				comment.WriteRune(c)
			}
		case nestLevel > 0:
			comment.WriteRune(c)
		default:
			clean.WriteRune(c)
		}
	}

	return clean.String(), comment.String()
}

// parseEmailAddressList is the fallback when the strict parser gives up.
//
// The value is split on commas. For each piece, comments are pulled out, the
// last word is taken as the address and any words before it as the display
// name. Groups are never produced.
func parseEmailAddressList(v string) addr.AddressList {
	mbs := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(mbs))
	for _, orig := range mbs {
		mb, com := extractComments(orig)

		mb = strings.TrimSpace(mb)
		com = strings.TrimSpace(com)

		parts := strings.Fields(mb)
		if len(parts) == 0 {
			continue
		}

		dn := strings.Join(parts[:len(parts)-1], " ")
		email := strings.Trim(parts[len(parts)-1], "<>")
		if email == "" {
			continue
		}

		var addrSpec *addr.AddrSpec
		if i := strings.Index(email, "@"); i > -1 {
			addrSpec = addr.NewAddrSpecParsed(email[:i], email[i+1:], email)
		} else {
			addrSpec = addr.NewAddrSpecParsed(email, "", email)
		}

		mailbox, err := addr.NewMailboxParsed(dn, addrSpec, com, orig)
		if err != nil {
			mailbox, _ = addr.NewMailboxParsed(dn, addrSpec, "", orig)
		}

		as = append(as, mailbox)
	}

	return as
}

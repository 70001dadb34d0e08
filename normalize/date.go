package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/zostay/mailsplit/message/header"
)

var timezoneToken = regexp.MustCompile(`([+-]\d{4}|[A-Z]{3})$`)

// ParseDate parses a Date header value. It returns the time in UTC, the
// timezone token found at the end of the value (a numeric offset or a three
// letter zone name), and whether the value could be parsed at all. The token
// is returned even when the date cannot be parsed.
func ParseDate(value string) (time.Time, string, bool) {
	value = strings.TrimSpace(value)

	tz := timezoneToken.FindString(value)

	t, err := header.ParseTime(value)
	if err != nil {
		return time.Time{}, tz, false
	}

	return t.UTC(), tz, true
}

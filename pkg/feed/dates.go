package feed

import (
	"net/mail"
	"strings"
	"time"
)

// dateLayouts covers the formats seen across publisher feeds.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseArticleDate parses a free-form feed date. The second return value is
// false when no known layout matches.
func ParseArticleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Last resort: full RFC 5322 parsing handles oddities like missing
	// weekday or obsolete zone names.
	if t, err := mail.ParseDate(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

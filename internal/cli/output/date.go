package output

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the shapes the SharePay API uses for dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// FormatDate renders an API date as the zh-TW short date Y/M/D, without
// zero padding. Input it cannot parse is returned unchanged.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	t = t.In(time.Local)
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses any of the accepted API date shapes. A zone-less
// datetime is read as local time, like a browser does.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

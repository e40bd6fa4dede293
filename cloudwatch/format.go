package cloudwatch

import (
	"fmt"
	"regexp"
	"time"
)

var ansiColor = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripColor removes ANSI escape sequences from a log message, for
// terminals (or files) that should not see raw color codes.
func StripColor(s string) string {
	return ansiColor.ReplaceAllString(s, "")
}

// FormatEpoch renders timestamps the way every column and event line
// displays them.  Zero times render empty, since streams without
// events have no timestamps.
func FormatEpoch(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatInterval renders a duration as [D days, ]H:MM:SS.
func FormatInterval(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)

	days := int(d / (24 * time.Hour))
	rem := d % (24 * time.Hour)
	h := int(rem / time.Hour)
	m := int(rem % time.Hour / time.Minute)
	s := int(rem % time.Minute / time.Second)

	switch {
	case days == 1:
		return fmt.Sprintf("1 day, %d:%02d:%02d", h, m, s)
	case days > 1:
		return fmt.Sprintf("%d days, %d:%02d:%02d", days, h, m, s)
	default:
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
}

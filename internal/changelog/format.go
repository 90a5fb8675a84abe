package changelog

import (
	"strings"
	"time"
)

// entryDateLayout is the fixed date format for RPM changelog entries.
// rpmbuild is strict about this format; the weekday and month abbreviations
// must be the locale-independent English forms.
const entryDateLayout = "Mon Jan 02 2006"

// FormatLine renders a single RPM changelog entry line:
//
//	* <Weekday> <Month> <Day> <Year> - <author>[ - <comment>]
//
// The trailing comment segment is omitted entirely when comment is empty.
func FormatLine(when time.Time, author, comment string) string {
	var sb strings.Builder
	sb.WriteString("* ")
	sb.WriteString(when.Format(entryDateLayout))
	sb.WriteString(" - ")
	sb.WriteString(author)
	if comment != "" {
		sb.WriteString(" - ")
		sb.WriteString(comment)
	}
	return sb.String()
}

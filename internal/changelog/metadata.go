package changelog

import (
	"fmt"
	"strings"
	"time"
)

// CommitMetadata holds the fields extracted from a single revision's log.
type CommitMetadata struct {
	// Author is the committer as recorded in the log, typically
	// "Name <email>".
	Author string
	// Time is the commit timestamp in UTC.
	Time time.Time
}

// logTimeLayout matches timestamps as rendered by the version-control log:
// weekday, year-month-day, hour:minute:second.
const logTimeLayout = "Mon 2006-01-02 15:04:05"

const (
	committerPrefix = "committer:"
	timestampPrefix = "timestamp:"
	utcOffsetSuffix = "+0000"
)

// ParseCommitMetadata extracts the committer and timestamp fields from
// line-oriented log text. The log query is forced to UTC, so a trailing
// +0000 offset marker on the timestamp carries no information; it is
// stripped before parsing and not retained.
//
// A timestamp that does not match the expected pattern is a fatal parse
// error; there is no silent default.
func ParseCommitMetadata(logText string) (*CommitMetadata, error) {
	var meta CommitMetadata

	for _, line := range strings.Split(logText, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, committerPrefix):
			meta.Author = strings.TrimSpace(strings.TrimPrefix(line, committerPrefix))
		case strings.HasPrefix(line, timestampPrefix):
			raw := strings.TrimSpace(strings.TrimPrefix(line, timestampPrefix))
			raw = strings.TrimSpace(strings.TrimSuffix(raw, utcOffsetSuffix))
			when, err := time.Parse(logTimeLayout, raw)
			if err != nil {
				return nil, fmt.Errorf("parsing log timestamp %q: %w", raw, err)
			}
			meta.Time = when
		}
	}

	if meta.Author == "" {
		return nil, fmt.Errorf("log output has no committer field")
	}
	if meta.Time.IsZero() {
		return nil, fmt.Errorf("log output has no timestamp field")
	}

	return &meta, nil
}

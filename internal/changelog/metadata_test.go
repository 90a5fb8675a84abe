package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitMetadata(t *testing.T) {
	tests := map[string]struct {
		log        string
		wantAuthor string
		wantTime   time.Time
	}{
		"with utc offset marker": {
			log:        "revision: abc\ncommitter: Jane Dev <jane@example.com>\ntimestamp: Mon 2013-04-15 10:30:00 +0000\n",
			wantAuthor: "Jane Dev <jane@example.com>",
			wantTime:   time.Date(2013, 4, 15, 10, 30, 0, 0, time.UTC),
		},
		"without offset marker": {
			log:        "committer: Jane Dev <jane@example.com>\ntimestamp: Mon 2013-04-15 10:30:00\n",
			wantAuthor: "Jane Dev <jane@example.com>",
			wantTime:   time.Date(2013, 4, 15, 10, 30, 0, 0, time.UTC),
		},
		"indented fields": {
			log:        "  committer: Jane Dev <jane@example.com>\n  timestamp: Mon 2013-04-15 10:30:00 +0000\n",
			wantAuthor: "Jane Dev <jane@example.com>",
			wantTime:   time.Date(2013, 4, 15, 10, 30, 0, 0, time.UTC),
		},
		"unrelated lines ignored": {
			log:        "branch nick: trunk\ncommitter: Jane Dev <jane@example.com>\ntimestamp: Mon 2013-04-15 10:30:00 +0000\nmessage:\n  fix things\n",
			wantAuthor: "Jane Dev <jane@example.com>",
			wantTime:   time.Date(2013, 4, 15, 10, 30, 0, 0, time.UTC),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			meta, err := ParseCommitMetadata(tc.log)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAuthor, meta.Author)
			assert.Equal(t, tc.wantTime, meta.Time)
		})
	}
}

func TestParseCommitMetadata_Errors(t *testing.T) {
	tests := map[string]struct {
		log     string
		wantErr string
	}{
		"malformed timestamp": {
			log:     "committer: a\ntimestamp: 2013/04/15 10:30\n",
			wantErr: "parsing log timestamp",
		},
		"missing committer": {
			log:     "timestamp: Mon 2013-04-15 10:30:00 +0000\n",
			wantErr: "no committer field",
		},
		"missing timestamp": {
			log:     "committer: a\n",
			wantErr: "no timestamp field",
		},
		"empty log": {
			log:     "",
			wantErr: "no committer field",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCommitMetadata(tc.log)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

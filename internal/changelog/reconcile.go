package changelog

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/the-gball/cloud-init-rax-pkg/internal/vcs"
)

// headerPattern matches a changelog version header: a numeric triple with an
// optional trailing colon, alone on the line after trimming. The triple is
// not validated as a meaningful release number.
var headerPattern = regexp.MustCompile(`^\d+\.\d+\.\d+:?$`)

// unreleasedAuthor is the placeholder author for the in-development head
// version, which has no tag to attribute yet.
const unreleasedAuthor = "??"

// Reconciler rewrites an upstream changelog into RPM changelog entries by
// resolving version headers against repository tags.
type Reconciler struct {
	// Source answers the tag listing and per-revision log queries.
	Source vcs.Source
	// Warn receives a diagnostic for every unresolved header beyond the
	// first miss. Defaults to os.Stderr. Warnings never appear in the
	// reconciled output text.
	Warn io.Writer
	// Now supplies the wall-clock date for the synthetic unreleased entry.
	// Defaults to time.Now.
	Now func() time.Time
}

// Reconcile walks changelogText top to bottom and returns the reconciled
// changelog block, lines joined with newlines.
//
// Blank lines are dropped. Non-header lines pass through unchanged, in their
// original relative order. Each header line resolves to exactly one output
// line, except unresolved headers after the first miss, which contribute
// nothing: the first header with no matching tag is taken to be the
// unreleased head version and replaced with a synthetic entry, while later
// misses only produce a warning. This decision is made statefully while
// scanning; it is not determined upfront.
func (r *Reconciler) Reconcile(changelogText string) (string, error) {
	resolver := NewTagResolver(r.Source)
	missing := 0
	var out []string

	for _, line := range strings.Split(changelogText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !headerPattern.MatchString(trimmed) {
			out = append(out, line)
			continue
		}

		version := strings.TrimSuffix(trimmed, ":")
		entry, ok, err := r.resolveEntry(resolver, version)
		if err != nil {
			return "", err
		}
		if ok {
			out = append(out, entry)
			continue
		}

		missing++
		if missing == 1 {
			out = append(out, FormatLine(r.now(), unreleasedAuthor, ""))
			continue
		}
		fmt.Fprintf(r.warn(), "no tag found for version %s, entry dropped\n", version)
	}

	return strings.Join(out, "\n"), nil
}

// resolveEntry turns a version header into a formatted entry line. The
// second return is false when the version has no matching tag; any other
// failure (tag listing, log query, metadata parse) is fatal.
func (r *Reconciler) resolveEntry(resolver *TagResolver, version string) (string, bool, error) {
	revision, ok, err := resolver.Resolve(version)
	if err != nil || !ok {
		return "", false, err
	}

	logText, err := r.Source.ShowLog(revision)
	if err != nil {
		return "", false, fmt.Errorf("reading log for revision %s: %w", revision, err)
	}

	meta, err := ParseCommitMetadata(logText)
	if err != nil {
		return "", false, fmt.Errorf("revision %s: %w", revision, err)
	}

	return FormatLine(meta.Time, meta.Author, version), true, nil
}

func (r *Reconciler) warn() io.Writer {
	if r.Warn != nil {
		return r.Warn
	}
	return os.Stderr
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

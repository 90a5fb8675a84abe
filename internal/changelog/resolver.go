package changelog

import (
	"fmt"

	"github.com/the-gball/cloud-init-rax-pkg/internal/vcs"
)

// TagResolver resolves release versions against the repository tag listing.
// The listing is fetched once, on first use; tag entries are immutable for
// the duration of a build.
type TagResolver struct {
	source vcs.Source
	tags   map[string]string
}

// NewTagResolver returns a resolver backed by the given source.
func NewTagResolver(source vcs.Source) *TagResolver {
	return &TagResolver{source: source}
}

// Resolve returns the revision identifier paired with a tag name exactly
// equal to version. The second return is false when no tag matches; that is
// not an error. A failed tag listing query is returned as an error and is
// fatal to the caller.
func (r *TagResolver) Resolve(version string) (string, bool, error) {
	if r.tags == nil {
		tags, err := r.source.Tags()
		if err != nil {
			return "", false, fmt.Errorf("listing tags: %w", err)
		}
		if tags == nil {
			tags = make(map[string]string)
		}
		r.tags = tags
	}

	revision, ok := r.tags[version]
	return revision, ok, nil
}

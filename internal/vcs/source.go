// Package vcs provides the version-control collaborator consumed by the
// changelog reconciler and the build pipeline. Both queries are line-oriented
// textual protocols parsed by prefix matching, which keeps the callers
// independent of any particular git binding.
package vcs

// Source exposes the version-control queries a package build needs.
type Source interface {
	// Tags returns the repository's full tag listing as a mapping of tag
	// name to revision identifier.
	Tags() (map[string]string, error)

	// ShowLog returns the log text for a single revision. The output is
	// line-oriented with "committer:" and "timestamp:" fields; timestamps
	// are rendered in UTC with an explicit +0000 suffix.
	ShowLog(revision string) (string, error)

	// Head returns the revision identifier of the current branch head.
	Head() (string, error)
}

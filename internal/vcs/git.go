package vcs

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// logTimestampLayout is the timestamp format emitted by ShowLog:
// weekday, year-month-day, hour:minute:second.
const logTimestampLayout = "Mon 2006-01-02 15:04:05"

// GitSource reads tags and commit metadata from a git repository using
// go-git. No git CLI is required.
type GitSource struct {
	repo *git.Repository
	root string
}

// Open opens the git repository containing path, traversing up the directory
// tree to find the repository root. If path is empty, the current working
// directory is used.
func Open(path string) (*GitSource, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &GitSource{repo: repo, root: worktree.Filesystem.Root()}, nil
}

// Root returns the absolute path to the repository root.
func (s *GitSource) Root() string {
	return s.root
}

// Tags returns the full tag listing as tag name to commit revision.
// Annotated tags are peeled to the commit they point at.
func (s *GitSource) Tags() (map[string]string, error) {
	iter, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	tags := make(map[string]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, err := s.repo.TagObject(hash); err == nil {
			hash = tag.Target
		}
		tags[ref.Name().Short()] = hash.String()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// ShowLog returns the log text for a single revision as line-oriented
// "field: value" output. The timestamp is forced to UTC.
func (s *GitSource) ShowLog(revision string) (string, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(revision))
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", revision, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "revision: %s\n", commit.Hash)
	fmt.Fprintf(&sb, "committer: %s <%s>\n", commit.Committer.Name, commit.Committer.Email)
	fmt.Fprintf(&sb, "timestamp: %s +0000\n", commit.Committer.When.UTC().Format(logTimestampLayout))
	sb.WriteString("message:\n")
	for _, line := range strings.Split(strings.TrimRight(commit.Message, "\n"), "\n") {
		fmt.Fprintf(&sb, "  %s\n", line)
	}

	return sb.String(), nil
}

// Head returns the revision identifier of the current branch head.
func (s *GitSource) Head() (string, error) {
	head, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash().String(), nil
}

package changelog

import (
	"fmt"
	"strings"
)

// LatestVersion returns the version named by the first header line in the
// changelog. Changelogs are authored newest-first, so this is the version
// being packaged.
func LatestVersion(changelogText string) (string, error) {
	for _, line := range strings.Split(changelogText, "\n") {
		trimmed := strings.TrimSpace(line)
		if headerPattern.MatchString(trimmed) {
			return strings.TrimSuffix(trimmed, ":"), nil
		}
	}
	return "", fmt.Errorf("changelog contains no version header")
}

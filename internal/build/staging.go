// Package build stages and runs one end-to-end RPM package build.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stagingSubdirs are the conventional rpmbuild working directories created
// under the staging root.
var stagingSubdirs = []string{"BUILD", "RPMS", "SOURCES", "SPECS", "SRPMS"}

// CreateTree wipes and recreates the staging root with the conventional
// rpmbuild subdirectories. The wipe is unconditional; concurrent builds
// against the same root are not supported.
func CreateTree(root string) error {
	if root == "" {
		return fmt.Errorf("staging root is empty")
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("clearing staging root: %w", err)
	}
	for _, sub := range stagingSubdirs {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", sub, err)
		}
	}
	return nil
}

// SourcesDir returns the SOURCES subdirectory of the staging root.
func SourcesDir(root string) string {
	return filepath.Join(root, "SOURCES")
}

// SpecsDir returns the SPECS subdirectory of the staging root.
func SpecsDir(root string) string {
	return filepath.Join(root, "SPECS")
}

// CopyPatches copies patch files into the SOURCES subdirectory and returns
// their base names in input order.
func CopyPatches(root string, patches []string) ([]string, error) {
	names := make([]string, 0, len(patches))
	for _, patch := range patches {
		name := filepath.Base(patch)
		if err := copyFile(patch, filepath.Join(SourcesDir(root), name)); err != nil {
			return nil, fmt.Errorf("copying patch %s: %w", patch, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

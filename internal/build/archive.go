package build

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ArchiveSource writes a gzip-compressed tarball of srcRoot to destPath.
// Entries are placed under prefix/, the layout rpmbuild's %setup expects.
// Version-control metadata (.git) and any directories listed in skipDirs
// (typically the staging tree when it lives inside the repository) are
// excluded.
func ArchiveSource(srcRoot, destPath, prefix string, skipDirs ...string) error {
	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			skip[abs] = true
		}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	if err := addTree(tw, srcRoot, prefix, skip); err != nil {
		return fmt.Errorf("archiving %s: %w", srcRoot, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar stream: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip stream: %w", err)
	}
	return out.Close()
}

func addTree(tw *tar.Writer, srcRoot, prefix string, skip map[string]bool) error {
	return filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return fs.SkipDir
			}
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		var link string
		if info.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return err
			}
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(filepath.Join(prefix, rel))
		if d.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
}

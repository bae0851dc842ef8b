// Package archive walks lesson bundles packed into zip files.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is called for every file Walk visits. The archive argument is
// the path passed to Walk. Returned error stops processing.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits files in archive located at or under pattern in natural name
// order and returns number of files visited. Pattern is matched by whole
// path elements: "unit 1" selects "unit 1/a.html" but not "unit 10/a.html".
// Archives with absolute entries or entries containing ".." are rejected
// before anything is visited.
func Walk(ctx context.Context, archive, pattern string, walkFn WalkFunc) (int, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return 0, fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if !f.FileInfo().IsDir() && matches(f.Name, pattern) {
			files = append(files, f)
		}
	}
	slices.SortFunc(files, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := walkFn(archive, f); err != nil {
			return i, err
		}
	}
	return len(files), nil
}

func matches(name, pattern string) bool {
	pattern = strings.Trim(strings.ReplaceAll(pattern, `\`, "/"), "/")
	if pattern == "" {
		return true
	}
	return name == pattern || strings.HasPrefix(name, pattern+"/")
}

// isSafePath returns false for paths which could escape extraction
// directory.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || (len(name) > 1 && name[1] == ':') {
		return false
	}
	return !slices.Contains(strings.Split(strings.ReplaceAll(name, `\`, "/"), "/"), "..")
}

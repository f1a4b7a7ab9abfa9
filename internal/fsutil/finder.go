// Package fsutil provides file system helpers for locating literal files.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoExtension is returned when FindFilesByExtension is called without an
// extension to match.
var ErrNoExtension = errors.New("fsutil: extension must not be empty")

// FindFilesByExtension walks rootPath and returns every regular file whose
// name ends with ext, sorted lexically. ext may be given with or without the
// leading dot.
func FindFilesByExtension(rootPath, ext string) ([]string, error) {
	if ext == "" {
		return nil, ErrNoExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(d.Name()) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

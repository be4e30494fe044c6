// Package archive gives read access to stylesheets packed into zip archives.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// ErrMemberNotFound is returned when requested entry is absent from archive.
var ErrMemberNotFound = errors.New("archive member not found")

// Matcher selects archive entries by name.
type Matcher func(name string) bool

// Exact matches single entry.
func Exact(name string) Matcher {
	return func(n string) bool { return n == name }
}

// Ext matches entries with given extension, case insensitive.
func Ext(ext string) Matcher {
	return func(n string) bool { return strings.EqualFold(path.Ext(n), ext) }
}

// WalkFunc is called for every regular entry accepted by matcher. If an error
// is returned, processing stops.
type WalkFunc func(file *zip.File) error

// Walk visits regular entries of the archive accepted by match. Archives with
// absolute or parent-relative entry names are rejected.
func Walk(archive string, match Matcher, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

// ReadMember returns at most limit bytes of the named entry.
func ReadMember(archive, name string, limit int64) ([]byte, error) {
	var (
		data  []byte
		found bool
	)
	err := Walk(archive, Exact(name), func(file *zip.File) error {
		found = true
		r, err := file.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		data, err = io.ReadAll(io.LimitReader(r, limit))
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, name)
	}
	return data, nil
}

// List returns names of entries with given extension in natural order.
func List(archive, ext string) ([]string, error) {
	var names []string
	if err := Walk(archive, Ext(ext), func(file *zip.File) error {
		names = append(names, file.Name)
		return nil
	}); err != nil {
		return nil, err
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return names, nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}

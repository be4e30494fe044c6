// Package source resolves stylesheet locations and retrieves their text.
package source

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"curgen/cursor"
)

// Kind tells how stylesheet should be retrieved.
type Kind int

const (
	KindFile Kind = iota
	KindArchive
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindArchive:
		return "archive"
	case KindRemote:
		return "remote"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Location is resolved stylesheet address. For archives Path points to the
// archive itself and Member to the file inside of it.
type Location struct {
	Kind   Kind
	Path   string
	Member string
	URL    *url.URL
}

func (l Location) String() string {
	switch l.Kind {
	case KindRemote:
		return l.URL.String()
	case KindArchive:
		return filepath.Join(l.Path, filepath.FromSlash(l.Member))
	}
	return l.Path
}

// Local reports whether stylesheet lives on local file system.
func (l Location) Local() bool {
	return l.Kind != KindRemote
}

// Dir returns directory generated output should go to by default: directory
// of stylesheet (or archive) for local locations, empty for remote ones.
func (l Location) Dir() string {
	if !l.Local() {
		return ""
	}
	return filepath.Dir(l.Path)
}

// Resolve classifies location string. Remote locations must use http or
// https, local ones may be plain paths, "file:" URLs or paths going through
// zip archive ("theme.zip/css/site.css").
func Resolve(location string) (Location, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Location{}, &cursor.ValidationError{Field: "source", Value: location, Err: fmt.Errorf("location is empty")}
	}

	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			if u.Host == "" {
				return Location{}, &cursor.ValidationError{Field: "source", Value: location, Err: fmt.Errorf("host is missing")}
			}
			return Location{Kind: KindRemote, URL: u}, nil
		case "file":
			location = u.Path
		default:
			return Location{}, &cursor.ValidationError{Field: "source", Value: location, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
		}
	}
	return resolveLocal(normalizePath(location))
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return filepath.FromSlash(p)
}

// resolveLocal walks path up looking for the first existing element. When it
// is an archive, the rest of the path is a name inside of it.
func resolveLocal(src string) (Location, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return Location{}, err
	}

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// let Fetch report it missing
				return Location{Kind: KindFile, Path: src}, nil
			}
			return Location{}, &cursor.ValidationError{Field: "source", Value: src, Err: fmt.Errorf("location is a directory")}
		}
		if !fi.Mode().IsRegular() {
			return Location{}, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		if head == src {
			return Location{Kind: KindFile, Path: src}, nil
		}
		archive, err := isArchiveFile(head)
		if err != nil {
			return Location{}, fmt.Errorf("unable to check archive type: %w", err)
		}
		if !archive {
			return Location{}, fmt.Errorf("%w: (%s) is not an archive", cursor.ErrResourceNotFound, head)
		}
		member := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
		return Location{Kind: KindArchive, Path: head, Member: filepath.ToSlash(member)}, nil
	}
	return Location{Kind: KindFile, Path: src}, nil
}

func isArchiveFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	// header is enough for magic numbers
	head := make([]byte, 262)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// Package pathlib confines request targets to the served root directory.
package pathlib

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
)

var (
	ErrBadTarget   = errors.New("request target must begin with a slash")
	ErrOutsideRoot = errors.New("path escapes the root directory")
)

// Resolve maps the request target onto the filesystem under root. Both the root and the
// candidate path are canonicalized first, so neither dot-dot segments nor symbolic links
// are able to lead outside the root. The path isn't required to exist.
func Resolve(root, target string) (string, error) {
	if len(target) == 0 || target[0] != '/' {
		return "", ErrBadTarget
	}

	canonicalRoot, err := WeaklyCanonical(root)
	if err != nil {
		return "", err
	}

	candidate, err := WeaklyCanonical(root + target)
	if err != nil {
		return "", err
	}

	if !within(canonicalRoot, candidate) {
		return "", ErrOutsideRoot
	}

	return candidate, nil
}

// within reports whether path equals root or lies beneath it. Plain prefix comparison
// isn't enough, as /srv/www would otherwise contain /srv/www2.
func within(root, path string) bool {
	if !strings.HasPrefix(path, root) {
		return false
	}

	rest := path[len(root):]

	return len(rest) == 0 || rest[0] == filepath.Separator || strings.HasSuffix(root, string(filepath.Separator))
}

// WeaklyCanonical returns an absolute lexically clean path, where symbolic links are
// resolved for the longest existing prefix. The non-existing remainder is appended as is.
func WeaklyCanonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	existing, rest := abs, ""

	for {
		resolved, err := filepath.EvalSymlinks(existing)
		switch {
		case err == nil:
			return filepath.Join(resolved, rest), nil
		case !errors.Is(err, fs.ErrNotExist) && !isNotDir(err):
			return "", err
		}

		parent, base := filepath.Split(existing)
		parent = filepath.Clean(parent)
		if parent == existing {
			// reached the volume root and even it doesn't exist
			return abs, nil
		}

		rest = filepath.Join(base, rest)
		existing = parent
	}
}

func isNotDir(err error) bool {
	// a regular file in the middle of the path is reported as ENOTDIR, which isn't
	// mapped onto fs.ErrNotExist
	return errors.Is(err, syscall.ENOTDIR)
}

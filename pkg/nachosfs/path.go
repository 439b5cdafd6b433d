// file: pkg/nachosfs/path.go

package nachosfs

import (
	"fmt"
	"strings"
)

// IsAbs reports whether path is an absolute path (begins with "/").
func IsAbs(path string) bool {
	return strings.HasPrefix(path, "/")
}

// Resolve turns path into an absolute path relative to cwd when path
// itself is not already absolute. cwd must itself be absolute.
func Resolve(cwd, path string) string {
	if IsAbs(path) {
		return path
	}
	if cwd == "" || cwd == "/" {
		return "/" + path
	}
	return strings.TrimSuffix(cwd, "/") + "/" + path
}

// Components splits an absolute path into its non-empty components,
// validating the path grammar: components separated by "/", each
// component no longer than FileNameMaxLen, overall path no longer than
// PathMaxLen.
func Components(path string) ([]string, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	if len(path) > PathMaxLen {
		return nil, fmt.Errorf("%w: path longer than %d characters", ErrInvalidArgument, PathMaxLen)
	}
	if !IsAbs(path) {
		return nil, fmt.Errorf("%w: path %q is not absolute", ErrInvalidArgument, path)
	}

	var parts []string
	for _, c := range strings.Split(path, "/") {
		if c == "" {
			continue
		}
		if len(c) > FileNameMaxLen {
			return nil, fmt.Errorf("%w: component %q longer than %d characters", ErrInvalidArgument, c, FileNameMaxLen)
		}
		parts = append(parts, c)
	}
	return parts, nil
}

// SplitParentLeaf splits an absolute path into its parent directory path
// and final component. The root itself ("/") has no leaf and returns an
// error.
func SplitParentLeaf(path string) (parentComponents []string, leaf string, err error) {
	parts, err := Components(path)
	if err != nil {
		return nil, "", err
	}
	if len(parts) == 0 {
		return nil, "", fmt.Errorf("%w: %q names the root, which has no parent", ErrInvalidArgument, path)
	}
	return parts[:len(parts)-1], parts[len(parts)-1], nil
}

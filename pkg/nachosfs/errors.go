// file: pkg/nachosfs/errors.go

package nachosfs

import "errors"

// Sentinel errors for the taxonomy in the error-handling design: not
// found, already exists, no space, invalid argument, wrong kind. "Busy"
// (Remove on an open file) is not an error -- it is a deferred success,
// see FileSystem.Remove.
var (
	ErrNotFound        = errors.New("nachosfs: not found")
	ErrFileExists      = errors.New("nachosfs: already exists")
	ErrDiskFull        = errors.New("nachosfs: no space on disk")
	ErrDirectoryFull   = errors.New("nachosfs: directory full")
	ErrInvalidArgument = errors.New("nachosfs: invalid argument")
	ErrNotADirectory   = errors.New("nachosfs: not a directory")
	ErrIsADirectory    = errors.New("nachosfs: is a directory")
	ErrFileRemoved     = errors.New("nachosfs: file has been removed")
)

// file: pkg/nachosfs/helpers_test.go

package nachosfs

import (
	"testing"

	"github.com/barufa/nachos/pkg/disk"
)

// newTestDisk returns a fresh in-memory disk, closed automatically when
// the test ends.
func newTestDisk(t *testing.T) *disk.MemDisk {
	t.Helper()
	d := disk.NewMemDisk()
	t.Cleanup(d.Close)
	return d
}

// newFormattedFS formats a fresh disk and returns the mounted file system.
func newFormattedFS(t *testing.T) *FileSystem {
	t.Helper()
	d := newTestDisk(t)
	fs, err := NewFileSystem(d, true)
	if err != nil {
		t.Fatalf("NewFileSystem(format=true): %v", err)
	}
	return fs
}

// file: cmd/delete/delete.go

package delete

import (
	"fmt"
	"os"
	"strings"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// DeleteOptions configures the deletion operation.
type DeleteOptions struct {
	Force bool // Skip the interactive confirmation
	Quiet bool // Suppress non-error output
}

// DefaultDeleteOptions returns default options for Delete.
func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{
		Force: false,
		Quiet: false,
	}
}

// Delete removes path from the disk image at diskPath. A directory path
// is removed recursively; removing an open file is deferred until its
// last handle closes, which Delete cannot observe from outside the
// running kernel, so it always reports the attempt's own outcome.
func Delete(diskPath string, path string, opts *DeleteOptions) error {
	if opts == nil {
		opts = DefaultDeleteOptions()
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	d, err := disk.OpenFileDisk(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}
	defer d.Close()

	fs, err := nachosfs.NewFileSystem(d, false)
	if err != nil {
		return fmt.Errorf("failed to mount disk: %w", err)
	}

	st, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}

	if !opts.Force {
		fmt.Printf("Delete %s? (y/N) ", path)
		var response string
		fmt.Scanln(&response)
		if !strings.HasPrefix(strings.ToLower(response), "y") {
			if !opts.Quiet {
				fmt.Println("Deletion cancelled")
			}
			return nil
		}
	}

	var ok bool
	if st.IsDir {
		ok, err = fs.RemoveDir(path)
	} else {
		ok, err = fs.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("file not found: %s", path)
	}

	if !opts.Quiet {
		fmt.Printf("Deleted %s\n", path)
	}
	return nil
}

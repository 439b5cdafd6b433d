// file: cmd/extract/extract.go

package extract

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// ExtractOptions configures copying a file from a disk image to the host
// filesystem.
type ExtractOptions struct {
	OutputDir string // Directory to extract files to
	Overwrite bool   // Allow overwriting an existing host file
	Quiet     bool   // Suppress non-error output
}

// DefaultExtractOptions returns default options for Extract.
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{OutputDir: "", Overwrite: false, Quiet: false}
}

// Extract copies srcPath from the disk image at diskPath onto the host
// filesystem.
func Extract(diskPath, srcPath string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}
	if srcPath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outPath := path.Base(srcPath)
	if opts.OutputDir != "" {
		outPath = filepath.Join(opts.OutputDir, outPath)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("output file already exists: %s (use overwrite to replace)", outPath)
		}
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

	src, err := fs.Open(srcPath)
	if err != nil {
		return fmt.Errorf("file not found: %s", srcPath)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src.IO()); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to extract %s: %w", srcPath, err)
	}

	if !opts.Quiet {
		fmt.Printf("Extracted %s to %s\n", srcPath, outPath)
	}

	return nil
}

// ExtractAll extracts every file in directory dirPath (non-recursive) to
// the host filesystem.
func ExtractAll(diskPath, dirPath string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}
	if dirPath == "" {
		dirPath = "/"
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

	entries, err := fs.List(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}

	extracted := 0
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		if err := Extract(diskPath, path.Join(dirPath, e.Name), opts); err != nil {
			return fmt.Errorf("failed to extract %s: %w", e.Name, err)
		}
		extracted++
	}

	if !opts.Quiet {
		fmt.Printf("Extracted %d files from %s\n", extracted, dirPath)
	}

	return nil
}

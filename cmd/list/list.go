// file: cmd/list/list.go

package list

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// FileEntry represents one directory entry in the listing.
type FileEntry struct {
	Name   string `json:"name"`
	IsDir  bool   `json:"is_dir"`
	Sector int    `json:"sector"`
	Size   int    `json:"size"`
}

// ListOptions configures the directory listing.
type ListOptions struct {
	JSON    bool   // Output in JSON format
	Long    bool   // Show sector and size columns
	Sort    string // Sort order: name, size
	Reverse bool   // Reverse sort order
	Quiet   bool   // Suppress non-error output
}

// DefaultListOptions returns default options for List.
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		JSON:    false,
		Long:    false,
		Sort:    "name",
		Reverse: false,
		Quiet:   false,
	}
}

// List displays the contents of directory dirPath within the disk image
// at diskPath.
func List(diskPath, dirPath string, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
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

	files := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		size := 0
		if opts.Long {
			st, err := fs.Stat(path.Join(dirPath, e.Name))
			if err == nil {
				size = st.Size
			}
		}
		files = append(files, FileEntry{Name: e.Name, IsDir: e.IsDir, Sector: e.Sector, Size: size})
	}

	sortFiles(files, opts)

	if opts.JSON {
		return outputJSON(files)
	}
	return outputText(files, dirPath, opts)
}

func sortFiles(files []FileEntry, opts *ListOptions) {
	less := func(i, j int) bool {
		var result bool
		switch strings.ToLower(opts.Sort) {
		case "size":
			result = files[i].Size < files[j].Size
		default: // "name"
			result = files[i].Name < files[j].Name
		}
		if opts.Reverse {
			return !result
		}
		return result
	}
	sort.Slice(files, less)
}

func outputJSON(files []FileEntry) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

func outputText(files []FileEntry, dirPath string, opts *ListOptions) error {
	if opts.Quiet {
		return nil
	}
	if len(files) == 0 {
		fmt.Printf("%s: empty\n", dirPath)
		return nil
	}
	for _, file := range files {
		kind := "-"
		if file.IsDir {
			kind = "d"
		}
		if opts.Long {
			fmt.Printf("%s  sector=%-4d  %8d  %s\n", kind, file.Sector, file.Size, file.Name)
		} else {
			fmt.Printf("%s %s\n", kind, file.Name)
		}
	}
	return nil
}

// file: cmd/info/info.go

package info

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// PathInfo is the structured information reported about one path.
type PathInfo struct {
	Path     string    `json:"path"`
	IsDir    bool      `json:"is_dir"`
	Sector   int       `json:"sector"`
	Size     int       `json:"size"`
	Modified time.Time `json:"modified_time,omitempty"`
}

// DiskInfo is the structured information reported about the whole image
// when no path is given.
type DiskInfo struct {
	Path       string    `json:"path"`
	TotalBytes int       `json:"total_bytes"`
	FreeBytes  int       `json:"free_bytes"`
	UsedBytes  int       `json:"used_bytes"`
	Modified   time.Time `json:"modified_time,omitempty"`
}

// InfoOptions configures the information display.
type InfoOptions struct {
	JSON  bool // Output in JSON format
	Quiet bool // Suppress non-error output
}

// DefaultInfoOptions returns default options for Info.
func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{JSON: false, Quiet: false}
}

// Info reports information about diskPath as a whole, or about one path
// within it when path is non-empty.
func Info(diskPath, path string, opts *InfoOptions) error {
	if opts == nil {
		opts = DefaultInfoOptions()
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

	modified := time.Time{}
	if stat, err := os.Stat(diskPath); err == nil {
		modified = stat.ModTime()
	}

	if path != "" {
		st, err := fs.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		info := PathInfo{Path: path, IsDir: st.IsDir, Sector: st.Sector, Size: st.Size, Modified: modified}
		if opts.JSON {
			return outputJSON(info)
		}
		return outputPathText(info, opts)
	}

	total := disk.NumSectors * disk.SectorSize
	free := fs.FreeBytes()
	info := DiskInfo{Path: diskPath, TotalBytes: total, FreeBytes: free, UsedBytes: total - free, Modified: modified}
	if opts.JSON {
		return outputJSON(info)
	}
	return outputDiskText(info, opts)
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputPathText(info PathInfo, opts *InfoOptions) error {
	if opts.Quiet {
		return nil
	}
	kind := "file"
	if info.IsDir {
		kind = "directory"
	}
	fmt.Printf("Path:     %s\n", info.Path)
	fmt.Printf("Type:     %s\n", kind)
	fmt.Printf("Sector:   %d\n", info.Sector)
	fmt.Printf("Size:     %d bytes\n", info.Size)
	return nil
}

func outputDiskText(info DiskInfo, opts *InfoOptions) error {
	if opts.Quiet {
		return nil
	}
	fmt.Printf("Disk Image: %s\n\n", info.Path)
	fmt.Printf("Total:      %d bytes\n", info.TotalBytes)
	fmt.Printf("Used:       %d bytes\n", info.UsedBytes)
	fmt.Printf("Free:       %d bytes\n", info.FreeBytes)
	if !info.Modified.IsZero() {
		fmt.Printf("Modified:   %s\n", info.Modified.Format(time.RFC1123))
	}
	return nil
}

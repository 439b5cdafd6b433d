// file: pkg/nachosfs/directory.go

package nachosfs

import (
	"fmt"
	"sort"

	"github.com/barufa/nachos/pkg/disk"
)

// dirEntrySize is the on-disk size of one DirEntry record:
// {bool inUse; bool isDir; char name[FileNameMaxLen+1]; uint32 sector;}
const dirEntrySize = 1 + 1 + (FileNameMaxLen + 1) + 4

// DirEntry is one slot of a directory: {inUse, isDir, name, sector}.
type DirEntry struct {
	inUse  bool
	isDir  bool
	name   string
	sector int
}

// Entry is the user-facing, read-only view of a directory slot returned
// by List.
type Entry struct {
	Name   string
	IsDir  bool
	Sector int
}

// Directory is a fixed array of NumDirEntries slots, wrapping the raw
// on-disk slot table with the Find/Add/Remove/Clean/List operations used
// by the file-system facade. A directory is itself a file: its contents
// live in the data blocks of a header, round-tripped through an open
// handle by FetchFrom/WriteBack.
type Directory struct {
	entries [NumDirEntries]DirEntry
}

// NewDirectory returns an empty directory (no in-use slots).
func NewDirectory() *Directory {
	return &Directory{}
}

// Find returns the sector of the in-use entry named name whose isDir flag
// equals isDirFilter, or -1 if none matches. This filter is strict in
// both directions: Find(name, false) never matches a directory entry, and
// Find(name, true) never matches a plain-file entry -- preserved from the
// source's behavior rather than "fixed" to match either kind (see
// DESIGN.md, Open Question: Directory.Find asymmetry).
func (d *Directory) Find(name string, isDirFilter bool) int {
	for _, e := range d.entries {
		if e.inUse && e.isDir == isDirFilter && e.name == name {
			return e.sector
		}
	}
	return -1
}

// findAny returns the slot index of the in-use entry named name,
// regardless of kind, or -1. Used internally to enforce the
// one-name-per-directory invariant, which holds across both file and
// directory entries.
func (d *Directory) findAny(name string) int {
	for i, e := range d.entries {
		if e.inUse && e.name == name {
			return i
		}
	}
	return -1
}

// Add inserts a new entry, returning true iff name is not already present
// (of either kind) and a free slot exists.
func (d *Directory) Add(name string, sector int, isDir bool) bool {
	if len(name) == 0 || len(name) > FileNameMaxLen {
		return false
	}
	if d.findAny(name) != -1 {
		return false
	}
	for i := range d.entries {
		if !d.entries[i].inUse {
			d.entries[i] = DirEntry{inUse: true, isDir: isDir, name: name, sector: sector}
			return true
		}
	}
	return false
}

// Remove deletes the entry named name (of either kind) and returns the
// sector it pointed to, or 0 if no such entry existed.
func (d *Directory) Remove(name string) int {
	idx := d.findAny(name)
	if idx == -1 {
		return 0
	}
	sector := d.entries[idx].sector
	d.entries[idx] = DirEntry{}
	return sector
}

// Clean recursively deallocates every file's data blocks and header
// sector reachable from this directory. The caller is responsible for
// freeing this directory's own header and data sectors afterwards.
func (d *Directory) Clean(freeMap *Bitmap, dsk disk.Disk) error {
	for _, e := range d.entries {
		if !e.inUse {
			continue
		}
		var h Header
		if err := h.FetchFrom(e.sector, dsk); err != nil {
			return err
		}
		if e.isDir {
			sub := NewDirectory()
			handle := newTransientFile(e.sector, &h, dsk)
			if err := sub.FetchFrom(handle); err != nil {
				return err
			}
			if err := sub.Clean(freeMap, dsk); err != nil {
				return err
			}
		}
		h.Deallocate(freeMap)
		freeMap.Clear(e.sector)
	}
	return nil
}

// List returns a name-sorted snapshot of the in-use entries, for
// user-facing enumeration (the CLI's ls command).
func (d *Directory) List() []Entry {
	out := make([]Entry, 0, NumDirEntries)
	for _, e := range d.entries {
		if e.inUse {
			out = append(out, Entry{Name: e.name, IsDir: e.isDir, Sector: e.sector})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Print writes a human-readable listing of the directory to w, walking
// entries in slot order (unlike List, which sorts).
func (d *Directory) Print(w interface{ Write([]byte) (int, error) }) {
	for _, e := range d.entries {
		if !e.inUse {
			continue
		}
		kind := "file"
		if e.isDir {
			kind = "dir"
		}
		fmt.Fprintf(w, "%-*s %s sector=%d\n", FileNameMaxLen, e.name, kind, e.sector)
	}
}

// FetchFrom decodes the directory's contents from an open handle on its
// own file.
func (d *Directory) FetchFrom(h *File) error {
	buf := make([]byte, DirectoryFileSize)
	n, err := h.ReadAt(buf, len(buf), 0)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("nachosfs: short directory read (%d of %d bytes)", n, len(buf))
	}
	for i := 0; i < NumDirEntries; i++ {
		off := i * dirEntrySize
		rec := buf[off : off+dirEntrySize]
		inUse := rec[0] != 0
		isDir := rec[1] != 0
		nameBytes := rec[2 : 2+FileNameMaxLen+1]
		name := cStringToGo(nameBytes)
		sector := int(le32(rec[2+FileNameMaxLen+1:]))
		d.entries[i] = DirEntry{inUse: inUse, isDir: isDir, name: name, sector: sector}
	}
	return nil
}

// WriteBack encodes the directory's contents to an open handle on its
// own file.
func (d *Directory) WriteBack(h *File) error {
	buf := make([]byte, DirectoryFileSize)
	for i, e := range d.entries {
		off := i * dirEntrySize
		rec := buf[off : off+dirEntrySize]
		if e.inUse {
			rec[0] = 1
		}
		if e.isDir {
			rec[1] = 1
		}
		goStringToCString(rec[2:2+FileNameMaxLen+1], e.name)
		putLE32(rec[2+FileNameMaxLen+1:], uint32(e.sector))
	}
	n, err := h.WriteAt(buf, len(buf), 0)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("nachosfs: short directory write (%d of %d bytes)", n, len(buf))
	}
	return nil
}

func cStringToGo(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func goStringToCString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, s)
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

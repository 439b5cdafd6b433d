// file: pkg/nachosfs/fs.go

package nachosfs

import (
	"fmt"
	"sync"

	"github.com/barufa/nachos/pkg/disk"
)

// FileSystem is the facade: path resolution plus
// Create/Open/Remove/List/MakeDir/RemoveDir/Expand, arbitrating concurrent
// access through the open-file table and persisting every successful
// mutation to the free-map and affected directories.
//
// The facade exclusively owns two always-open handles for its lifetime:
// the root directory's and the free-map's. Every other directory or
// header touched during an operation is transient, fetched fresh and
// discarded at the end of that operation.
type FileSystem struct {
	mu sync.Mutex // serializes Create/Remove/MakeDir/RemoveDir/Expand

	disk disk.Disk

	freeMap     *Bitmap
	freeMapFile *File

	rootDirFile *File

	table *Table
}

// NewFileSystem mounts the file system on d. If format is true, it first
// bootstraps an empty file system: sectors 0 and 1 are marked, the
// free-map and root-directory files are allocated and their headers
// written, and their initial (mostly-empty bitmap / empty directory)
// contents are written back. If format
// is false, the existing free-map and root directory are read back from
// their well-known sectors.
func NewFileSystem(d disk.Disk, format bool) (*FileSystem, error) {
	fs := &FileSystem{disk: d, table: NewTable()}

	if format {
		freeMap := NewBitmap(NumSectors)
		freeMap.Mark(FreeMapSector)
		freeMap.Mark(RootDirSector)

		var freeMapHdr, rootDirHdr Header
		if !freeMapHdr.Allocate(freeMap, FreeMapFileSize) {
			return nil, fmt.Errorf("nachosfs: format: %w (free-map)", ErrDiskFull)
		}
		if !rootDirHdr.Allocate(freeMap, DirectoryFileSize) {
			return nil, fmt.Errorf("nachosfs: format: %w (root directory)", ErrDiskFull)
		}
		if err := freeMapHdr.WriteBack(FreeMapSector, d); err != nil {
			return nil, err
		}
		if err := rootDirHdr.WriteBack(RootDirSector, d); err != nil {
			return nil, err
		}

		fs.freeMapFile = newTransientFile(FreeMapSector, &freeMapHdr, d)
		fs.rootDirFile = newTransientFile(RootDirSector, &rootDirHdr, d)
		fs.freeMap = freeMap

		if err := fs.freeMap.WriteBack(fs.freeMapFile); err != nil {
			return nil, err
		}
		if err := NewDirectory().WriteBack(fs.rootDirFile); err != nil {
			return nil, err
		}
		return fs, nil
	}

	var freeMapHdr, rootDirHdr Header
	if err := freeMapHdr.FetchFrom(FreeMapSector, d); err != nil {
		return nil, err
	}
	if err := rootDirHdr.FetchFrom(RootDirSector, d); err != nil {
		return nil, err
	}
	fs.freeMapFile = newTransientFile(FreeMapSector, &freeMapHdr, d)
	fs.rootDirFile = newTransientFile(RootDirSector, &rootDirHdr, d)

	fs.freeMap = NewBitmap(NumSectors)
	if err := fs.freeMap.FetchFrom(fs.freeMapFile); err != nil {
		return nil, err
	}
	return fs, nil
}

// dirRef is a transient reference to one directory resolved during path
// traversal: its in-memory contents, the sector its header lives at, and
// a handle ready to WriteBack changes to it.
type dirRef struct {
	dir    *Directory
	sector int
	header Header
	file   *File
}

// openPath walks components left to right from the root directory,
// entering each as a directory, and returns a
// reference to the final directory reached. An empty components slice
// resolves to the root directory itself.
func (fs *FileSystem) openPath(components []string) (*dirRef, error) {
	sector := RootDirSector
	var hdr Header
	if err := hdr.FetchFrom(sector, fs.disk); err != nil {
		return nil, err
	}
	handle := newTransientFile(sector, &hdr, fs.disk)
	dir := NewDirectory()
	if err := dir.FetchFrom(handle); err != nil {
		return nil, err
	}

	for _, c := range components {
		next := dir.Find(c, true)
		if next == -1 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, c)
		}
		sector = next
		if err := hdr.FetchFrom(sector, fs.disk); err != nil {
			return nil, err
		}
		handle = newTransientFile(sector, &hdr, fs.disk)
		dir = NewDirectory()
		if err := dir.FetchFrom(handle); err != nil {
			return nil, err
		}
	}

	return &dirRef{dir: dir, sector: sector, header: hdr, file: handle}, nil
}

// Create resolves path's parent, rejects a name collision of either
// kind, allocates a header sector and initialSize worth of data sectors,
// and on full success persists the new header, the free-map and the
// parent directory. Any failure after the free-sector allocation begins
// discards the in-memory free-map mutation without writing it back.
func (fs *FileSystem) Create(path string, initialSize int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return err
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return err
	}
	if ref.dir.Find(leaf, false) != -1 || ref.dir.Find(leaf, true) != -1 {
		return fmt.Errorf("%w: %q", ErrFileExists, path)
	}

	freeMap := fs.freeMap.clone()
	sector := freeMap.Find()
	if sector == -1 {
		return ErrDiskFull
	}
	if !ref.dir.Add(leaf, sector, false) {
		return ErrDirectoryFull
	}
	var hdr Header
	if !hdr.Allocate(freeMap, initialSize) {
		return ErrDiskFull
	}

	if err := hdr.WriteBack(sector, fs.disk); err != nil {
		return err
	}
	if err := freeMap.WriteBack(fs.freeMapFile); err != nil {
		return err
	}
	if err := ref.dir.WriteBack(ref.file); err != nil {
		return err
	}
	fs.freeMap = freeMap
	return nil
}

// Open resolves path's parent, looks up the leaf as a non-directory
// entry, rejects leaves at reserved sectors or directories, and returns
// a handle with its users count incremented in the open-file table.
func (fs *FileSystem) Open(path string) (*File, error) {
	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return nil, err
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return nil, err
	}

	if sector := ref.dir.Find(leaf, true); sector != -1 {
		return nil, fmt.Errorf("%w: %q", ErrIsADirectory, path)
	}
	sector := ref.dir.Find(leaf, false)
	if sector == -1 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	if sector < 2 {
		return nil, fmt.Errorf("%w: %q resolves to a reserved sector", ErrInvalidArgument, path)
	}

	node := fs.table.addFile(leaf, sector)
	node.mu.Lock()
	if node.remove {
		node.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrFileRemoved, path)
	}
	node.users++
	node.mu.Unlock()

	var hdr Header
	if err := hdr.FetchFrom(sector, fs.disk); err != nil {
		return nil, err
	}
	return &File{sector: sector, header: hdr, disk: fs.disk, node: node, fs: fs}, nil
}

// Remove resolves path's parent and leaf. A directory leaf delegates to
// RemoveDir. A leaf with a live open-file node (users > 0) has its entry
// removed from the parent immediately -- so a later Open fails -- but its
// blocks are reclaimed only once the last handle closes (node.remove is
// set and File.Close completes the reclaim). Otherwise the leaf's blocks
// are reclaimed immediately. Remove reports false, with no error, when
// path does not resolve to an existing entry (the idempotence law).
func (fs *FileSystem) Remove(path string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.removeLocked(path)
}

func (fs *FileSystem) removeLocked(path string) (bool, error) {
	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return false, err
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return false, nil
	}

	if sector := ref.dir.Find(leaf, true); sector != -1 {
		return fs.removeDirRef(ref, leaf, sector)
	}

	sector := ref.dir.Find(leaf, false)
	if sector == -1 {
		return false, nil
	}

	node := fs.table.find(sector)
	if node != nil {
		node.mu.Lock()
		busy := node.users > 0
		if busy {
			node.remove = true
		}
		node.mu.Unlock()
		if busy {
			ref.dir.Remove(leaf)
			if err := ref.dir.WriteBack(ref.file); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	ref.dir.Remove(leaf)
	if err := fs.reclaimLocked(sector); err != nil {
		return false, err
	}
	if err := ref.dir.WriteBack(ref.file); err != nil {
		return false, err
	}
	if node != nil {
		fs.table.remove(sector)
	}
	return true, nil
}

// reclaim frees sector's header and data sectors and persists the
// free-map. It is called once the last handle on a deferred-removal file
// closes.
func (fs *FileSystem) reclaim(sector int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.reclaimLocked(sector)
}

func (fs *FileSystem) reclaimLocked(sector int) error {
	var hdr Header
	if err := hdr.FetchFrom(sector, fs.disk); err != nil {
		return err
	}
	freeMap := fs.freeMap.clone()
	hdr.Deallocate(freeMap)
	freeMap.Clear(sector)
	if err := freeMap.WriteBack(fs.freeMapFile); err != nil {
		return err
	}
	fs.freeMap = freeMap
	return nil
}

// Expand loads sector's header and the free-map, grows the header by
// additionalBytes via Header.Extend, and persists both. It is the facade
// operation File.WriteAt calls into when a write would grow the file.
func (fs *FileSystem) Expand(sector int, additionalBytes int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var hdr Header
	if err := hdr.FetchFrom(sector, fs.disk); err != nil {
		return err
	}
	freeMap := fs.freeMap.clone()
	if !hdr.Extend(freeMap, additionalBytes) {
		return ErrDiskFull
	}
	if err := hdr.WriteBack(sector, fs.disk); err != nil {
		return err
	}
	if err := freeMap.WriteBack(fs.freeMapFile); err != nil {
		return err
	}
	fs.freeMap = freeMap
	return nil
}

// MakeDir is Create, except the new header is sized for
// DirectoryFileSize and its data sectors are zeroed and initialized as an
// empty directory rather than left as a plain-file header.
func (fs *FileSystem) MakeDir(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return err
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return err
	}
	if ref.dir.Find(leaf, false) != -1 || ref.dir.Find(leaf, true) != -1 {
		return fmt.Errorf("%w: %q", ErrFileExists, path)
	}

	freeMap := fs.freeMap.clone()
	sector := freeMap.Find()
	if sector == -1 {
		return ErrDiskFull
	}
	if !ref.dir.Add(leaf, sector, true) {
		return ErrDirectoryFull
	}
	var hdr Header
	if !hdr.Allocate(freeMap, DirectoryFileSize) {
		return ErrDiskFull
	}
	for i := 0; i < hdr.NumSectors(); i++ {
		if err := fs.disk.ClearSector(hdr.ByteToSector(i * SectorSize)); err != nil {
			return err
		}
	}
	if err := hdr.WriteBack(sector, fs.disk); err != nil {
		return err
	}

	handle := newTransientFile(sector, &hdr, fs.disk)
	if err := NewDirectory().WriteBack(handle); err != nil {
		return err
	}
	if err := freeMap.WriteBack(fs.freeMapFile); err != nil {
		return err
	}
	if err := ref.dir.WriteBack(ref.file); err != nil {
		return err
	}
	fs.freeMap = freeMap
	return nil
}

// RemoveDir resolves path's parent, recursively frees everything
// reachable from the named subdirectory (Directory.Clean), frees the
// subdirectory's own header sector, and removes its entry from the
// parent.
func (fs *FileSystem) RemoveDir(path string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return false, err
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return false, nil
	}
	sector := ref.dir.Find(leaf, true)
	if sector == -1 {
		return false, nil
	}
	return fs.removeDirRef(ref, leaf, sector)
}

func (fs *FileSystem) removeDirRef(ref *dirRef, leaf string, sector int) (bool, error) {
	var hdr Header
	if err := hdr.FetchFrom(sector, fs.disk); err != nil {
		return false, err
	}
	handle := newTransientFile(sector, &hdr, fs.disk)
	sub := NewDirectory()
	if err := sub.FetchFrom(handle); err != nil {
		return false, err
	}

	freeMap := fs.freeMap.clone()
	if err := sub.Clean(freeMap, fs.disk); err != nil {
		return false, err
	}
	hdr.Deallocate(freeMap)
	freeMap.Clear(sector)

	ref.dir.Remove(leaf)
	if err := freeMap.WriteBack(fs.freeMapFile); err != nil {
		return false, err
	}
	if err := ref.dir.WriteBack(ref.file); err != nil {
		return false, err
	}
	fs.freeMap = freeMap
	return true, nil
}

// List enumerates the entries of the directory addressed by path.
func (fs *FileSystem) List(path string) ([]Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var components []string
	if path != "/" {
		var err error
		components, err = Components(path)
		if err != nil {
			return nil, err
		}
	}
	ref, err := fs.openPath(components)
	if err != nil {
		return nil, err
	}
	return ref.dir.List(), nil
}

// CheckPath reports whether path resolves to an existing file or
// directory.
func (fs *FileSystem) CheckPath(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if path == "/" {
		return true
	}
	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return false
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return false
	}
	return ref.dir.Find(leaf, false) != -1 || ref.dir.Find(leaf, true) != -1
}

// StatInfo is the result of Stat.
type StatInfo struct {
	Name   string
	IsDir  bool
	Sector int
	Size   int
}

// Stat returns size/kind/sector information for one path -- supplementing
// the original's Print() debug dump with a structured, single-path query
// used by the CLI's stat subcommand.
func (fs *FileSystem) Stat(path string) (StatInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if path == "/" {
		return StatInfo{Name: "/", IsDir: true, Sector: RootDirSector, Size: DirectoryFileSize}, nil
	}
	parentComponents, leaf, err := SplitParentLeaf(path)
	if err != nil {
		return StatInfo{}, err
	}
	ref, err := fs.openPath(parentComponents)
	if err != nil {
		return StatInfo{}, err
	}
	if sector := ref.dir.Find(leaf, true); sector != -1 {
		return StatInfo{Name: leaf, IsDir: true, Sector: sector, Size: DirectoryFileSize}, nil
	}
	sector := ref.dir.Find(leaf, false)
	if sector == -1 {
		return StatInfo{}, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	var hdr Header
	if err := hdr.FetchFrom(sector, fs.disk); err != nil {
		return StatInfo{}, err
	}
	return StatInfo{Name: leaf, IsDir: false, Sector: sector, Size: hdr.Length()}, nil
}

// FreeBytes returns the total bytes still available for allocation.
func (fs *FileSystem) FreeBytes() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.freeMap.NumClear() * SectorSize
}

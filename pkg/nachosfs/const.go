// file: pkg/nachosfs/const.go

// Package nachosfs implements an on-disk hierarchical file system: block
// allocation (bitmap.go), the file header/inode (header.go), hierarchical
// directories (directory.go), the open-file reader/writer coordinator
// (openfile.go, filetable.go), path resolution (path.go) and the
// file-system facade (fs.go).
package nachosfs

import "github.com/barufa/nachos/pkg/disk"

const (
	// SectorSize mirrors disk.SectorSize; re-exported so callers of this
	// package never need to import pkg/disk directly for sizing.
	SectorSize = disk.SectorSize

	// NumSectors mirrors disk.NumSectors.
	NumSectors = disk.NumSectors

	// NumDirect is the number of direct data-sector slots a file header
	// can hold. It is the largest value such that a header -- two uint32
	// fields plus NumDirect uint32 sector indices -- still fits in one
	// SectorSize-byte sector.
	NumDirect = (SectorSize - 8) / 4

	// MaxFileSize is the largest logical size a file can reach, given
	// NumDirect direct blocks and no indirection.
	MaxFileSize = NumDirect * SectorSize

	// NumDirEntries is the fixed number of slots in every directory.
	NumDirEntries = 10

	// FileNameMaxLen is the longest a single path component may be.
	FileNameMaxLen = 9

	// PathMaxLen is the longest an absolute or relative path may be.
	PathMaxLen = 255

	// DirectoryFileSize is the on-disk size, in bytes, of a directory's
	// contents: NumDirEntries serialized DirEntry records.
	DirectoryFileSize = NumDirEntries * dirEntrySize

	// FreeMapSector and RootDirSector are the two reserved, well-known
	// sectors: the free-map file's header and the root directory's
	// header respectively.
	FreeMapSector = 0
	RootDirSector = 1

	// FreeMapFileSize is the on-disk size, in bytes, of the free-map
	// file's contents: one bit per sector.
	FreeMapFileSize = NumSectors / 8
)

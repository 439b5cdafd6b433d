// file: pkg/disk/disk.go

// Package disk is the synchDisk collaborator: a sector-addressed block
// device that presents a synchronous interface to its callers but serves
// one request at a time, internally blocking the calling goroutine until
// its sector request completes. It is the sole external dependency of
// pkg/nachosfs.
package disk

import "fmt"

// SectorSize is the fixed size, in bytes, of every sector on a disk.
const SectorSize = 128

// NumSectors is the number of addressable sectors on a disk image.
const NumSectors = 1024

// Disk is the contract nachosfs consumes. A call may block the caller
// until the request is serviced; callers must not assume any particular
// latency, only that the call returns once the sector has been read,
// written or cleared.
type Disk interface {
	// ReadSector copies SectorSize bytes from sector into buf.
	ReadSector(sector int, buf []byte) error
	// WriteSector copies SectorSize bytes from buf into sector.
	WriteSector(sector int, buf []byte) error
	// ClearSector zeroes a sector.
	ClearSector(sector int) error
}

func checkSector(sector int) error {
	if sector < 0 || sector >= NumSectors {
		return fmt.Errorf("disk: sector %d out of range [0,%d)", sector, NumSectors)
	}
	return nil
}

func checkBuf(buf []byte) error {
	if len(buf) != SectorSize {
		return fmt.Errorf("disk: buffer length %d != sector size %d", len(buf), SectorSize)
	}
	return nil
}

// file: pkg/disk/filedisk.go

package disk

import (
	"fmt"
	"os"
	"sync"
)

// FileDisk is a Disk backed by a host file, one sector per SectorSize-byte
// slot. It is what the cmd/nachos CLI opens a disk image through.
type FileDisk struct {
	mu   sync.Mutex
	file *os.File
}

// CreateFileDisk creates a new host file of NumSectors*SectorSize zero
// bytes and returns a FileDisk backed by it.
func CreateFileDisk(path string) (*FileDisk, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("disk: create %s: %w", path, err)
	}
	if err := f.Truncate(int64(NumSectors * SectorSize)); err != nil {
		f.Close()
		return nil, fmt.Errorf("disk: truncate %s: %w", path, err)
	}
	return &FileDisk{file: f}, nil
}

// OpenFileDisk opens an existing host file as a disk image.
func OpenFileDisk(path string) (*FileDisk, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("disk: open %s: %w", path, err)
	}
	return &FileDisk{file: f}, nil
}

// Close closes the underlying host file.
func (d *FileDisk) Close() error {
	return d.file.Close()
}

// ReadSector implements Disk. The host file serializes its own access via
// mu, standing in for the single physical disk arm.
func (d *FileDisk) ReadSector(sector int, buf []byte) error {
	if err := checkSector(sector); err != nil {
		return err
	}
	if err := checkBuf(buf); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.file.ReadAt(buf, int64(sector*SectorSize))
	return err
}

// WriteSector implements Disk.
func (d *FileDisk) WriteSector(sector int, buf []byte) error {
	if err := checkSector(sector); err != nil {
		return err
	}
	if err := checkBuf(buf); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.file.WriteAt(buf, int64(sector*SectorSize))
	return err
}

// ClearSector implements Disk.
func (d *FileDisk) ClearSector(sector int) error {
	return d.WriteSector(sector, make([]byte, SectorSize))
}

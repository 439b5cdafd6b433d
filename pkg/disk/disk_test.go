// file: pkg/disk/disk_test.go

package disk

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestMemDiskReadWriteClear(t *testing.T) {
	d := NewMemDisk()
	defer d.Close()

	buf := bytes.Repeat([]byte{0xAB}, SectorSize)
	if err := d.WriteSector(5, buf); err != nil {
		t.Fatalf("WriteSector: %v", err)
	}

	got := make([]byte, SectorSize)
	if err := d.ReadSector(5, got); err != nil {
		t.Fatalf("ReadSector: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Errorf("ReadSector after WriteSector = %x, want %x", got, buf)
	}

	if err := d.ClearSector(5); err != nil {
		t.Fatalf("ClearSector: %v", err)
	}
	if err := d.ReadSector(5, got); err != nil {
		t.Fatalf("ReadSector after clear: %v", err)
	}
	if !bytes.Equal(got, make([]byte, SectorSize)) {
		t.Errorf("sector not zeroed after ClearSector, got %x", got)
	}
}

func TestMemDiskRejectsBadSectorAndBuf(t *testing.T) {
	d := NewMemDisk()
	defer d.Close()

	if err := d.ReadSector(-1, make([]byte, SectorSize)); err == nil {
		t.Error("expected error for negative sector")
	}
	if err := d.ReadSector(NumSectors, make([]byte, SectorSize)); err == nil {
		t.Error("expected error for out-of-range sector")
	}
	if err := d.WriteSector(0, make([]byte, SectorSize-1)); err == nil {
		t.Error("expected error for undersized buffer")
	}
}

func TestFileDiskRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	fd, err := CreateFileDisk(path)
	if err != nil {
		t.Fatalf("CreateFileDisk: %v", err)
	}

	buf := bytes.Repeat([]byte{0x42}, SectorSize)
	if err := fd.WriteSector(3, buf); err != nil {
		t.Fatalf("WriteSector: %v", err)
	}
	if err := fd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fd2, err := OpenFileDisk(path)
	if err != nil {
		t.Fatalf("OpenFileDisk: %v", err)
	}
	defer fd2.Close()

	got := make([]byte, SectorSize)
	if err := fd2.ReadSector(3, got); err != nil {
		t.Fatalf("ReadSector: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Errorf("ReadSector after reopen = %x, want %x", got, buf)
	}
}

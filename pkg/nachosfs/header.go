// file: pkg/nachosfs/header.go

package nachosfs

import (
	"encoding/binary"
	"fmt"

	"github.com/barufa/nachos/pkg/disk"
)

// Header is the file header (inode): a direct-block table mapping
// logical offset to sector, persisted in exactly one disk sector.
type Header struct {
	numBytes    int
	numSectors  int
	dataSectors [NumDirect]int32
}

// headerSerializedSize is {uint32 numBytes; uint32 numSectors;
// uint32 dataSectors[NumDirect];} -- guaranteed by const.go's derivation
// of NumDirect to be <= SectorSize.
const headerSerializedSize = 8 + 4*NumDirect

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// Length returns the header's logical byte size.
func (h *Header) Length() int {
	return h.numBytes
}

// NumSectors returns the number of data sectors currently held.
func (h *Header) NumSectors() int {
	return h.numSectors
}

// Allocate consumes ceil(size/SectorSize) free bits from freeMap and
// records them as this header's data sectors. It fails, with no state
// change to either the header or freeMap, if size needs more sectors
// than NumDirect allows or than freeMap has free.
func (h *Header) Allocate(freeMap *Bitmap, size int) bool {
	if size < 0 {
		return false
	}
	numSectors := ceilDiv(size, SectorSize)
	if size == 0 {
		numSectors = 0
	}
	if numSectors > NumDirect {
		return false
	}

	allocated := make([]int32, 0, numSectors)
	for i := 0; i < numSectors; i++ {
		s := freeMap.Find()
		if s == -1 {
			for _, a := range allocated {
				freeMap.Clear(int(a))
			}
			return false
		}
		allocated = append(allocated, int32(s))
	}

	h.numBytes = size
	h.numSectors = numSectors
	copy(h.dataSectors[:], allocated)
	return true
}

// Extend grows the header's logical size by additionalBytes, allocating
// whatever new data sectors that growth requires. On failure -- not
// enough free sectors, or the new size would need more than NumDirect
// sectors -- neither the header nor freeMap is modified.
func (h *Header) Extend(freeMap *Bitmap, additionalBytes int) bool {
	if additionalBytes < 0 {
		return false
	}
	newNumBytes := h.numBytes + additionalBytes
	newNumSectors := ceilDiv(newNumBytes, SectorSize)
	if newNumBytes == 0 {
		newNumSectors = 0
	}
	if newNumSectors > NumDirect {
		return false
	}

	needed := newNumSectors - h.numSectors
	allocated := make([]int32, 0, needed)
	for i := 0; i < needed; i++ {
		s := freeMap.Find()
		if s == -1 {
			for _, a := range allocated {
				freeMap.Clear(int(a))
			}
			return false
		}
		allocated = append(allocated, int32(s))
	}

	for i, s := range allocated {
		h.dataSectors[h.numSectors+i] = s
	}
	h.numSectors = newNumSectors
	h.numBytes = newNumBytes
	return true
}

// Deallocate clears every data sector this header owns in freeMap. The
// caller is responsible for clearing the header's own sector bit.
func (h *Header) Deallocate(freeMap *Bitmap) {
	for i := 0; i < h.numSectors; i++ {
		freeMap.Clear(int(h.dataSectors[i]))
	}
}

// ByteToSector returns the physical sector containing logical offset.
func (h *Header) ByteToSector(offset int) int {
	return int(h.dataSectors[offset/SectorSize])
}

// FetchFrom deserializes the header from the given disk sector.
func (h *Header) FetchFrom(sector int, d disk.Disk) error {
	buf := make([]byte, SectorSize)
	if err := d.ReadSector(sector, buf); err != nil {
		return fmt.Errorf("nachosfs: header fetch sector %d: %w", sector, err)
	}
	h.numBytes = int(binary.LittleEndian.Uint32(buf[0:4]))
	h.numSectors = int(binary.LittleEndian.Uint32(buf[4:8]))
	for i := 0; i < NumDirect; i++ {
		off := 8 + 4*i
		h.dataSectors[i] = int32(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	return nil
}

// WriteBack serializes the header to the given disk sector.
func (h *Header) WriteBack(sector int, d disk.Disk) error {
	buf := make([]byte, SectorSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.numBytes))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.numSectors))
	for i := 0; i < NumDirect; i++ {
		off := 8 + 4*i
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(h.dataSectors[i]))
	}
	if err := d.WriteSector(sector, buf); err != nil {
		return fmt.Errorf("nachosfs: header write sector %d: %w", sector, err)
	}
	return nil
}

// String renders a one-line debug summary.
func (h *Header) String() string {
	return fmt.Sprintf("size=%d sectors=%d", h.numBytes, h.numSectors)
}

// file: pkg/nachosfs/openfile.go

package nachosfs

import (
	"fmt"
	"io"

	"github.com/barufa/nachos/pkg/disk"
)

// File is a per-open handle: a header sector, a cached header (refreshed
// on every read/write so that growth made through another handle is
// observed), and a seek cursor. Multiple handles may share a sector, and
// thus a Node, via the open-file table.
type File struct {
	sector int
	header Header
	pos    int64
	disk   disk.Disk
	node   *Node       // nil for transient handles not registered in a Table
	fs     *FileSystem // non-nil only for handles returned by FileSystem.Open
}

// newTransientFile wraps an already-fetched header in a handle with no
// table coordination and no facade back-reference, for the file system's
// own internal traversal of directories and the free-map (whose headers
// and handles it owns for the lifetime of the operation).
func newTransientFile(sector int, h *Header, d disk.Disk) *File {
	return &File{sector: sector, header: *h, disk: d}
}

func abortIfInvalid(buf []byte, n int) {
	if buf == nil {
		panic("nachosfs: nil buffer")
	}
	if n <= 0 {
		panic(fmt.Sprintf("nachosfs: non-positive size %d", n))
	}
}

func (f *File) refresh() error {
	return f.header.FetchFrom(f.sector, f.disk)
}

// Length refreshes the cached header before returning numBytes: a
// critical correctness property, since two handles on one file must
// observe extensions made through another handle.
func (f *File) Length() int {
	f.refresh()
	return f.header.Length()
}

// Sector returns the header sector this handle addresses -- the key
// under which the open-file table coordinates readers and writers.
func (f *File) Sector() int {
	return f.sector
}

// ReadAt refreshes the cached header, clamps n to Length-position, and
// performs a sector-aligned read of [position, position+n) via the
// coordinator's reader protocol. A nil buffer or non-positive n is a
// programmer error and aborts.
func (f *File) ReadAt(buf []byte, n int, position int) (int, error) {
	abortIfInvalid(buf, n)
	if position < 0 {
		panic(fmt.Sprintf("nachosfs: negative position %d", position))
	}
	if err := f.refresh(); err != nil {
		return 0, err
	}
	length := f.header.Length()
	if position >= length {
		return 0, nil
	}
	if position+n > length {
		n = length - position
	}
	if n <= 0 {
		return 0, nil
	}

	if f.node != nil {
		f.node.acquireReader()
		defer f.node.releaseReader()
	}
	return f.readSectorAligned(buf, n, position)
}

// WriteAt grows the file through the facade's Expand when position+n
// exceeds Length, clamping n if that growth fails, then performs a
// sector-aligned splice-write via the coordinator's writer protocol.
func (f *File) WriteAt(buf []byte, n int, position int) (int, error) {
	abortIfInvalid(buf, n)
	if position < 0 {
		panic(fmt.Sprintf("nachosfs: negative position %d", position))
	}
	if err := f.refresh(); err != nil {
		return 0, err
	}
	length := f.header.Length()
	if position+n > length {
		delta := position + n - length
		var expandErr error
		if f.fs != nil {
			expandErr = f.fs.Expand(f.sector, delta)
		} else {
			expandErr = ErrDiskFull
		}
		if expandErr != nil {
			if position >= length {
				n = 0
			} else {
				n = length - position
			}
		}
		if err := f.refresh(); err != nil {
			return 0, err
		}
	}
	if n <= 0 {
		return 0, nil
	}

	if f.node != nil {
		f.node.acquireWriter()
		defer f.node.releaseWriter()
	}
	return f.writeSectorAligned(buf, n, position)
}

// Read advances the seek cursor by the count actually read.
func (f *File) Read(buf []byte, n int) (int, error) {
	read, err := f.ReadAt(buf, n, int(f.pos))
	f.pos += int64(read)
	return read, err
}

// Write advances the seek cursor by the count actually written.
func (f *File) Write(buf []byte, n int) (int, error) {
	written, err := f.WriteAt(buf, n, int(f.pos))
	f.pos += int64(written)
	return written, err
}

// Seek repositions the cursor, io.Seeker-style.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.pos + offset
	case io.SeekEnd:
		abs = int64(f.Length()) + offset
	default:
		return 0, fmt.Errorf("nachosfs: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("nachosfs: negative seek position %d", abs)
	}
	f.pos = abs
	return abs, nil
}

// Close releases this handle. If it was the last open handle on a file
// marked for deferred removal, the facade reclaims its blocks.
func (f *File) Close() error {
	if f.node == nil {
		return nil
	}
	f.node.mu.Lock()
	f.node.users--
	doReclaim := f.node.users == 0 && f.node.remove
	sector := f.node.sector
	f.node.mu.Unlock()

	if doReclaim && f.fs != nil {
		if err := f.fs.reclaim(sector); err != nil {
			return err
		}
		f.fs.table.remove(sector)
	}
	return nil
}

// readSectorAligned reads every sector touched by [position, position+n)
// and copies out the intra-sector slice actually requested.
func (f *File) readSectorAligned(buf []byte, n, position int) (int, error) {
	firstSector := position / SectorSize
	lastSector := (position + n - 1) / SectorSize
	numSectors := lastSector - firstSector + 1

	tmp := make([]byte, numSectors*SectorSize)
	for i := 0; i < numSectors; i++ {
		sec := f.header.ByteToSector((firstSector + i) * SectorSize)
		if err := f.disk.ReadSector(sec, tmp[i*SectorSize:(i+1)*SectorSize]); err != nil {
			return 0, err
		}
	}
	copy(buf[:n], tmp[position-firstSector*SectorSize:])
	return n, nil
}

// writeSectorAligned reads any partially-overlapping head/tail sectors
// first, splices buf into the assembled region, and writes back every
// touched sector.
func (f *File) writeSectorAligned(buf []byte, n, position int) (int, error) {
	firstSector := position / SectorSize
	lastSector := (position + n - 1) / SectorSize
	numSectors := lastSector - firstSector + 1

	firstAligned := position == firstSector*SectorSize
	lastAligned := position+n == (lastSector+1)*SectorSize

	tmp := make([]byte, numSectors*SectorSize)
	if !firstAligned {
		sec := f.header.ByteToSector(firstSector * SectorSize)
		if err := f.disk.ReadSector(sec, tmp[0:SectorSize]); err != nil {
			return 0, err
		}
	}
	if !lastAligned {
		sec := f.header.ByteToSector(lastSector * SectorSize)
		if err := f.disk.ReadSector(sec, tmp[(numSectors-1)*SectorSize:numSectors*SectorSize]); err != nil {
			return 0, err
		}
	}
	copy(tmp[position-firstSector*SectorSize:], buf[:n])

	for i := 0; i < numSectors; i++ {
		sec := f.header.ByteToSector((firstSector + i) * SectorSize)
		if err := f.disk.WriteSector(sec, tmp[i*SectorSize:(i+1)*SectorSize]); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// IOAdapter adapts a File to the standard io.Reader/io.Writer/io.Seeker/
// io.ReaderAt/io.WriterAt interfaces, so it composes with io.Copy for the
// CLI's put/get commands.
type IOAdapter struct{ f *File }

// IO returns an IOAdapter wrapping f.
func (f *File) IO() IOAdapter { return IOAdapter{f: f} }

func (a IOAdapter) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := a.f.Read(p, len(p))
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func (a IOAdapter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return a.f.Write(p, len(p))
}

func (a IOAdapter) Seek(offset int64, whence int) (int64, error) {
	return a.f.Seek(offset, whence)
}

func (a IOAdapter) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := a.f.ReadAt(p, len(p), int(off))
	if n < len(p) && err == nil {
		err = io.EOF
	}
	return n, err
}

func (a IOAdapter) WriteAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return a.f.WriteAt(p, len(p), int(off))
}

// file: pkg/nachosfs/fs_test.go

package nachosfs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestScenarioWriteReadRoundTrip is spec scenario 1: format; MakeDir /d;
// Create /d/f size 0; Open /d/f; Write "hello"; Seek 0; Read 5 -> "hello".
func TestScenarioWriteReadRoundTrip(t *testing.T) {
	fs := newFormattedFS(t)

	if err := fs.MakeDir("/d"); err != nil {
		t.Fatalf("MakeDir: %v", err)
	}
	if err := fs.Create("/d/f", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}

	h, err := fs.Open("/d/f")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	msg := []byte("hello")
	if n, err := h.Write(msg, len(msg)); err != nil || n != len(msg) {
		t.Fatalf("Write = (%d, %v), want (%d, nil)", n, err, len(msg))
	}
	if _, err := h.Seek(0, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	buf := make([]byte, 5)
	n, err := h.Read(buf, 5)
	if err != nil || n != 5 {
		t.Fatalf("Read = (%d, %v), want (5, nil)", n, err)
	}
	if string(buf) != "hello" {
		t.Errorf("Read() = %q, want hello", buf)
	}
}

// TestScenarioExtendSizing is spec scenario 2: a file created with initial
// size 0, written 3000 bytes, ends at Length()==3000, numSectors==24 given
// NumDirect=30 and SectorSize=128.
func TestScenarioExtendSizing(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.Create("/big", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}
	h, err := fs.Open("/big")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	buf := make([]byte, 3000)
	if n, err := h.Write(buf, len(buf)); err != nil || n != 3000 {
		t.Fatalf("Write = (%d, %v), want (3000, nil)", n, err)
	}
	if got := h.Length(); got != 3000 {
		t.Errorf("Length() = %d, want 3000", got)
	}

	st, err := fs.Stat("/big")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	var hdr Header
	if err := hdr.FetchFrom(st.Sector, fs.disk); err != nil {
		t.Fatal(err)
	}
	if hdr.NumSectors() != 24 {
		t.Errorf("numSectors = %d, want 24", hdr.NumSectors())
	}
}

// TestScenarioDeferredUnlink is spec scenario 3: Create /x; open two
// handles; Remove -> true; a subsequent Open fails; once both handles
// close, the free-map bit for /x's former header sector is clear.
func TestScenarioDeferredUnlink(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.Create("/x", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}

	h1, err := fs.Open("/x")
	if err != nil {
		t.Fatalf("Open h1: %v", err)
	}
	h2, err := fs.Open("/x")
	if err != nil {
		t.Fatalf("Open h2: %v", err)
	}
	sector := h1.Sector()

	ok, err := fs.Remove("/x")
	if err != nil || !ok {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", ok, err)
	}

	if _, err := fs.Open("/x"); err == nil {
		t.Error("Open after Remove should fail")
	}

	if !fs.freeMap.Test(sector) {
		t.Error("header sector freed before every handle closed")
	}

	if err := h1.Close(); err != nil {
		t.Fatalf("h1.Close: %v", err)
	}
	if !fs.freeMap.Test(sector) {
		t.Error("header sector freed after only one of two handles closed")
	}
	if err := h2.Close(); err != nil {
		t.Fatalf("h2.Close: %v", err)
	}
	if fs.freeMap.Test(sector) {
		t.Error("header sector still marked allocated after last handle closed")
	}
}

// TestScenarioCreateAlreadyExists is spec scenario 5.
func TestScenarioCreateAlreadyExists(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.Create("/a", 0); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := fs.Create("/a", 0)
	if !errors.Is(err, ErrFileExists) {
		t.Errorf("second Create error = %v, want ErrFileExists", err)
	}
}

// TestScenarioDiskFullLeavesBitmapUnchanged is spec scenario 6: on a disk
// with every sector marked allocated, a Create that needs free sectors
// fails and leaves the on-disk bitmap exactly as it was.
func TestScenarioDiskFullLeavesBitmapUnchanged(t *testing.T) {
	fs := newFormattedFS(t)

	for i := 0; i < NumSectors; i++ {
		fs.freeMap.Mark(i)
	}
	if err := fs.freeMap.WriteBack(fs.freeMapFile); err != nil {
		t.Fatal(err)
	}

	before := NewBitmap(NumSectors)
	if err := before.FetchFrom(fs.freeMapFile); err != nil {
		t.Fatal(err)
	}

	err := fs.Create("/toobig", SectorSize)
	if !errors.Is(err, ErrDiskFull) {
		t.Fatalf("Create on a full disk error = %v, want ErrDiskFull", err)
	}

	after := NewBitmap(NumSectors)
	if err := after.FetchFrom(fs.freeMapFile); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before.Bytes(), after.Bytes()); diff != "" {
		t.Errorf("on-disk bitmap changed after a failed Create (-before +after):\n%s", diff)
	}
}

func TestRemoveIdempotence(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.Create("/a", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ok, err := fs.Remove("/a")
	if err != nil || !ok {
		t.Fatalf("first Remove = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = fs.Remove("/a")
	if err != nil || ok {
		t.Fatalf("second Remove = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestOpenRejectsDirectoryLeaf(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.MakeDir("/d"); err != nil {
		t.Fatalf("MakeDir: %v", err)
	}
	if _, err := fs.Open("/d"); !errors.Is(err, ErrIsADirectory) {
		t.Errorf("Open(/d) error = %v, want ErrIsADirectory", err)
	}
}

func TestRemoveDirCleansNestedContents(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.MakeDir("/d"); err != nil {
		t.Fatalf("MakeDir /d: %v", err)
	}
	if err := fs.Create("/d/f", 200); err != nil {
		t.Fatalf("Create /d/f: %v", err)
	}

	st, err := fs.Stat("/d/f")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	dirSt, err := fs.Stat("/d")
	if err != nil {
		t.Fatalf("Stat /d: %v", err)
	}

	ok, err := fs.RemoveDir("/d")
	if err != nil || !ok {
		t.Fatalf("RemoveDir = (%v, %v), want (true, nil)", ok, err)
	}
	if fs.freeMap.Test(st.Sector) {
		t.Error("nested file's header sector not reclaimed by RemoveDir")
	}
	if fs.freeMap.Test(dirSt.Sector) {
		t.Error("directory's own header sector not reclaimed by RemoveDir")
	}
	if fs.CheckPath("/d") {
		t.Error("/d should no longer resolve after RemoveDir")
	}
}

func TestListSortedEntries(t *testing.T) {
	fs := newFormattedFS(t)
	if err := fs.Create("/b", 0); err != nil {
		t.Fatal(err)
	}
	if err := fs.Create("/a", 0); err != nil {
		t.Fatal(err)
	}
	if err := fs.MakeDir("/c"); err != nil {
		t.Fatal(err)
	}

	entries, err := fs.List("/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() len = %d, want 3", len(entries))
	}
	if entries[0].Name != "a" || entries[1].Name != "b" || entries[2].Name != "c" {
		t.Errorf("List() = %v, want sorted a, b, c", entries)
	}
}

func TestMountExistingFileSystem(t *testing.T) {
	d := newTestDisk(t)
	fs, err := NewFileSystem(d, true)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if err := fs.Create("/persisted", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}

	remounted, err := NewFileSystem(d, false)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !remounted.CheckPath("/persisted") {
		t.Error("file created before remount is missing after remount")
	}
}

// file: pkg/nachosfs/header_test.go

package nachosfs

import "testing"

func TestHeaderAllocateConsumesCeilSectors(t *testing.T) {
	freeMap := NewBitmap(NumSectors)
	freeMap.Mark(FreeMapSector)
	freeMap.Mark(RootDirSector)

	var h Header
	if !h.Allocate(freeMap, 250) {
		t.Fatal("Allocate(250) failed")
	}
	if h.NumSectors() != 2 {
		t.Errorf("NumSectors() = %d, want 2 (ceil(250/128))", h.NumSectors())
	}
	if h.Length() != 250 {
		t.Errorf("Length() = %d, want 250", h.Length())
	}
}

func TestHeaderAllocateFailsAtomically(t *testing.T) {
	freeMap := NewBitmap(4)
	before := freeMap.NumSet()

	var h Header
	// Request one sector more than NumDirect allows; the freeMap must be
	// left untouched by the rejected request.
	if h.Allocate(freeMap, (NumDirect+1)*SectorSize) {
		t.Fatal("Allocate should fail when size exceeds NumDirect sectors")
	}
	if freeMap.NumSet() != before {
		t.Errorf("freeMap mutated on failed Allocate: NumSet()=%d, want %d", freeMap.NumSet(), before)
	}
}

func TestHeaderAllocateFailsWhenDiskNearlyFull(t *testing.T) {
	freeMap := NewBitmap(4)
	freeMap.Mark(0)
	freeMap.Mark(1)
	freeMap.Mark(2)
	// one free sector (3) remains.
	before := freeMap.String()

	var h Header
	if h.Allocate(freeMap, 2*SectorSize) {
		t.Fatal("Allocate should fail: needs 2 sectors, only 1 free")
	}
	if freeMap.String() != before {
		t.Errorf("freeMap mutated on failed Allocate: got %s, want %s", freeMap.String(), before)
	}
}

func TestHeaderExtendGrowsAndIsVisibleToAnotherFetch(t *testing.T) {
	d := newTestDisk(t)
	freeMap := NewBitmap(NumSectors)

	var h Header
	if !h.Allocate(freeMap, 0) {
		t.Fatal("Allocate(0) failed")
	}
	const sector = 10
	if err := h.WriteBack(sector, d); err != nil {
		t.Fatal(err)
	}

	if !h.Extend(freeMap, 3000) {
		t.Fatal("Extend(3000) failed")
	}
	if h.Length() != 3000 {
		t.Errorf("Length() = %d, want 3000", h.Length())
	}
	if h.NumSectors() != 24 {
		t.Errorf("NumSectors() = %d, want 24", h.NumSectors())
	}
	if err := h.WriteBack(sector, d); err != nil {
		t.Fatal(err)
	}

	var other Header
	if err := other.FetchFrom(sector, d); err != nil {
		t.Fatal(err)
	}
	if other.Length() != 3000 {
		t.Errorf("second handle sees Length() = %d, want 3000", other.Length())
	}
}

func TestHeaderDeallocateClearsDataSectors(t *testing.T) {
	freeMap := NewBitmap(NumSectors)
	var h Header
	if !h.Allocate(freeMap, 500) {
		t.Fatal("Allocate failed")
	}
	setBefore := freeMap.NumSet()
	h.Deallocate(freeMap)
	if got := setBefore - freeMap.NumSet(); got != h.NumSectors() {
		t.Errorf("Deallocate cleared %d bits, want %d", got, h.NumSectors())
	}
}

func TestHeaderFetchWriteBackRoundTrip(t *testing.T) {
	d := newTestDisk(t)
	freeMap := NewBitmap(NumSectors)

	var h Header
	if !h.Allocate(freeMap, 400) {
		t.Fatal("Allocate failed")
	}
	const sector = 20
	if err := h.WriteBack(sector, d); err != nil {
		t.Fatal(err)
	}

	var got Header
	if err := got.FetchFrom(sector, d); err != nil {
		t.Fatal(err)
	}
	if got.Length() != h.Length() || got.NumSectors() != h.NumSectors() {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, h)
	}
	for i := 0; i < h.NumSectors(); i++ {
		if got.ByteToSector(i*SectorSize) != h.ByteToSector(i*SectorSize) {
			t.Errorf("data sector %d mismatch after round trip", i)
		}
	}
}

package level

import "testing"

func x8664Level0() PageLevel[uint64] {
	return PageLevel[uint64]{
		ShiftBits:   12,
		VABits:      9,
		PresentBit:  Bits[uint64]{Mask: 1, Value: 1},
		HugePageBit: Bits[uint64]{Mask: 0, Value: 0},
	}
}

func x8664Level1() PageLevel[uint64] {
	return PageLevel[uint64]{
		ShiftBits:   21,
		VABits:      9,
		PresentBit:  Bits[uint64]{Mask: 1, Value: 1},
		HugePageBit: Bits[uint64]{Mask: 1 << 7, Value: 1 << 7},
	}
}

func TestEntriesAndPageSize(t *testing.T) {
	l := x8664Level0()
	if got := l.Entries(); got != 512 {
		t.Errorf("Entries() = %d, want 512", got)
	}
	if got := l.PageSize(); got != 0x1000 {
		t.Errorf("PageSize() = %#x, want 0x1000", got)
	}
}

func TestPteIndex(t *testing.T) {
	l := x8664Level0()
	cases := []struct {
		addr uint64
		want uint64
	}{
		{0x0000_0000_0000, 0},
		{0x0000_0000_1000, 1},
		{0x0000_0000_2400, 2},
		{0x0000_003f_f000, 511},
	}
	for _, c := range cases {
		if got := l.PteIndex(c.addr); got != c.want {
			t.Errorf("PteIndex(%#x) = %d, want %d", c.addr, got, c.want)
		}
	}
}

func TestMaskAndEnd(t *testing.T) {
	l := x8664Level0()
	if got := l.Mask(); got != 0x1f_f000 {
		t.Errorf("Mask() = %#x, want 0x1ff000", got)
	}
	if got := l.End(0x1000); got != 0x1fff {
		t.Errorf("End(0x1000) = %#x, want 0x1fff", got)
	}
}

func TestIsPresent(t *testing.T) {
	l := x8664Level0()
	if !l.IsPresent(1) {
		t.Error("IsPresent(1) = false, want true")
	}
	if l.IsPresent(0) {
		t.Error("IsPresent(0) = true, want false")
	}
}

func TestIsHugePage(t *testing.T) {
	leaf := x8664Level0()
	if leaf.IsHugePage(1) {
		t.Error("leaf level reports huge page support, want false (HugePageBit.Mask == 0)")
	}

	pd := x8664Level1()
	if !pd.IsHugePage(1 | 1<<7) {
		t.Error("IsHugePage(present|huge) = false, want true")
	}
	if pd.IsHugePage(1) {
		t.Error("IsHugePage(present only) = true, want false")
	}
	if pd.IsHugePage(1 << 7) {
		t.Error("IsHugePage(huge, not present) = true, want false")
	}
}

// TestIsHugePageMaskNotValue exercises a huge-page-bit encoding where
// Mask != Value, the ARMv7 block-descriptor style: bit 1 clear (not set)
// marks a section (huge) descriptor instead of a page-table descriptor.
func TestIsHugePageMaskNotValue(t *testing.T) {
	l := PageLevel[uint64]{
		ShiftBits:   20,
		VABits:      12,
		PresentBit:  Bits[uint64]{Mask: 1, Value: 1},
		HugePageBit: Bits[uint64]{Mask: 1 << 1, Value: 0},
	}
	// Present, bit 1 clear: huge.
	if !l.IsHugePage(1) {
		t.Error("IsHugePage(0b01) = false, want true")
	}
	// Present, bit 1 set: not huge (points at a table).
	if l.IsHugePage(1 | 1<<1) {
		t.Error("IsHugePage(0b11) = true, want false")
	}
}

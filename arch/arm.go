package arch

import (
	"pagewalk/format"
	"pagewalk/level"
)

// ARMPageFormat4K is the ARMv7-A two-level, short-descriptor, 4K-page
// layout. The root page table has 4096 entries (12 bits of virtual
// address); the leaf table has 256 entries (8 bits). The leaf level's
// present encoding needs both of the descriptor's low two bits set, so
// its PresentBit carries a two-bit mask; the root level uses bit 0 alone.
// Supports 1M huge (section) pages at the root level.
var ARMPageFormat4K = &format.PageFormat[uint64]{
	Levels: []level.PageLevel[uint64]{
		{
			ShiftBits:   12,
			VABits:      8,
			PresentBit:  level.Bits[uint64]{Mask: 1<<0 | 1<<1, Value: 1<<0 | 1<<1},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
		{
			ShiftBits:   20,
			VABits:      12,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 1 << 1, Value: 0},
		},
	},
	PhysicalMask: 0xffff_f000,
	PTESize:      8,
}

// ARMPageFormat4KPAE is the ARMv7-A three-level, 4K-page layout enabled
// by the Long Physical Address Extension (LPAE): 9 bits per level
// except for the 4-entry root. Supports 2M and 1G huge pages.
var ARMPageFormat4KPAE = &format.PageFormat[uint64]{
	Levels: []level.PageLevel[uint64]{
		{
			ShiftBits:   12,
			VABits:      9,
			PresentBit:  level.Bits[uint64]{Mask: 1<<0 | 1<<1, Value: 1<<0 | 1<<1},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
		{
			ShiftBits:   21,
			VABits:      9,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 1 << 1, Value: 0},
		},
		{
			ShiftBits:   30,
			VABits:      2,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 1 << 1, Value: 0},
		},
	},
	PhysicalMask: 0x0000_00ff_ffff_f000,
	PTESize:      8,
}

// ARMDefaultPageFormat is the ARMv7-A two-level 4K layout.
var ARMDefaultPageFormat = ARMPageFormat4K

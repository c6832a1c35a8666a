package arch

import (
	"pagewalk/format"
	"pagewalk/level"
)

var aarch64Levels4K = []level.PageLevel[uint64]{
	{
		ShiftBits:   12,
		VABits:      9,
		PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
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
		VABits:      9,
		PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
		HugePageBit: level.Bits[uint64]{Mask: 1 << 1, Value: 0},
	},
	{
		ShiftBits:   39,
		VABits:      9,
		PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
		HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
	},
}

// AArch64PageFormat4KL3 is the AArch64 three-level, 4K-page layout: 9
// bits per level, 512 entries per table, supporting 2M and 1G huge
// pages. Used instead of the four-level layout to shorten the walk when
// the reduced virtual address range it offers is sufficient.
var AArch64PageFormat4KL3 = &format.PageFormat[uint64]{
	Levels:       aarch64Levels4K[0:3],
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

// AArch64PageFormat4KL4 is the AArch64 four-level, 4K-page layout.
var AArch64PageFormat4KL4 = &format.PageFormat[uint64]{
	Levels:       aarch64Levels4K[0:4],
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

// AArch64PageFormat16K is the AArch64 four-level, 16K-page layout: 11
// bits per level, 2048 entries per table, except for the 2-entry root.
var AArch64PageFormat16K = &format.PageFormat[uint64]{
	Levels: []level.PageLevel[uint64]{
		{
			ShiftBits:   14,
			VABits:      11,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
		{
			ShiftBits:   25,
			VABits:      11,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 1 << 1, Value: 0},
		},
		{
			ShiftBits:   36,
			VABits:      11,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
		{
			ShiftBits:   47,
			VABits:      1,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
	},
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

// AArch64PageFormat64K is the AArch64 three-level, 64K-page layout: 13
// bits per level, 8192 entries per table, except for the 64-entry root.
var AArch64PageFormat64K = &format.PageFormat[uint64]{
	Levels: []level.PageLevel[uint64]{
		{
			ShiftBits:   16,
			VABits:      13,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
		{
			ShiftBits:   29,
			VABits:      13,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 1 << 1, Value: 0},
		},
		{
			ShiftBits:   42,
			VABits:      6,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
	},
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

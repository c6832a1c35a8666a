package arch

import (
	"pagewalk/format"
	"pagewalk/level"
)

var x8664Levels4K = []level.PageLevel[uint64]{
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
		HugePageBit: level.Bits[uint64]{Mask: 1 << 7, Value: 1 << 7},
	},
	{
		ShiftBits:   30,
		VABits:      9,
		PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
		HugePageBit: level.Bits[uint64]{Mask: 1 << 7, Value: 1 << 7},
	},
	{
		ShiftBits:   39,
		VABits:      9,
		PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
		HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
	},
	{
		ShiftBits:   48,
		VABits:      9,
		PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
		HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
	},
}

// X8664PageFormat4KL4 is the x86-64 four-level, 4K-page layout: 9 bits
// per level, 512 entries per table, supporting 2M and 1G huge pages. The
// maximum physical address width modeled is 52 bits.
var X8664PageFormat4KL4 = &format.PageFormat[uint64]{
	Levels:       x8664Levels4K[0:4],
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

// X8664PageFormat4KL5 is the x86-64 five-level, 4K-page layout, also
// known as LA57 for its 57-bit linear address space.
var X8664PageFormat4KL5 = &format.PageFormat[uint64]{
	Levels:       x8664Levels4K,
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

// X8664PageFormatLA57 is an alias for X8664PageFormat4KL5.
var X8664PageFormatLA57 = X8664PageFormat4KL5

// X8664DefaultPageFormat is the four-level 4K layout.
var X8664DefaultPageFormat = X8664PageFormat4KL4

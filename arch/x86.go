// Package arch provides static PageFormat presets for the page table
// layouts of common architectures, bit-exact against their hardware
// manuals.
package arch

import (
	"pagewalk/format"
	"pagewalk/level"
)

// X86PageFormat4K is the x86 two-level, 32-bit-PTE, 4K-page layout: 10 bits
// of virtual address per level, 1024 entries per table. Supports 4M huge
// pages at the root level.
var X86PageFormat4K = &format.PageFormat[uint32]{
	Levels: []level.PageLevel[uint32]{
		{
			ShiftBits:   12,
			VABits:      10,
			PresentBit:  level.Bits[uint32]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint32]{Mask: 0, Value: 0},
		},
		{
			ShiftBits:   22,
			VABits:      10,
			PresentBit:  level.Bits[uint32]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint32]{Mask: 1 << 7, Value: 1 << 7},
		},
	},
	PhysicalMask: 0xffff_f000,
	PTESize:      4,
}

// X86PageFormat4KPAE is the x86 three-level, 64-bit-PTE, 4K-page layout
// enabled by Physical Address Extension: 9 bits per level except for the
// 2-entry root. Supports 2M huge pages.
var X86PageFormat4KPAE = &format.PageFormat[uint64]{
	Levels: []level.PageLevel[uint64]{
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
			VABits:      2,
			PresentBit:  level.Bits[uint64]{Mask: 1 << 0, Value: 1 << 0},
			HugePageBit: level.Bits[uint64]{Mask: 0, Value: 0},
		},
	},
	PhysicalMask: 0x000f_ffff_ffff_f000,
	PTESize:      8,
}

// X86DefaultPageFormat is the x86 two-level 4K layout.
var X86DefaultPageFormat = X86PageFormat4K

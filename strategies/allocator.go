package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
)

// Allocator backs a virtual address range with freshly allocated physical
// pages (when HasMask is true) and whatever intermediate page tables are
// missing, via the mapper's AllocPage. When HasMask is false, only
// intermediate tables are allocated and leaf holes are left untouched; this
// is used to pre-populate a hierarchy's structure without committing leaf
// mappings. Used by AddressSpace.AllocateRange.
type Allocator[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Format *format.PageFormat[PTE]

	// Mask is the leaf protection bits OR-ed into newly allocated leaf
	// PTEs (together with the level's present bit). Only consulted when
	// HasMask is true.
	Mask    PTE
	HasMask bool
}

// HandlePTEHole allocates a page (at the leaf level, if a mask was
// configured) or a page table (at any higher level) to fill a hole
// encountered during the walk.
func (a *Allocator[PTE]) HandlePTEHole(m mapper.Mapper[PTE], index int, _ format.Range, pte *PTE) error {
	l := a.Format.Levels[index]

	if index == 0 {
		if !a.HasMask {
			return nil
		}
		page, err := m.AllocPage()
		if err != nil {
			return err
		}
		*pte = page | l.PresentBit.Value | a.Mask
		return nil
	}

	table, err := m.AllocPage()
	if err != nil {
		return err
	}
	// OR in (huge_page_bit.Mask ^ huge_page_bit.Value) & huge_page_bit.Mask:
	// this evaluates to the bit pattern that makes IsHugePage false for
	// this level's encoding, whether "not huge" is encoded as the bit
	// being clear (x86-style) or set (ARMv7 short-descriptor table bit).
	// The trailing & Mask clamps out any bit Value sets outside Mask.
	notHuge := (l.HugePageBit.Mask ^ l.HugePageBit.Value) & l.HugePageBit.Mask
	*pte = table | l.PresentBit.Value | l.PageTableMask | notHuge
	return nil
}

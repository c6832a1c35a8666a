package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
)

// MapperRange is like Allocator, but leaf PTEs are formed from a linearly
// advancing physical address rather than calls to AllocPage: it backs a
// virtual address range with an externally owned physical extent, such as
// a memory-mapped I/O range. Intermediate holes still allocate page
// tables exactly as Allocator does. Used by AddressSpace.MapRange.
type MapperRange[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Format *format.PageFormat[PTE]

	// CurrentPhys is the next physical address to assign to a leaf PTE;
	// it advances by the level's page size after each leaf hole is
	// filled.
	CurrentPhys PTE
}

// HandlePTEHole assigns the next physical page in sequence to a leaf hole,
// or allocates a page table for an intermediate hole.
func (mr *MapperRange[PTE]) HandlePTEHole(m mapper.Mapper[PTE], index int, _ format.Range, pte *PTE) error {
	l := mr.Format.Levels[index]

	if index == 0 {
		*pte = l.PresentBit.Value | mr.CurrentPhys
		mr.CurrentPhys += PTE(l.PageSize())
		return nil
	}

	table, err := m.AllocPage()
	if err != nil {
		return err
	}
	notHuge := (l.HugePageBit.Mask ^ l.HugePageBit.Value) & l.HugePageBit.Mask
	*pte = table | l.PresentBit.Value | l.PageTableMask | notHuge
	return nil
}

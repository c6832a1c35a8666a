package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
)

// Remover clears PTEs in a range, optionally freeing the physical pages
// and/or page tables it empties. Two facade operations select the flag
// set: AddressSpace.UnmapRange uses neither flag (I/O ranges whose
// physical extent is externally owned); AddressSpace.FreeRange sets both.
type Remover[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Format *format.PageFormat[PTE]

	// FreePages, when true, frees the physical page backing every
	// present leaf PTE the walk clears.
	FreePages bool

	// FreePageTables, when true, frees a page table's physical page
	// once every entry in it has been cleared.
	FreePageTables bool
}

// HandlePTE clears a present leaf PTE, freeing its physical page exactly
// once if FreePages is set.
func (r *Remover[PTE]) HandlePTE(m mapper.Mapper[PTE], pteType format.PteType, _ format.Range, pte *PTE) error {
	if !pteType.IsPage() {
		return nil
	}
	l := r.Format.Levels[pteType.Level]
	if !l.IsPresent(*pte) {
		return nil
	}

	if r.FreePages {
		if err := m.FreePage(*pte & r.Format.PhysicalMask); err != nil {
			return err
		}
	}
	*pte = 0
	return nil
}

// HandlePostPTE inspects the child page table a cleared PTE pointed to; if
// every entry in it is now zero and FreePageTables is set, it frees the
// table and zeroes the parent PTE. WalkMut's post-callback write-back then
// commits the cleared parent PTE upward.
func (r *Remover[PTE]) HandlePostPTE(m mapper.Mapper[PTE], index int, _ format.Range, pte *PTE) error {
	if !r.FreePageTables {
		return nil
	}
	// index is the level of the PTE that points at the child table, not
	// the child table's own level: a format whose levels don't all share
	// the same VABits (AArch64's 16K and 64K presets) has a different
	// entry count one level down.
	child := r.Format.Levels[index-1]
	tableAddr := *pte & r.Format.PhysicalMask

	for i := 0; i < child.Entries(); i++ {
		entry, err := m.ReadPTE(tableAddr + PTE(i)*PTE(r.Format.PTESize))
		if err != nil {
			return err
		}
		if entry != 0 {
			return nil
		}
	}

	if err := m.FreePage(tableAddr); err != nil {
		return err
	}
	*pte = 0
	return nil
}

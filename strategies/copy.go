package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
	"pagewalk/pwerr"
)

// CopyFrom reads from the physical pages backing a virtual address range
// into Buf, advancing through Buf as each page (base or huge) is visited.
// Used by AddressSpace.CopyFrom.
type CopyFrom[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Format *format.PageFormat[PTE]
	Buf    []byte
	off    int
}

// HandlePTE copies as much of Buf as fits in the current page from
// physical memory, failing with pwerr.ErrPageNotPresent if the leaf, or a
// page table above it, is not present.
func (c *CopyFrom[PTE]) HandlePTE(m mapper.Mapper[PTE], pteType format.PteType, r format.Range, pte *PTE) error {
	l := c.Format.Levels[pteType.Level]
	if !l.IsPresent(*pte) {
		return pwerr.ErrPageNotPresent
	}
	if !pteType.IsPage() {
		return nil
	}

	pageSize := l.PageSize()
	pageOffset := r.Start & (pageSize - 1)
	phys := (*pte & c.Format.PhysicalMask) + PTE(pageOffset)

	remaining := len(c.Buf) - c.off
	n := int(pageSize - pageOffset)
	if n > remaining {
		n = remaining
	}
	if n <= 0 {
		return nil
	}

	got, err := m.ReadBytes(c.Buf[c.off:c.off+n], phys)
	if err != nil {
		return err
	}
	c.off += got
	return nil
}

// CopyTo writes Buf into the physical pages backing a virtual address
// range, advancing through Buf as each page (base or huge) is visited.
// Used by AddressSpace.CopyTo.
type CopyTo[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Format *format.PageFormat[PTE]
	Buf    []byte
	off    int
}

// HandlePTE writes as much of Buf as fits in the current page to physical
// memory, failing with pwerr.ErrPageNotPresent if the leaf, or a page table
// above it, is not present.
func (c *CopyTo[PTE]) HandlePTE(m mapper.Mapper[PTE], pteType format.PteType, r format.Range, pte *PTE) error {
	l := c.Format.Levels[pteType.Level]
	if !l.IsPresent(*pte) {
		return pwerr.ErrPageNotPresent
	}
	if !pteType.IsPage() {
		return nil
	}

	pageSize := l.PageSize()
	pageOffset := r.Start & (pageSize - 1)
	phys := (*pte & c.Format.PhysicalMask) + PTE(pageOffset)

	remaining := len(c.Buf) - c.off
	n := int(pageSize - pageOffset)
	if n > remaining {
		n = remaining
	}
	if n <= 0 {
		return nil
	}

	put, err := m.WriteBytes(phys, c.Buf[c.off:c.off+n])
	if err != nil {
		return err
	}
	c.off += put
	return nil
}
